package oaskema

// ParseOpt bundles parsing options.
type ParseOpt struct {
	// CoerceStrings lets string input satisfy number, boolean and date nodes.
	// Query, header, cookie, path and form values arrive as strings.
	CoerceStrings bool
	// FailFast stops at the first issue.
	FailFast bool
}

func pickOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
