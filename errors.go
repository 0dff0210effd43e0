package oaskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodePattern        = "pattern"
	CodeInvalidEnum    = "invalid_enum"
	CodeInvalidLiteral = "invalid_literal"
	CodeInvalidFormat  = "invalid_format"
	CodeInvalidUnion   = "invalid_union"
	CodeParseError     = "parse_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"` // JSON Pointer (for example: /items/2/price).
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
	Cause   error  `json:"-"`
	// Params carries structured parameters (e.g., {"min":1, "got":0}) for i18n.
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
