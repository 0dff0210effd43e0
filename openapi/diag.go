package openapi

import (
	"github.com/samber/lo"

	"github.com/reoring/oaskema/i18n"
)

// Diagnostic codes.
const (
	DiagUnsupportedLocation = "unsupported_location"
	DiagNonObjectSchema     = "non_object_schema"
)

// Diagnostic is a non-fatal warning produced while building a fragment.
type Diagnostic struct {
	Code     string
	Location Location
	Message  string
}

func (d Diagnostic) String() string { return d.Code + ": " + d.Message }

// Diagnostics carries the warnings of one BuildLocationSchema call.
type Diagnostics []Diagnostic

func (d Diagnostics) HasWarnings() bool { return len(d) > 0 }

func (d Diagnostics) Warnings() []string {
	return lo.Map(d, func(x Diagnostic, _ int) string { return x.String() })
}

func newDiagnostic(code string, loc Location) Diagnostic {
	msg := i18n.T(code, map[string]string{"location": string(loc), "supported": supportedList()})
	return Diagnostic{Code: code, Location: loc, Message: msg}
}
