package openapi

import (
	"github.com/samber/lo"

	oaskema "github.com/reoring/oaskema"
)

// BuildLocationSchema describes n for the given request location.
//
//   - json: one "application/json" body schema with the top-level required
//     list attached.
//   - form: one "application/x-www-form-urlencoded" body schema.
//   - query, header, cookie, param: one Parameter per top-level object field,
//     in declaration order.
//
// Unsupported locations, and parameter locations given a non-object schema,
// yield a nil fragment plus a diagnostic. It never panics.
func BuildLocationSchema(loc Location, n oaskema.Node) (*Fragment, Diagnostics) {
	switch {
	case loc == LocationJSON:
		s := Convert(n)
		if obj, ok := rootObject(n); ok {
			s.Required = RequiredFields(obj)
		}
		return &Fragment{Location: loc, Content: map[string]MediaType{MediaTypeJSON: {Schema: s}}}, nil
	case loc == LocationForm:
		return &Fragment{Location: loc, Content: map[string]MediaType{MediaTypeForm: {Schema: Convert(n)}}}, nil
	case loc.IsParameter():
		obj, ok := rootObject(n)
		if !ok {
			return nil, Diagnostics{newDiagnostic(DiagNonObjectSchema, loc)}
		}
		return &Fragment{Location: loc, Parameters: parameters(loc, obj)}, nil
	default:
		return nil, Diagnostics{newDiagnostic(DiagUnsupportedLocation, loc)}
	}
}

func parameters(loc Location, obj *oaskema.Object) []Parameter {
	return lo.Map(obj.Fields, func(f oaskema.Field, _ int) Parameter {
		return Parameter{
			Name:     f.Name,
			In:       loc,
			Required: oaskema.IsRequired(f.Schema),
			Schema:   Convert(f.Schema),
		}
	})
}

func rootObject(n oaskema.Node) (*oaskema.Object, bool) {
	obj, ok := oaskema.Unwrap(n).(*oaskema.Object)
	return obj, ok
}
