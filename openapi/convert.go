package openapi

import (
	"github.com/samber/lo"

	oaskema "github.com/reoring/oaskema"
	js "github.com/reoring/oaskema/jsonschema"
)

// Convert describes n as a JSON Schema. It never fails: node kinds it does
// not know, and a nil node, are described as {"type":"string"}.
//
// Checks are applied in declaration order and a later check overwrites an
// earlier one for the same keyword. Bounds are emitted as stored; an
// exclusive Min/Max additionally sets exclusiveMinimum/exclusiveMaximum.
func Convert(n oaskema.Node) *js.Schema {
	switch t := n.(type) {
	case *oaskema.Boolean:
		return &js.Schema{Type: "boolean"}
	case *oaskema.Date:
		return &js.Schema{Type: "string", Format: "date-time"}
	case *oaskema.String:
		return convertString(t)
	case *oaskema.Number:
		return convertNumber(t)
	case *oaskema.Object:
		props := js.NewProperties()
		for _, f := range t.Fields {
			props.Set(f.Name, Convert(f.Schema))
		}
		return &js.Schema{Type: "object", Properties: props, Required: RequiredFields(t)}
	case *oaskema.Array:
		s := &js.Schema{Type: "array", Items: Convert(t.Element)}
		for _, c := range t.Checks {
			switch c := c.(type) {
			case oaskema.MinItems:
				s.MinItems = lo.ToPtr(c.N)
			case oaskema.MaxItems:
				s.MaxItems = lo.ToPtr(c.N)
			}
		}
		return s
	case *oaskema.Literal:
		return &js.Schema{Enum: append([]any{}, t.Values...)}
	case *oaskema.Enum:
		return &js.Schema{Type: "string", Enum: lo.ToAnySlice(t.Values)}
	case *oaskema.Union:
		return &js.Schema{OneOf: lo.Map(t.Options, func(o oaskema.Node, _ int) *js.Schema { return Convert(o) })}
	case *oaskema.Nullable:
		s := Convert(t.Inner)
		s.Nullable = true
		return s
	case *oaskema.Optional:
		return Convert(t.Inner)
	case *oaskema.Default:
		s := Convert(t.Inner)
		s.Default = t.Value
		s.HasDefault = true
		return s
	default:
		return &js.Schema{Type: "string"}
	}
}

func convertString(n *oaskema.String) *js.Schema {
	s := &js.Schema{Type: "string"}
	for _, c := range n.Checks {
		switch c := c.(type) {
		case oaskema.MinLength:
			s.MinLength = lo.ToPtr(c.N)
		case oaskema.MaxLength:
			s.MaxLength = lo.ToPtr(c.N)
		case oaskema.ExactLength:
			s.MinLength = lo.ToPtr(c.N)
			s.MaxLength = lo.ToPtr(c.N)
		case oaskema.Format:
			s.Format = c.Name
		case oaskema.Pattern:
			s.Pattern = c.Source()
		}
	}
	return s
}

func convertNumber(n *oaskema.Number) *js.Schema {
	s := &js.Schema{Type: "number"}
	for _, c := range n.Checks {
		switch c := c.(type) {
		case oaskema.Min:
			s.Minimum = lo.ToPtr(c.Value)
			s.ExclusiveMinimum = c.Exclusive
		case oaskema.Max:
			s.Maximum = lo.ToPtr(c.Value)
			s.ExclusiveMaximum = c.Exclusive
		}
	}
	return s
}

// RequiredFields lists, in declaration order, the fields of an object node
// whose schema is neither Optional nor Default. It returns nil when n is not
// an object and an empty, non-nil slice when no field qualifies.
func RequiredFields(n oaskema.Node) []string {
	obj, ok := n.(*oaskema.Object)
	if !ok {
		return nil
	}
	req := lo.FilterMap(obj.Fields, func(f oaskema.Field, _ int) (string, bool) {
		return f.Name, oaskema.IsRequired(f.Schema)
	})
	if req == nil {
		req = []string{}
	}
	return req
}
