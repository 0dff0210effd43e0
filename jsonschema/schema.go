package jsonschema

import (
	"bytes"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Schema is a JSON-Schema/OpenAPI 3.0 description of a value. It is a plain
// value object: every field set by a converter belongs to that one Schema.
//
// Nil pointers and empty strings mean "absent". Required is emitted whenever
// it is non-nil, so an object with no required fields carries an empty list.
// Default is emitted when it is non-nil or HasDefault is set; the latter
// describes an explicit null default.
type Schema struct {
	// Core
	Type       string
	Format     string
	Default    any
	HasDefault bool
	Enum       []any

	Nullable bool

	// String
	Pattern   string
	MinLength *int
	MaxLength *int

	// Number
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool

	// Object
	Properties *Properties
	Required   []string

	// Array
	Items    *Schema
	MinItems *int
	MaxItems *int

	// Union
	OneOf []*Schema
}

type member struct {
	key string
	val any
}

// members lists the present keys in output order.
func (s Schema) members() []member {
	var m []member
	if s.Type != "" {
		m = append(m, member{"type", s.Type})
	}
	if s.Format != "" {
		m = append(m, member{"format", s.Format})
	}
	if s.Pattern != "" {
		m = append(m, member{"pattern", s.Pattern})
	}
	if s.MinLength != nil {
		m = append(m, member{"minLength", *s.MinLength})
	}
	if s.MaxLength != nil {
		m = append(m, member{"maxLength", *s.MaxLength})
	}
	if s.Minimum != nil {
		m = append(m, member{"minimum", *s.Minimum})
	}
	if s.ExclusiveMinimum {
		m = append(m, member{"exclusiveMinimum", true})
	}
	if s.Maximum != nil {
		m = append(m, member{"maximum", *s.Maximum})
	}
	if s.ExclusiveMaximum {
		m = append(m, member{"exclusiveMaximum", true})
	}
	if s.MinItems != nil {
		m = append(m, member{"minItems", *s.MinItems})
	}
	if s.MaxItems != nil {
		m = append(m, member{"maxItems", *s.MaxItems})
	}
	if s.Enum != nil {
		m = append(m, member{"enum", s.Enum})
	}
	if s.Nullable {
		m = append(m, member{"nullable", true})
	}
	if s.HasDefault || s.Default != nil {
		m = append(m, member{"default", s.Default})
	}
	if s.Properties != nil {
		m = append(m, member{"properties", s.Properties})
	}
	if s.Required != nil {
		m = append(m, member{"required", s.Required})
	}
	if s.Items != nil {
		m = append(m, member{"items", s.Items})
	}
	if s.OneOf != nil {
		m = append(m, member{"oneOf", s.OneOf})
	}
	return m
}

// MarshalJSON writes the present keys in a fixed order.
func (s Schema) MarshalJSON() ([]byte, error) {
	return marshalMembers(s.members())
}

// MarshalYAML keeps the same key order as MarshalJSON.
func (s Schema) MarshalYAML() (any, error) {
	return yamlMapping(s.members())
}

// ToMap renders the schema as nested map[string]any / []any values, the
// shape a generic JSON decoder would produce minus number normalization.
func (s *Schema) ToMap() map[string]any {
	if s == nil {
		return nil
	}
	out := make(map[string]any)
	for _, m := range s.members() {
		switch v := m.val.(type) {
		case *Properties:
			props := make(map[string]any, v.Len())
			for _, k := range v.Keys() {
				props[k] = v.Value(k).ToMap()
			}
			out[m.key] = props
		case *Schema:
			out[m.key] = v.ToMap()
		case []*Schema:
			list := make([]any, 0, len(v))
			for _, c := range v {
				list = append(list, c.ToMap())
			}
			out[m.key] = list
		default:
			out[m.key] = v
		}
	}
	return out
}

// Clone returns a deep copy. Map and slice values inside Default and Enum
// are copied as well.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	c := *s
	c.Default = cloneValue(s.Default)
	c.MinLength = clonePtr(s.MinLength)
	c.MaxLength = clonePtr(s.MaxLength)
	c.Minimum = clonePtr(s.Minimum)
	c.Maximum = clonePtr(s.Maximum)
	c.MinItems = clonePtr(s.MinItems)
	c.MaxItems = clonePtr(s.MaxItems)
	if s.Enum != nil {
		c.Enum = make([]any, len(s.Enum))
		for i, v := range s.Enum {
			c.Enum[i] = cloneValue(v)
		}
	}
	if s.Required != nil {
		c.Required = append([]string{}, s.Required...)
	}
	c.Properties = s.Properties.Clone()
	c.Items = s.Items.Clone()
	if s.OneOf != nil {
		c.OneOf = make([]*Schema, len(s.OneOf))
		for i, o := range s.OneOf {
			c.OneOf[i] = o.Clone()
		}
	}
	return &c
}

// cloneValue copies decoded-JSON composites (maps and slices); other values
// are returned as is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string{}, t...)
	default:
		return v
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func marshalMembers(ms []member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range ms {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.val)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func yamlMapping(ms []member) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, m := range ms {
		var v yaml.Node
		if err := v.Encode(m.val); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.key}, &v)
	}
	return n, nil
}
