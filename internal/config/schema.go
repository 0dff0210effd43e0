package config

import (
	"regexp"

	"github.com/cockroachdb/errors"

	oaskema "github.com/reoring/oaskema"
	"github.com/reoring/oaskema/dsl"
)

// SchemaSpec is the declarative, file-friendly form of a schema node.
// Optional, Nullable and Default wrap the node; Nullable is applied first.
type SchemaSpec struct {
	Type string `mapstructure:"type" validate:"required,oneof=string number boolean date object array literal enum union"`

	// string
	MinLength *int   `mapstructure:"minLength" validate:"omitempty,min=0"`
	MaxLength *int   `mapstructure:"maxLength" validate:"omitempty,min=0"`
	Length    *int   `mapstructure:"length" validate:"omitempty,min=0"`
	Format    string `mapstructure:"format" validate:"omitempty,oneof=email uri"`
	Pattern   string `mapstructure:"pattern"`

	// number
	Minimum          *float64 `mapstructure:"minimum"`
	Maximum          *float64 `mapstructure:"maximum"`
	ExclusiveMinimum bool     `mapstructure:"exclusiveMinimum"`
	ExclusiveMaximum bool     `mapstructure:"exclusiveMaximum"`

	// array
	Items    *SchemaSpec `mapstructure:"items"`
	MinItems *int        `mapstructure:"minItems" validate:"omitempty,min=0"`
	MaxItems *int        `mapstructure:"maxItems" validate:"omitempty,min=0"`

	// object
	Fields []FieldSpec `mapstructure:"fields" validate:"dive"`

	// literal, enum
	Values []any `mapstructure:"values"`

	// union
	Options []SchemaSpec `mapstructure:"options" validate:"dive"`

	Optional bool `mapstructure:"optional"`
	Nullable bool `mapstructure:"nullable"`
	Default  any  `mapstructure:"default"`
}

type FieldSpec struct {
	Name   string     `mapstructure:"name" validate:"required"`
	Schema SchemaSpec `mapstructure:"schema"`
}

// Node builds the schema node described by s.
func (s SchemaSpec) Node() (oaskema.Node, error) {
	b, err := s.builder()
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (s SchemaSpec) validate() error {
	_, err := s.builder()
	return err
}

func (s SchemaSpec) builder() (dsl.Builder, error) {
	var b dsl.Builder
	switch s.Type {
	case "string":
		sb := dsl.String()
		if s.MinLength != nil {
			sb.Min(*s.MinLength)
		}
		if s.MaxLength != nil {
			sb.Max(*s.MaxLength)
		}
		if s.Length != nil {
			sb.Length(*s.Length)
		}
		switch s.Format {
		case oaskema.FormatEmail:
			sb.Email()
		case oaskema.FormatURI:
			sb.URL()
		}
		if s.Pattern != "" {
			re, err := regexp.Compile(s.Pattern)
			if err != nil {
				return nil, errors.Wrapf(err, "pattern %q", s.Pattern)
			}
			sb.Regex(re)
		}
		b = sb
	case "number":
		nb := dsl.Number()
		if s.Minimum != nil {
			if s.ExclusiveMinimum {
				nb.Gt(*s.Minimum)
			} else {
				nb.Min(*s.Minimum)
			}
		}
		if s.Maximum != nil {
			if s.ExclusiveMaximum {
				nb.Lt(*s.Maximum)
			} else {
				nb.Max(*s.Maximum)
			}
		}
		b = nb
	case "boolean":
		b = dsl.Bool()
	case "date":
		b = dsl.Date()
	case "object":
		ob := dsl.Object()
		for _, f := range s.Fields {
			fb, err := f.Schema.builder()
			if err != nil {
				return nil, errors.Wrapf(err, "field %q", f.Name)
			}
			ob.Field(f.Name, fb)
		}
		b = ob
	case "array":
		if s.Items == nil {
			return nil, errors.New("array schema needs items")
		}
		ib, err := s.Items.builder()
		if err != nil {
			return nil, errors.Wrap(err, "items")
		}
		ab := dsl.Array(ib)
		if s.MinItems != nil {
			ab.Min(*s.MinItems)
		}
		if s.MaxItems != nil {
			ab.Max(*s.MaxItems)
		}
		b = ab
	case "literal":
		if len(s.Values) == 0 {
			return nil, errors.New("literal schema needs values")
		}
		b = dsl.Literal(s.Values...)
	case "enum":
		if len(s.Values) == 0 {
			return nil, errors.New("enum schema needs values")
		}
		vals := make([]string, 0, len(s.Values))
		for _, v := range s.Values {
			str, ok := v.(string)
			if !ok {
				return nil, errors.Newf("enum value %v is not a string", v)
			}
			vals = append(vals, str)
		}
		b = dsl.Enum(vals...)
	case "union":
		if len(s.Options) < 2 {
			return nil, errors.New("union schema needs at least two options")
		}
		opts := make([]dsl.Builder, 0, len(s.Options))
		for i, o := range s.Options {
			ob, err := o.builder()
			if err != nil {
				return nil, errors.Wrapf(err, "option %d", i)
			}
			opts = append(opts, ob)
		}
		b = dsl.Union(opts...)
	default:
		return nil, errors.Newf("unknown schema type %q", s.Type)
	}

	if s.Nullable {
		b = dsl.Nullable(b)
	}
	switch {
	case s.Default != nil:
		b = dsl.Default(b, s.Default)
	case s.Optional:
		b = dsl.Optional(b)
	}
	return b, nil
}
