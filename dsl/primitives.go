package dsl

import (
	"regexp"

	oaskema "github.com/reoring/oaskema"
)

// StringBuilder collects string checks in declaration order.
type StringBuilder struct {
	wrappers
	checks []oaskema.StringCheck
}

// String returns a string schema builder.
func String() *StringBuilder {
	b := &StringBuilder{}
	b.self = b
	return b
}

// Min requires at least n characters.
func (b *StringBuilder) Min(n int) *StringBuilder { return b.add(oaskema.MinLength{N: n}) }

// Max allows at most n characters.
func (b *StringBuilder) Max(n int) *StringBuilder { return b.add(oaskema.MaxLength{N: n}) }

// Length requires exactly n characters.
func (b *StringBuilder) Length(n int) *StringBuilder { return b.add(oaskema.ExactLength{N: n}) }

func (b *StringBuilder) Email() *StringBuilder {
	return b.add(oaskema.Format{Name: oaskema.FormatEmail})
}

func (b *StringBuilder) URL() *StringBuilder { return b.add(oaskema.Format{Name: oaskema.FormatURI}) }

// Regex requires the value to match re.
func (b *StringBuilder) Regex(re *regexp.Regexp) *StringBuilder {
	return b.add(oaskema.Pattern{Regexp: re})
}

// Pattern compiles expr and requires the value to match it. It panics if
// expr is not a valid regular expression.
func (b *StringBuilder) Pattern(expr string) *StringBuilder {
	return b.Regex(regexp.MustCompile(expr))
}

func (b *StringBuilder) add(c oaskema.StringCheck) *StringBuilder {
	b.checks = append(b.checks, c)
	return b
}

func (b *StringBuilder) Build() oaskema.Node {
	return &oaskema.String{Checks: append([]oaskema.StringCheck(nil), b.checks...)}
}

// NumberBuilder collects numeric bounds in declaration order.
type NumberBuilder struct {
	wrappers
	checks []oaskema.NumberCheck
}

// Number returns a number schema builder.
func Number() *NumberBuilder {
	b := &NumberBuilder{}
	b.self = b
	return b
}

// Min requires value >= v.
func (b *NumberBuilder) Min(v float64) *NumberBuilder { return b.add(oaskema.Min{Value: v}) }

// Max requires value <= v.
func (b *NumberBuilder) Max(v float64) *NumberBuilder { return b.add(oaskema.Max{Value: v}) }

// Gt requires value > v.
func (b *NumberBuilder) Gt(v float64) *NumberBuilder {
	return b.add(oaskema.Min{Value: v, Exclusive: true})
}

// Lt requires value < v.
func (b *NumberBuilder) Lt(v float64) *NumberBuilder {
	return b.add(oaskema.Max{Value: v, Exclusive: true})
}

func (b *NumberBuilder) add(c oaskema.NumberCheck) *NumberBuilder {
	b.checks = append(b.checks, c)
	return b
}

func (b *NumberBuilder) Build() oaskema.Node {
	return &oaskema.Number{Checks: append([]oaskema.NumberCheck(nil), b.checks...)}
}

// LeafBuilder builds check-less nodes (Bool, Date, Literal, Enum).
type LeafBuilder struct {
	wrappers
	mk func() oaskema.Node
}

func leaf(mk func() oaskema.Node) *LeafBuilder {
	b := &LeafBuilder{mk: mk}
	b.self = b
	return b
}

func (b *LeafBuilder) Build() oaskema.Node { return b.mk() }

func Bool() *LeafBuilder { return leaf(func() oaskema.Node { return &oaskema.Boolean{} }) }

// Date accepts RFC3339 timestamps and is described as a date-time string.
func Date() *LeafBuilder { return leaf(func() oaskema.Node { return &oaskema.Date{} }) }

// Literal accepts exactly one of values. It panics when values is empty.
func Literal(values ...any) *LeafBuilder {
	if len(values) == 0 {
		panic("dsl: Literal requires at least one value")
	}
	vs := append([]any(nil), values...)
	return leaf(func() oaskema.Node { return &oaskema.Literal{Values: append([]any(nil), vs...)} })
}

// Enum accepts one of values. It panics when values is empty.
func Enum(values ...string) *LeafBuilder {
	if len(values) == 0 {
		panic("dsl: Enum requires at least one value")
	}
	vs := append([]string(nil), values...)
	return leaf(func() oaskema.Node { return &oaskema.Enum{Values: append([]string(nil), vs...)} })
}
