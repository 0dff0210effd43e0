package dsl

import (
	oaskema "github.com/reoring/oaskema"
)

// ObjectBuilder declares fields in order. Registering a name twice replaces
// the earlier schema but keeps its position.
type ObjectBuilder struct {
	wrappers
	names  []string
	fields map[string]Builder
}

// Object creates a new object builder.
func Object() *ObjectBuilder {
	b := &ObjectBuilder{fields: map[string]Builder{}}
	b.self = b
	return b
}

// Field registers a field. Wrap s with Optional or Default to make the field
// omittable; every other field is required.
func (b *ObjectBuilder) Field(name string, s Builder) *ObjectBuilder {
	if _, ok := b.fields[name]; !ok {
		b.names = append(b.names, name)
	}
	b.fields[name] = s
	return b
}

func (b *ObjectBuilder) Build() oaskema.Node {
	obj := &oaskema.Object{Fields: make([]oaskema.Field, 0, len(b.names))}
	for _, name := range b.names {
		obj.Fields = append(obj.Fields, oaskema.Field{Name: name, Schema: build(b.fields[name])})
	}
	return obj
}

// MustObject builds b and returns the concrete object node.
func (b *ObjectBuilder) MustObject() *oaskema.Object {
	return b.Build().(*oaskema.Object)
}

// ArrayBuilder builds an array of a single element schema.
type ArrayBuilder struct {
	wrappers
	elem   Builder
	checks []oaskema.ArrayCheck
}

// Array returns an array schema builder for elem.
func Array(elem Builder) *ArrayBuilder {
	b := &ArrayBuilder{elem: elem}
	b.self = b
	return b
}

// Min requires at least n items.
func (b *ArrayBuilder) Min(n int) *ArrayBuilder {
	b.checks = append(b.checks, oaskema.MinItems{N: n})
	return b
}

// Max allows at most n items.
func (b *ArrayBuilder) Max(n int) *ArrayBuilder {
	b.checks = append(b.checks, oaskema.MaxItems{N: n})
	return b
}

func (b *ArrayBuilder) Build() oaskema.Node {
	return &oaskema.Array{Element: build(b.elem), Checks: append([]oaskema.ArrayCheck(nil), b.checks...)}
}

// UnionBuilder accepts any of its options; the first match wins.
type UnionBuilder struct {
	wrappers
	options []Builder
}

// Union returns a union of options. It panics with fewer than two options.
func Union(options ...Builder) *UnionBuilder {
	if len(options) < 2 {
		panic("dsl: Union requires at least two options")
	}
	b := &UnionBuilder{options: append([]Builder(nil), options...)}
	b.self = b
	return b
}

func (b *UnionBuilder) Build() oaskema.Node {
	u := &oaskema.Union{Options: make([]oaskema.Node, 0, len(b.options))}
	for _, o := range b.options {
		u.Options = append(u.Options, build(o))
	}
	return u
}
