package dsl

import (
	oaskema "github.com/reoring/oaskema"
)

// Builder produces a schema node. Every builder in this package implements
// it, and Build returns a fresh node on each call.
type Builder interface {
	Build() oaskema.Node
}

// wrappers adds the zod-like Optional/Nullable/Default chain methods to a
// builder. self must point back at the embedding builder.
type wrappers struct{ self Builder }

// Optional marks the schema as omittable when used as an object field.
func (w wrappers) Optional() *WrapBuilder { return Optional(w.self) }

// Nullable lets the schema accept null.
func (w wrappers) Nullable() *WrapBuilder { return Nullable(w.self) }

// Default supplies v when an object field using the schema is missing.
func (w wrappers) Default(v any) *WrapBuilder { return Default(w.self, v) }

// WrapBuilder wraps another builder with Optional, Nullable or Default.
type WrapBuilder struct {
	wrappers
	kind  oaskema.Kind
	inner Builder
	value any
}

// Optional wraps b so that an object field using it may be omitted.
func Optional(b Builder) *WrapBuilder { return wrap(oaskema.KindOptional, b, nil) }

// Nullable wraps b so that it also accepts null.
func Nullable(b Builder) *WrapBuilder { return wrap(oaskema.KindNullable, b, nil) }

// Default wraps b with a default value applied for missing object fields.
func Default(b Builder, v any) *WrapBuilder { return wrap(oaskema.KindDefault, b, v) }

func wrap(k oaskema.Kind, b Builder, v any) *WrapBuilder {
	w := &WrapBuilder{kind: k, inner: b, value: v}
	w.self = w
	return w
}

func (w *WrapBuilder) Build() oaskema.Node {
	inner := build(w.inner)
	switch w.kind {
	case oaskema.KindNullable:
		return &oaskema.Nullable{Inner: inner}
	case oaskema.KindDefault:
		return &oaskema.Default{Inner: inner, Value: w.value}
	default:
		return &oaskema.Optional{Inner: inner}
	}
}

// Node adapts an already built node to a Builder.
func Node(n oaskema.Node) Builder { return nodeBuilder{n: n} }

type nodeBuilder struct{ n oaskema.Node }

func (b nodeBuilder) Build() oaskema.Node { return b.n }

func build(b Builder) oaskema.Node {
	if b == nil {
		return nil
	}
	return b.Build()
}
