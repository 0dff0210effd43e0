// Package dsl provides zod-like builders for oaskema schema nodes.
//
// Overview
//   - Primitives: String()/Number()/Bool()/Date() with chained checks
//     (Min/Max/Length/Email/URL/Pattern for strings, Min/Max/Gt/Lt for numbers).
//   - Composites: Object().Field(...), Array(elem), Union(a, b, ...),
//     Literal(values...), Enum(values...).
//   - Wrappers: every builder has Optional()/Nullable()/Default(v); the
//     package-level Optional/Nullable/Default functions do the same.
//   - Build() returns a fresh oaskema.Node; checks keep declaration order.
//
// Example
//
//	user := g.Object().
//	    Field("name", g.String().Min(1).Max(100)).
//	    Field("email", g.String().Email()).
//	    Field("age", g.Number().Min(0).Max(120).Optional()).
//	    Field("theme", g.Enum("dark", "light").Default("light")).
//	    Build()
//
//	// JSON Schema description
//	sch := openapi.Convert(user)
//	// b, _ := json.MarshalIndent(sch, "", "  ")
//
// Required fields
//
//	Fields are required unless their outermost wrapper is Optional or
//	Default. Nullable() alone keeps a field required.
package dsl
