// Package oaskema models request-validation schemas as a tagged tree and
// describes them for OpenAPI documents.
//
//   - Node: String/Number/Boolean/Date/Object/Array/Literal/Enum/Union plus the
//     Nullable/Optional/Default wrappers. Checks are typed values (MinLength,
//     Pattern, Min, ...), never sniffed from runtime metadata.
//   - Parse/Validate: validate decoded JSON values and report Issues (JSON
//     Pointer, code, message).
//   - openapi: convert a Node into a JSON-Schema description and build
//     per-location request fragments (body content or parameter lists).
//
// Layout:
//   - Builders live under dsl/, the description model under jsonschema/,
//     conversion and document aggregation under openapi/.
//   - HTTP glue lives under middleware/ (net/http), with gin and echo adapters
//     as separate modules. The CLI lives under cmd/oaskema.
//
// Typical usage:
//
//	s := dsl.Object().
//	    Field("name", dsl.String().Min(1)).
//	    Field("age", dsl.Optional(dsl.Number())).
//	    Build()
//	v, err := oaskema.Parse(ctx, s, decoded)
//	frag, diags := openapi.BuildLocationSchema(openapi.LocationJSON, s)
package oaskema
