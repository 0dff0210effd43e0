// Package openapi describes oaskema schema nodes as JSON Schema and builds
// OpenAPI request fragments from them.
//
// Convert is a pure, total walk over the node tree. BuildLocationSchema wraps
// its output for one request location: body locations (json, form) become
// content keyed by media type, parameter locations (query, header, cookie,
// param) become one Parameter per top-level object field. Cache memoizes both
// by node identity, and Document aggregates fragments per route into an
// OpenAPI 3.0 document rendered as JSON or YAML.
package openapi
