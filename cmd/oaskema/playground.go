package main

import (
	oaskema "github.com/reoring/oaskema"
	g "github.com/reoring/oaskema/dsl"
)

// playgroundSchema is the user profile schema printed by describe and
// location when no other schema is selected.
func playgroundSchema() oaskema.Node {
	return g.Object().
		Field("name", g.String().Min(1).Max(100)).
		Field("age", g.Number().Min(0).Max(120)).
		Field("email", g.String().Email()).
		Field("isActive", g.Bool()).
		Field("tags", g.Array(g.String())).
		Field("address", g.Object().
			Field("street", g.String()).
			Field("city", g.String()).
			Field("zipCode", g.String().Length(5))).
		Field("createdAt", g.Date()).
		Field("updatedAt", g.Date().Optional()).
		Field("profile", g.Object().
			Field("bio", g.String().Max(500).Optional()).
			Field("website", g.String().URL().Optional())).
		Field("preferences", g.Enum("dark", "light").Optional()).
		Build()
}

// searchQuerySchema is a flat object suited to parameter locations.
func searchQuerySchema() oaskema.Node {
	return g.Object().
		Field("q", g.String().Min(1)).
		Field("page", g.Number().Min(1).Default(1)).
		Field("limit", g.Number().Min(1).Max(100).Optional()).
		Field("sort", g.Enum("asc", "desc").Optional()).
		Build()
}

var schemas = map[string]func() oaskema.Node{
	"profile": playgroundSchema,
	"search":  searchQuerySchema,
}
