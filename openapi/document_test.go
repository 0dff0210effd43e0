package openapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/reoring/oaskema/dsl"
	"github.com/reoring/oaskema/openapi"
)

func newUserDocument(t *testing.T) *openapi.Document {
	t.Helper()
	doc := openapi.NewDocument(openapi.Info{Title: "users", Version: "1.0.0"}, openapi.Server{URL: "http://localhost:8080"})

	body, _ := openapi.BuildLocationSchema(openapi.LocationJSON, dsl.Object().
		Field("name", dsl.String().Min(1)).
		Field("nickname", dsl.String().Optional()).
		Build())
	path, _ := openapi.BuildLocationSchema(openapi.LocationParam, dsl.Object().
		Field("id", dsl.String().Optional()).
		Build())
	header, _ := openapi.BuildLocationSchema(openapi.LocationHeader, dsl.Object().
		Field("x-trace", dsl.String().Optional()).
		Build())

	require.NoError(t, doc.AddOperation("put", "/users/{id}",
		openapi.Operation{OperationID: "updateUser", Tags: []string{"users"}}, body, path, header, nil))
	require.NoError(t, doc.AddOperation("GET", "/users", openapi.Operation{
		OperationID: "listUsers",
		Responses:   map[string]openapi.Response{"200": {Description: "OK"}},
	}))
	return doc
}

func TestDocument_AddOperation(t *testing.T) {
	doc := newUserDocument(t)

	op, ok := doc.Operation("PUT", "/users/{id}")
	require.True(t, ok)
	require.NotNil(t, op.RequestBody)
	assert.True(t, op.RequestBody.Required)
	require.Len(t, op.Parameters, 2)
	assert.Equal(t, "path", op.Parameters[0].In)
	assert.True(t, op.Parameters[0].Required, "path parameters are always required")
	assert.Equal(t, "header", op.Parameters[1].In)
	assert.False(t, op.Parameters[1].Required)
	assert.Equal(t, "Request validation failed", op.Responses["400"].Description)
	assert.Equal(t, "Successful response", op.Responses["default"].Description)

	list, ok := doc.Operation("get", "/users")
	require.True(t, ok)
	assert.Len(t, list.Responses, 1)
	assert.Nil(t, list.RequestBody)

	_, ok = doc.Operation("DELETE", "/users")
	assert.False(t, ok)
}

func TestDocument_Errors(t *testing.T) {
	doc := newUserDocument(t)
	assert.ErrorContains(t, doc.AddOperation("GET", "/users", openapi.Operation{}), "duplicate operation GET /users")
	assert.ErrorContains(t, doc.AddOperation("TRACE", "/x", openapi.Operation{}), "unsupported method")
	assert.ErrorContains(t, doc.AddOperation("GET", "users", openapi.Operation{}), "invalid path")
}

func TestDocument_ResponsesNotShared(t *testing.T) {
	doc := openapi.NewDocument(openapi.Info{Title: "t", Version: "1"})
	responses := map[string]openapi.Response{"201": {Description: "Created"}}
	frag, _ := openapi.BuildLocationSchema(openapi.LocationJSON, dsl.String().Build())

	require.NoError(t, doc.AddOperation("POST", "/a", openapi.Operation{Responses: responses}, frag))
	assert.Len(t, responses, 1)
}

func TestDocument_ParameterReplacement(t *testing.T) {
	doc := openapi.NewDocument(openapi.Info{Title: "t", Version: "1"})
	first, _ := openapi.BuildLocationSchema(openapi.LocationQuery, dsl.Object().Field("q", dsl.String()).Build())
	second, _ := openapi.BuildLocationSchema(openapi.LocationQuery, dsl.Object().Field("q", dsl.Number().Optional()).Build())

	require.NoError(t, doc.AddOperation("GET", "/search", openapi.Operation{}, first, second))
	op, _ := doc.Operation("GET", "/search")
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "number", op.Parameters[0].Schema.Type)
	assert.False(t, op.Parameters[0].Required)
}

func TestDocument_JSON(t *testing.T) {
	b, err := newUserDocument(t).JSON()
	require.NoError(t, err)
	out := string(b)

	assert.Equal(t, "3.0.3", gjson.Get(out, "openapi").String())
	assert.Equal(t, "users", gjson.Get(out, "info.title").String())
	assert.Equal(t, "http://localhost:8080", gjson.Get(out, "servers.0.url").String())

	put := gjson.Get(out, `paths./users/\{id\}.put`)
	require.True(t, put.Exists(), out)
	assert.Equal(t, "updateUser", put.Get("operationId").String())
	schema := put.Get(`requestBody.content.application/json.schema`)
	assert.Equal(t, []string{"name", "nickname"}, keys(schema.Get("properties")))
	assert.Equal(t, int64(1), schema.Get("properties.name.minLength").Int())
	assert.Len(t, schema.Get("required").Array(), 1)
	assert.Equal(t, "id", put.Get("parameters.0.name").String())
}

func TestDocument_YAML(t *testing.T) {
	b, err := newUserDocument(t).YAML()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, "3.0.3", got["openapi"])

	paths := got["paths"].(map[string]any)
	put := paths["/users/{id}"].(map[string]any)["put"].(map[string]any)
	schema := put["requestBody"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"name"}, schema["required"])
	assert.Equal(t, 1, schema["properties"].(map[string]any)["name"].(map[string]any)["minLength"])
}
