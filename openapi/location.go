package openapi

import (
	"strings"

	"github.com/samber/lo"

	js "github.com/reoring/oaskema/jsonschema"
)

// Location is the part of a request a schema validates.
type Location string

const (
	LocationJSON   Location = "json"
	LocationForm   Location = "form"
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationCookie Location = "cookie"
	LocationParam  Location = "param"
)

// SupportedLocations lists every location BuildLocationSchema understands.
var SupportedLocations = []Location{LocationJSON, LocationForm, LocationQuery, LocationHeader, LocationCookie, LocationParam}

// Media types used for body locations.
const (
	MediaTypeJSON = "application/json"
	MediaTypeForm = "application/x-www-form-urlencoded"
)

// IsBody reports whether the location is described as request body content.
func (l Location) IsBody() bool { return l == LocationJSON || l == LocationForm }

// IsParameter reports whether each object field becomes a named parameter.
func (l Location) IsParameter() bool {
	switch l {
	case LocationQuery, LocationHeader, LocationCookie, LocationParam:
		return true
	}
	return false
}

func (l Location) Supported() bool { return l.IsBody() || l.IsParameter() }

// ParameterIn maps the location to the OpenAPI parameter "in" value.
func (l Location) ParameterIn() string {
	if l == LocationParam {
		return "path"
	}
	return string(l)
}

// Parameter describes one named request parameter.
type Parameter struct {
	Name     string     `json:"name" yaml:"name"`
	In       Location   `json:"in" yaml:"in"`
	Required bool       `json:"required" yaml:"required"`
	Schema   *js.Schema `json:"schema" yaml:"schema"`
}

// MediaType wraps the body schema for one content type.
type MediaType struct {
	Schema *js.Schema `json:"schema" yaml:"schema"`
}

// Fragment is the description produced for one (location, schema) pair.
// Body locations fill Content, parameter locations fill Parameters.
type Fragment struct {
	Location   Location             `json:"-" yaml:"-"`
	Content    map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
	Parameters []Parameter          `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Value returns the bare fragment: the content map for body locations or the
// parameter list otherwise.
func (f *Fragment) Value() any {
	if f == nil {
		return nil
	}
	if f.Location.IsBody() {
		return f.Content
	}
	return f.Parameters
}

// Clone returns a deep copy of f.
func (f *Fragment) Clone() *Fragment {
	if f == nil {
		return nil
	}
	c := &Fragment{Location: f.Location}
	if f.Content != nil {
		c.Content = make(map[string]MediaType, len(f.Content))
		for k, v := range f.Content {
			c.Content[k] = MediaType{Schema: v.Schema.Clone()}
		}
	}
	if f.Parameters != nil {
		c.Parameters = lo.Map(f.Parameters, func(p Parameter, _ int) Parameter {
			p.Schema = p.Schema.Clone()
			return p
		})
	}
	return c
}

func supportedList() string {
	names := lo.Map(SupportedLocations, func(l Location, _ int) string { return string(l) })
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}
