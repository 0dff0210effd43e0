package openapi

import (
	"net/http"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	js "github.com/reoring/oaskema/jsonschema"
)

// Version is the OpenAPI version written into documents.
const Version = "3.0.3"

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ParameterObject is a document-level parameter; unlike Parameter its In
// field already uses OpenAPI names ("path" for param).
type ParameterObject struct {
	Name     string     `json:"name" yaml:"name"`
	In       string     `json:"in" yaml:"in"`
	Required bool       `json:"required" yaml:"required"`
	Schema   *js.Schema `json:"schema" yaml:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type Response struct {
	Description string `json:"description" yaml:"description"`
}

// Operation describes one method on one path.
type Operation struct {
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []ParameterObject   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// SupportedMethod reports whether method has an operation slot in a path item.
func SupportedMethod(method string) bool { return (&PathItem{}).slot(method) != nil }

func (p *PathItem) slot(method string) **Operation {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return &p.Get
	case http.MethodPut:
		return &p.Put
	case http.MethodPost:
		return &p.Post
	case http.MethodDelete:
		return &p.Delete
	case http.MethodOptions:
		return &p.Options
	case http.MethodHead:
		return &p.Head
	case http.MethodPatch:
		return &p.Patch
	}
	return nil
}

// Document aggregates route fragments into an OpenAPI document. It is safe
// for concurrent use.
type Document struct {
	mu   sync.RWMutex
	spec spec
}

type spec struct {
	OpenAPI string               `json:"openapi" yaml:"openapi"`
	Info    Info                 `json:"info" yaml:"info"`
	Servers []Server             `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths   map[string]*PathItem `json:"paths" yaml:"paths"`
}

func NewDocument(info Info, servers ...Server) *Document {
	return &Document{spec: spec{
		OpenAPI: Version,
		Info:    info,
		Servers: servers,
		Paths:   map[string]*PathItem{},
	}}
}

// AddOperation registers method+path with the given metadata and merges the
// request fragments into it: body content goes to requestBody, parameters
// are appended (a later parameter with the same name and location replaces
// an earlier one). Nil fragments are skipped.
func (d *Document) AddOperation(method, path string, op Operation, fragments ...*Fragment) error {
	if path == "" || !strings.HasPrefix(path, "/") {
		return errors.Newf("openapi: invalid path %q", path)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	item, ok := d.spec.Paths[path]
	if !ok {
		item = &PathItem{}
	}
	slot := item.slot(method)
	if slot == nil {
		return errors.Newf("openapi: unsupported method %q", method)
	}
	if *slot != nil {
		return errors.Newf("openapi: duplicate operation %s %s", strings.ToUpper(method), path)
	}

	validated := false
	for _, f := range fragments {
		if f == nil {
			continue
		}
		validated = true
		mergeFragment(&op, f)
	}
	responses := map[string]Response{}
	for code, r := range op.Responses {
		responses[code] = r
	}
	if len(responses) == 0 {
		responses["default"] = Response{Description: "Successful response"}
	}
	op.Responses = responses
	if validated {
		if _, ok := op.Responses["400"]; !ok {
			op.Responses["400"] = Response{Description: "Request validation failed"}
		}
	}
	*slot = &op
	d.spec.Paths[path] = item
	return nil
}

func mergeFragment(op *Operation, f *Fragment) {
	for mt, m := range f.Content {
		if op.RequestBody == nil {
			op.RequestBody = &RequestBody{Required: true, Content: map[string]MediaType{}}
		}
		op.RequestBody.Content[mt] = m
	}
	for _, p := range f.Parameters {
		po := ParameterObject{Name: p.Name, In: p.In.ParameterIn(), Required: p.Required, Schema: p.Schema}
		if po.In == "path" {
			po.Required = true
		}
		replaced := false
		for i := range op.Parameters {
			if op.Parameters[i].Name == po.Name && op.Parameters[i].In == po.In {
				op.Parameters[i] = po
				replaced = true
			}
		}
		if !replaced {
			op.Parameters = append(op.Parameters, po)
		}
	}
}

// Operation returns a copy of the registered operation.
func (d *Document) Operation(method, path string) (Operation, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	item, ok := d.spec.Paths[path]
	if !ok {
		return Operation{}, false
	}
	slot := item.slot(method)
	if slot == nil || *slot == nil {
		return Operation{}, false
	}
	return **slot, true
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, err := json.MarshalIndent(d.spec, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "openapi: marshal document json")
	}
	return b, nil
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, err := yaml.Marshal(d.spec)
	if err != nil {
		return nil, errors.Wrap(err, "openapi: marshal document yaml")
	}
	return b, nil
}
