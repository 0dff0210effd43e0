package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/reoring/oaskema/openapi"
)

// Router wraps an http.ServeMux and records every validated route in an
// OpenAPI document.
type Router struct {
	mux    *http.ServeMux
	doc    *openapi.Document
	logger *slog.Logger
}

type RouterOption func(*Router)

func WithRouterLogger(l *slog.Logger) RouterOption { return func(r *Router) { r.logger = l } }

// WithMux registers routes on an existing mux instead of a fresh one.
func WithMux(m *http.ServeMux) RouterOption { return func(r *Router) { r.mux = m } }

func NewRouter(doc *openapi.Document, opts ...RouterOption) *Router {
	rt := &Router{doc: doc}
	for _, o := range opts {
		o(rt)
	}
	if rt.mux == nil {
		rt.mux = http.NewServeMux()
	}
	if rt.logger == nil {
		rt.logger = slog.Default()
	}
	return rt
}

func (rt *Router) Document() *openapi.Document { return rt.doc }

// Handle registers h under a method pattern such as "POST /users/{id}".
// Validators run in the order given; their fragments are merged into the
// operation. Validators whose location could not be described still run but
// contribute nothing to the document. The operation is recorded only after
// the mux accepted the pattern.
func (rt *Router) Handle(pattern string, op openapi.Operation, h http.Handler, validators ...*Validation) error {
	method, path, err := splitPattern(pattern)
	if err != nil {
		return err
	}
	docPath := documentPath(path)
	if !openapi.SupportedMethod(method) {
		return errors.Newf("register %s: unsupported method %q", pattern, method)
	}
	if _, ok := rt.doc.Operation(method, docPath); ok {
		return errors.Newf("register %s: duplicate operation %s %s", pattern, strings.ToUpper(method), docPath)
	}
	for i := len(validators) - 1; i >= 0; i-- {
		h = validators[i].Handler(h)
	}
	if err := rt.register(pattern, h); err != nil {
		return err
	}

	frags := lo.FilterMap(validators, func(v *Validation, _ int) (*openapi.Fragment, bool) {
		return v.Fragment(), v.Fragment() != nil
	})
	if err := rt.doc.AddOperation(method, docPath, op, frags...); err != nil {
		return errors.Wrapf(err, "register %s", pattern)
	}
	rt.logger.Debug("oaskema: route registered", "method", method, "path", path, "validators", len(validators))
	return nil
}

// register adds h to the mux, turning its conflict panics into errors.
func (rt *Router) register(pattern string, h http.Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("register %s: %v", pattern, r)
		}
	}()
	rt.mux.Handle(pattern, h)
	return nil
}

func (rt *Router) HandleFunc(pattern string, op openapi.Operation, h http.HandlerFunc, validators ...*Validation) error {
	return rt.Handle(pattern, op, h, validators...)
}

// ServeDocument serves the document at pattern. Paths ending in ".yaml" or
// ".yml" are rendered as YAML, everything else as JSON. The route itself is
// not added to the document.
func (rt *Router) ServeDocument(pattern string) {
	asYAML := strings.HasSuffix(pattern, ".yaml") || strings.HasSuffix(pattern, ".yml")
	rt.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		var (
			b   []byte
			err error
		)
		if asYAML {
			b, err = rt.doc.YAML()
			w.Header().Set("Content-Type", "application/yaml")
		} else {
			b, err = rt.doc.JSON()
			w.Header().Set("Content-Type", "application/json")
		}
		if err != nil {
			rt.logger.Error("oaskema: render document", "error", err)
			http.Error(w, "failed to render document", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(b)
	})
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) { rt.mux.ServeHTTP(w, r) }

func splitPattern(pattern string) (method, path string, err error) {
	method, path, ok := strings.Cut(strings.TrimSpace(pattern), " ")
	path = strings.TrimSpace(path)
	if !ok || method == "" || path == "" {
		return "", "", errors.Newf("pattern %q must be of the form \"METHOD /path\"", pattern)
	}
	if i := strings.Index(path, "/"); i > 0 {
		path = path[i:] // drop host
	}
	return method, path, nil
}

// documentPath rewrites mux wildcards into OpenAPI templates: "{rest...}"
// becomes "{rest}" and the "{$}" anchor is dropped.
func documentPath(path string) string {
	path = strings.ReplaceAll(path, "{$}", "")
	path = strings.ReplaceAll(path, "...}", "}")
	if path == "" {
		return "/"
	}
	return path
}

// TemplatePath rewrites colon and star segments used by gin and echo
// ("/users/:id", "/files/*path") into OpenAPI templates. A bare "*" becomes
// "{wildcard}".
func TemplatePath(path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		switch {
		case strings.HasPrefix(s, ":") && len(s) > 1:
			segs[i] = "{" + s[1:] + "}"
		case s == "*":
			segs[i] = "{wildcard}"
		case strings.HasPrefix(s, "*"):
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}
