package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	oaskema "github.com/reoring/oaskema"
	"github.com/reoring/oaskema/openapi"
)

// ctxKeyValue is a typed context key for the parsed value of one location.
type ctxKeyValue struct{ loc openapi.Location }

// ContextWithValue attaches the parsed value for loc to the context.
func ContextWithValue(ctx context.Context, loc openapi.Location, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValue{loc: loc}, parsed{v: v})
}

// ValueFromContext retrieves the parsed value for loc.
func ValueFromContext(ctx context.Context, loc openapi.Location) (any, bool) {
	v, ok := ctx.Value(ctxKeyValue{loc: loc}).(parsed)
	return v.v, ok
}

// ObjectFromContext retrieves the parsed value for loc as an object.
func ObjectFromContext(ctx context.Context, loc openapi.Location) (map[string]any, bool) {
	v, ok := ValueFromContext(ctx, loc)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// parsed boxes the stored value so that a nil result still reports ok.
type parsed struct{ v any }

// Option configures a Validation.
type Option func(*Validation)

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option { return func(v *Validation) { v.logger = l } }

// WithCache builds the fragment through a shared conversion cache.
func WithCache(c *openapi.Cache) Option { return func(v *Validation) { v.cache = c } }

// WithParseOpt overrides the parse options. String coercion is enabled by
// default for every location except json.
func WithParseOpt(opt oaskema.ParseOpt) Option {
	return func(v *Validation) { v.opt = opt; v.optSet = true }
}

// Validation validates one request location against a schema and carries
// the matching OpenAPI fragment for route registration.
type Validation struct {
	loc    openapi.Location
	node   oaskema.Node
	frag   *openapi.Fragment
	diags  openapi.Diagnostics
	logger *slog.Logger
	cache  *openapi.Cache
	opt    oaskema.ParseOpt
	optSet bool
}

// Validator builds the fragment for (loc, n) once. Unsupported locations are
// logged at warn level and the resulting handler passes requests through
// untouched.
func Validator(loc openapi.Location, n oaskema.Node, opts ...Option) *Validation {
	v := &Validation{loc: loc, node: n}
	for _, o := range opts {
		o(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	if !v.optSet {
		v.opt = oaskema.ParseOpt{CoerceStrings: loc != openapi.LocationJSON}
	}
	if v.cache != nil {
		v.frag, v.diags = v.cache.BuildLocationSchema(loc, n)
	} else {
		v.frag, v.diags = openapi.BuildLocationSchema(loc, n)
	}
	for _, d := range v.diags {
		v.logger.Warn("oaskema: schema not described", "location", string(d.Location), "code", d.Code, "warning", d.Message)
	}
	return v
}

func (v *Validation) Location() openapi.Location { return v.loc }

// Fragment returns the description for this validator, or nil when the
// location could not be described.
func (v *Validation) Fragment() *openapi.Fragment { return v.frag }

func (v *Validation) Diagnostics() openapi.Diagnostics { return v.diags }

// Handler validates the request before calling next. On failure it responds
// 400 with an Issues payload; on success the parsed value is stored in the
// request context (see ValueFromContext).
func (v *Validation) Handler(next http.Handler) http.Handler {
	if !v.loc.Supported() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		val, err := v.Parse(r)
		if err != nil {
			if iss, ok := oaskema.AsIssues(err); ok {
				WriteIssues(w, iss)
				return
			}
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		ctx := ContextWithValue(r.Context(), v.loc, val)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Parse extracts the location's raw values from r and validates them. Path
// parameters are read with r.PathValue.
func (v *Validation) Parse(r *http.Request) (any, error) {
	return v.ParseRequest(r, r.PathValue)
}

// ParseRequest is Parse for routers that keep path parameters outside the
// request, such as gin or echo.
func (v *Validation) ParseRequest(r *http.Request, pathValue func(name string) string) (any, error) {
	raw, err := extract(r, v.loc, v.node, pathValue)
	if err != nil {
		return nil, oaskema.Issues{oaskema.IssueAt(oaskema.Root(), oaskema.CodeParseError, err.Error(), nil)}
	}
	return oaskema.Parse(r.Context(), v.node, raw, v.opt)
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []oaskema.Issue) map[string]any {
	return map[string]any{"issues": issues}
}

// WriteIssues responds 400 with the Issues payload.
func WriteIssues(w http.ResponseWriter, issues oaskema.Issues) {
	writeJSON(w, http.StatusBadRequest, ErrorPayload(issues))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
