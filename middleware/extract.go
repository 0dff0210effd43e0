package middleware

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/samber/lo"

	oaskema "github.com/reoring/oaskema"
	"github.com/reoring/oaskema/openapi"
)

// extract reads the raw value for loc from r. Body locations decode the
// payload; parameter locations collect string values into an object keyed by
// field name. Missing fields are absent from the object rather than empty.
func extract(r *http.Request, loc openapi.Location, n oaskema.Node, pathValue func(string) string) (any, error) {
	switch loc {
	case openapi.LocationJSON:
		return decodeJSON(r.Body)
	case openapi.LocationForm:
		if err := r.ParseForm(); err != nil {
			return nil, errors.Wrap(err, "parse form")
		}
		return collect(n, func(name string) []string { return r.PostForm[name] }, r.PostForm), nil
	case openapi.LocationQuery:
		q := r.URL.Query()
		return collect(n, func(name string) []string { return q[name] }, q), nil
	case openapi.LocationHeader:
		return collect(n, r.Header.Values, r.Header), nil
	case openapi.LocationCookie:
		all := map[string][]string{}
		for _, c := range r.Cookies() {
			all[c.Name] = append(all[c.Name], c.Value)
		}
		return collect(n, func(name string) []string { return all[name] }, all), nil
	case openapi.LocationParam:
		return collect(n, func(name string) []string {
			if v := pathValue(name); v != "" {
				return []string{v}
			}
			return nil
		}, nil), nil
	}
	return nil, errors.Newf("unsupported location %q", loc)
}

func decodeJSON(body io.Reader) (any, error) {
	if body == nil {
		return nil, nil
	}
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode json body")
	}
	return v, nil
}

// collect builds the object handed to the parser. With an object schema each
// declared field is looked up by name; array fields keep every value, scalar
// fields keep the first. Without one, every key in all is taken.
func collect(n oaskema.Node, get func(string) []string, all map[string][]string) map[string]any {
	out := map[string]any{}
	obj, ok := oaskema.Unwrap(n).(*oaskema.Object)
	if !ok {
		for k, vs := range all {
			if len(vs) > 0 {
				out[k] = vs[0]
			}
		}
		return out
	}
	for _, f := range obj.Fields {
		vs := get(f.Name)
		if len(vs) == 0 {
			continue
		}
		if _, isArray := oaskema.Unwrap(f.Schema).(*oaskema.Array); isArray {
			out[f.Name] = lo.ToAnySlice(vs)
			continue
		}
		out[f.Name] = vs[0]
	}
	return out
}
