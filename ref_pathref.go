package oaskema

import (
	"strconv"
	"strings"

	"github.com/reoring/oaskema/i18n"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef struct {
	parts []string
}

// Root returns the empty path ("/").
func Root() PathRef { return PathRef{} }

// Field appends an object key, escaping '~' and '/' per RFC 6901.
func (p PathRef) Field(name string) PathRef {
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return PathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p PathRef) Index(i int) PathRef {
	return PathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue creates an Issue at p with a translated message.
func (p PathRef) Issue(code string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, stringParams(params)), Params: params}
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch t := v.(type) {
		case string:
			out[k] = t
		case int:
			out[k] = strconv.Itoa(t)
		case float64:
			out[k] = strconv.FormatFloat(t, 'g', -1, 64)
		}
	}
	return out
}
