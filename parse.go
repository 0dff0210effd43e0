package oaskema

import (
	"context"
	"encoding/json"
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Parse validates v against n and returns the normalized value: unknown
// object keys are dropped, defaults are filled for missing fields and
// coerced strings are replaced by their typed value. On failure the error is
// an Issues value.
//
// v is expected in decoded-JSON shape (map[string]any, []any, string,
// float64 or json.Number, bool, nil).
func Parse(ctx context.Context, n Node, v any, opts ...ParseOpt) (any, error) {
	if n == nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	p := &parser{ctx: ctx, opt: pickOpt(opts)}
	out := p.walk(n, v, Root())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.issues) > 0 {
		return nil, p.issues
	}
	return out, nil
}

// Validate reports whether v conforms to n, discarding the parsed value.
func Validate(ctx context.Context, n Node, v any, opts ...ParseOpt) error {
	_, err := Parse(ctx, n, v, opts...)
	return err
}

// Is returns true if v conforms to n.
func Is(ctx context.Context, n Node, v any) bool {
	return Validate(ctx, n, v) == nil
}

type parser struct {
	ctx    context.Context
	opt    ParseOpt
	issues Issues
}

func (p *parser) add(iss Issue) { p.issues = append(p.issues, iss) }

func (p *parser) halted() bool {
	if p.opt.FailFast && len(p.issues) > 0 {
		return true
	}
	return p.ctx.Err() != nil
}

func (p *parser) typeIssue(path PathRef, expected string) {
	p.add(path.Issue(CodeInvalidType, map[string]any{"expected": expected}))
}

func (p *parser) walk(n Node, v any, path PathRef) any {
	switch t := n.(type) {
	case *Optional:
		return p.walk(t.Inner, v, path)
	case *Default:
		return p.walk(t.Inner, v, path)
	case *Nullable:
		if v == nil {
			return nil
		}
		return p.walk(t.Inner, v, path)
	case *String:
		s, ok := v.(string)
		if !ok {
			p.typeIssue(path, "string")
			return nil
		}
		p.stringChecks(t, s, path)
		return s
	case *Number:
		f, out, ok := p.number(v)
		if !ok {
			p.typeIssue(path, "number")
			return nil
		}
		p.numberChecks(t, f, path)
		return out
	case *Boolean:
		switch b := v.(type) {
		case bool:
			return b
		case string:
			if p.opt.CoerceStrings {
				if pb, err := strconv.ParseBool(b); err == nil {
					return pb
				}
			}
		}
		p.typeIssue(path, "boolean")
		return nil
	case *Date:
		switch d := v.(type) {
		case time.Time:
			return d
		case string:
			tm, err := time.Parse(time.RFC3339Nano, d)
			if err != nil {
				iss := path.Issue(CodeInvalidFormat, map[string]any{"format": "date-time"})
				iss.Cause = err
				p.add(iss)
				return nil
			}
			return tm
		}
		p.typeIssue(path, "date")
		return nil
	case *Object:
		return p.object(t, v, path)
	case *Array:
		return p.array(t, v, path)
	case *Literal:
		for _, want := range t.Values {
			if literalEqual(want, v) {
				return want
			}
		}
		p.add(path.Issue(CodeInvalidLiteral, map[string]any{"expected": t.Values}))
		return nil
	case *Enum:
		s, ok := v.(string)
		if !ok {
			p.typeIssue(path, "string")
			return nil
		}
		for _, want := range t.Values {
			if s == want {
				return s
			}
		}
		p.add(path.Issue(CodeInvalidEnum, map[string]any{"options": t.Values}))
		return nil
	case *Union:
		for _, opt := range t.Options {
			sub := &parser{ctx: p.ctx, opt: p.opt}
			out := sub.walk(opt, v, path)
			if len(sub.issues) == 0 {
				return out
			}
		}
		p.add(path.Issue(CodeInvalidUnion, nil))
		return nil
	default:
		// Unknown node kinds accept any value.
		return v
	}
}

func (p *parser) object(o *Object, v any, path PathRef) any {
	m, ok := v.(map[string]any)
	if !ok {
		p.typeIssue(path, "object")
		return nil
	}
	out := make(map[string]any, len(o.Fields))
	for _, f := range o.Fields {
		if p.halted() {
			break
		}
		val, present := m[f.Name]
		if !present {
			switch d := f.Schema.(type) {
			case *Default:
				out[f.Name] = d.Value
			case *Optional:
			default:
				p.add(path.Field(f.Name).Issue(CodeRequired, nil))
			}
			continue
		}
		out[f.Name] = p.walk(f.Schema, val, path.Field(f.Name))
	}
	return out
}

func (p *parser) array(a *Array, v any, path PathRef) any {
	arr, ok := v.([]any)
	if !ok {
		p.typeIssue(path, "array")
		return nil
	}
	for _, c := range a.Checks {
		switch c := c.(type) {
		case MinItems:
			if len(arr) < c.N {
				p.add(path.Issue(CodeTooShort, map[string]any{"min": c.N, "got": len(arr)}))
			}
		case MaxItems:
			if len(arr) > c.N {
				p.add(path.Issue(CodeTooLong, map[string]any{"max": c.N, "got": len(arr)}))
			}
		}
	}
	out := make([]any, 0, len(arr))
	for i, e := range arr {
		if p.halted() {
			break
		}
		out = append(out, p.walk(a.Element, e, path.Index(i)))
	}
	return out
}

func (p *parser) stringChecks(s *String, v string, path PathRef) {
	n := utf8.RuneCountInString(v)
	for _, c := range s.Checks {
		if p.halted() {
			return
		}
		switch c := c.(type) {
		case MinLength:
			if n < c.N {
				p.add(path.Issue(CodeTooShort, map[string]any{"min": c.N, "got": n}))
			}
		case MaxLength:
			if n > c.N {
				p.add(path.Issue(CodeTooLong, map[string]any{"max": c.N, "got": n}))
			}
		case ExactLength:
			if n < c.N {
				p.add(path.Issue(CodeTooShort, map[string]any{"min": c.N, "got": n}))
			} else if n > c.N {
				p.add(path.Issue(CodeTooLong, map[string]any{"max": c.N, "got": n}))
			}
		case Format:
			if !validFormat(c.Name, v) {
				p.add(path.Issue(CodeInvalidFormat, map[string]any{"format": c.Name}))
			}
		case Pattern:
			if c.Regexp != nil && !c.Regexp.MatchString(v) {
				p.add(path.Issue(CodePattern, map[string]any{"pattern": c.Source()}))
			}
		}
	}
}

func (p *parser) numberChecks(s *Number, f float64, path PathRef) {
	for _, c := range s.Checks {
		if p.halted() {
			return
		}
		switch c := c.(type) {
		case Min:
			if f < c.Value || (c.Exclusive && f == c.Value) {
				p.add(path.Issue(CodeTooSmall, map[string]any{"min": c.Value, "exclusive": c.Exclusive}))
			}
		case Max:
			if f > c.Value || (c.Exclusive && f == c.Value) {
				p.add(path.Issue(CodeTooBig, map[string]any{"max": c.Value, "exclusive": c.Exclusive}))
			}
		}
	}
}

// number returns the float view used by checks and the value to keep in the
// parsed output.
func (p *parser) number(v any) (float64, any, bool) {
	switch t := v.(type) {
	case float64:
		return t, t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		return float64(t), float64(t), true
	case int:
		return float64(t), t, true
	case int32:
		return float64(t), t, true
	case int64:
		return float64(t), t, true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, nil, false
		}
		return f, t, true
	case string:
		if !p.opt.CoerceStrings {
			return 0, nil, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, nil, false
		}
		return f, f, true
	}
	return 0, nil, false
}

func validFormat(name, v string) bool {
	switch name {
	case FormatEmail:
		addr, err := mail.ParseAddress(v)
		return err == nil && addr.Address == v
	case FormatURI:
		u, err := url.Parse(v)
		return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
	}
	return true
}

// literalEqual compares literal values, treating all numeric
// representations as equal when their float values match.
func literalEqual(want, got any) bool {
	if wf, ok := asFloat(want); ok {
		gf, ok := asFloat(got)
		return ok && wf == gf
	}
	return want == got
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}
