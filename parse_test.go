package oaskema_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	oaskema "github.com/reoring/oaskema"
	"github.com/reoring/oaskema/dsl"
	"github.com/reoring/oaskema/i18n"
)

func issuesOf(t *testing.T, err error) oaskema.Issues {
	t.Helper()
	iss, ok := oaskema.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	return iss
}

func TestParse_ObjectNormalizes(t *testing.T) {
	s := dsl.Object().
		Field("name", dsl.String()).
		Field("role", dsl.Enum("admin", "user").Default("user")).
		Field("nick", dsl.String().Optional()).
		Build()

	got, err := oaskema.Parse(context.Background(), s, map[string]any{"name": "ann", "unknown": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"name": "ann", "role": "user"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestParse_RequiredAndNullable(t *testing.T) {
	s := dsl.Object().
		Field("id", dsl.String()).
		Field("note", dsl.String().Nullable()).
		Build()

	_, err := oaskema.Parse(context.Background(), s, map[string]any{"note": nil})
	iss := issuesOf(t, err)
	if len(iss) != 1 || iss[0].Code != oaskema.CodeRequired || iss[0].Path != "/id" {
		t.Fatalf("unexpected issues: %+v", iss)
	}

	_, err = oaskema.Parse(context.Background(), s, map[string]any{"id": "1"})
	iss = issuesOf(t, err)
	if iss[0].Path != "/note" {
		t.Fatalf("nullable field must still be present: %+v", iss)
	}

	if _, err := oaskema.Parse(context.Background(), s, map[string]any{"id": "1", "note": nil}); err != nil {
		t.Fatalf("null should be accepted: %v", err)
	}
}

func TestParse_StringChecks(t *testing.T) {
	cases := []struct {
		name string
		b    dsl.Builder
		in   string
		code string
	}{
		{"min", dsl.String().Min(3), "ab", oaskema.CodeTooShort},
		{"max", dsl.String().Max(2), "abc", oaskema.CodeTooLong},
		{"exact short", dsl.String().Length(2), "a", oaskema.CodeTooShort},
		{"exact long", dsl.String().Length(2), "abc", oaskema.CodeTooLong},
		{"runes", dsl.String().Max(2), "日本", ""},
		{"email", dsl.String().Email(), "nope", oaskema.CodeInvalidFormat},
		{"email ok", dsl.String().Email(), "a@example.com", ""},
		{"url", dsl.String().URL(), "example.com", oaskema.CodeInvalidFormat},
		{"url ok", dsl.String().URL(), "https://example.com/x", ""},
		{"pattern", dsl.String().Pattern(`^\d+$`), "12a", oaskema.CodePattern},
		{"pattern ok", dsl.String().Pattern(`^\d+$`), "123", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := oaskema.Validate(context.Background(), tc.b.Build(), tc.in)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			iss := issuesOf(t, err)
			if iss[0].Code != tc.code {
				t.Fatalf("code = %s, want %s", iss[0].Code, tc.code)
			}
		})
	}
}

func TestParse_NumberBounds(t *testing.T) {
	ctx := context.Background()
	incl := dsl.Number().Min(0).Max(10).Build()
	excl := dsl.Number().Gt(0).Lt(10).Build()

	for _, v := range []any{0.0, 10, json.Number("5")} {
		if err := oaskema.Validate(ctx, incl, v); err != nil {
			t.Fatalf("%v should pass inclusive bounds: %v", v, err)
		}
	}
	for _, v := range []any{0.0, 10.0} {
		if oaskema.Is(ctx, excl, v) {
			t.Fatalf("%v should fail exclusive bounds", v)
		}
	}
	iss := issuesOf(t, oaskema.Validate(ctx, incl, -1.0))
	if iss[0].Code != oaskema.CodeTooSmall || iss[0].Params["min"] != float64(0) {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	iss = issuesOf(t, oaskema.Validate(ctx, incl, 11))
	if iss[0].Code != oaskema.CodeTooBig {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestParse_CoerceStrings(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().Field("n", dsl.Number()).Field("b", dsl.Bool()).Build()
	in := map[string]any{"n": "42", "b": "true"}

	if oaskema.Is(ctx, s, in) {
		t.Fatal("strings must not satisfy number/boolean without coercion")
	}
	got, err := oaskema.Parse(ctx, s, in, oaskema.ParseOpt{CoerceStrings: true})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, map[string]any{"n": 42.0, "b": true}) {
		t.Fatalf("got %#v", got)
	}
}

func TestParse_Date(t *testing.T) {
	ctx := context.Background()
	got, err := oaskema.Parse(ctx, dsl.Date().Build(), "2024-05-01T10:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if !got.(time.Time).Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v", got)
	}
	iss := issuesOf(t, oaskema.Validate(ctx, dsl.Date().Build(), "yesterday"))
	if iss[0].Code != oaskema.CodeInvalidFormat || iss[0].Cause == nil {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestParse_ArrayItems(t *testing.T) {
	ctx := context.Background()
	s := dsl.Array(dsl.Number().Min(0)).Min(1).Max(2).Build()

	iss := issuesOf(t, oaskema.Validate(ctx, s, []any{}))
	if iss[0].Code != oaskema.CodeTooShort {
		t.Fatalf("unexpected: %+v", iss)
	}
	iss = issuesOf(t, oaskema.Validate(ctx, s, []any{1.0, 2.0, 3.0}))
	if iss[0].Code != oaskema.CodeTooLong {
		t.Fatalf("unexpected: %+v", iss)
	}
	iss = issuesOf(t, oaskema.Validate(ctx, s, []any{1.0, -1.0}))
	if iss[0].Path != "/1" {
		t.Fatalf("element path = %s", iss[0].Path)
	}
}

func TestParse_LiteralEnumUnion(t *testing.T) {
	ctx := context.Background()
	if !oaskema.Is(ctx, dsl.Literal(1).Build(), json.Number("1")) {
		t.Fatal("numeric literals compare by value")
	}
	if oaskema.Is(ctx, dsl.Literal("a").Build(), "b") {
		t.Fatal("literal mismatch accepted")
	}
	if oaskema.Is(ctx, dsl.Enum("dark", "light").Build(), "blue") {
		t.Fatal("enum mismatch accepted")
	}
	u := dsl.Union(dsl.String().Min(2), dsl.Number()).Build()
	if !oaskema.Is(ctx, u, 3.0) || !oaskema.Is(ctx, u, "ab") {
		t.Fatal("union option rejected")
	}
	iss := issuesOf(t, oaskema.Validate(ctx, u, "a"))
	if len(iss) != 1 || iss[0].Code != oaskema.CodeInvalidUnion {
		t.Fatalf("unexpected: %+v", iss)
	}
}

func TestParse_FailFast(t *testing.T) {
	s := dsl.Object().Field("a", dsl.String()).Field("b", dsl.String()).Build()
	iss := issuesOf(t, oaskema.Validate(context.Background(), s, map[string]any{}, oaskema.ParseOpt{FailFast: true}))
	if len(iss) != 1 {
		t.Fatalf("fail fast should stop at one issue, got %d", len(iss))
	}
}

func TestParse_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := oaskema.Parse(ctx, dsl.String().Build(), "x")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	s := dsl.Object().
		Field("a", dsl.String()).Field("b", dsl.String()).
		Field("c", dsl.String()).Field("d", dsl.String()).
		Build()
	err := oaskema.Validate(context.Background(), s, map[string]any{})
	want := "required at /a; required at /b; required at /c; ... (total 4)"
	if err.Error() != want {
		t.Fatalf("got %q", err.Error())
	}
}

func TestIssue_Localized(t *testing.T) {
	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })

	iss := issuesOf(t, oaskema.Validate(context.Background(), dsl.Number().Min(5).Build(), 1.0))
	if iss[0].Message != "5 以上である必要があります" {
		t.Fatalf("message = %q", iss[0].Message)
	}
}

func TestIssue_LengthMessagesFitStringsAndArrays(t *testing.T) {
	ctx := context.Background()
	str := issuesOf(t, oaskema.Validate(ctx, dsl.String().Min(3).Build(), "ab"))
	arr := issuesOf(t, oaskema.Validate(ctx, dsl.Array(dsl.String()).Max(1).Build(), []any{"a", "b"}))

	if str[0].Message != "length must be at least 3" {
		t.Fatalf("string message = %q", str[0].Message)
	}
	if arr[0].Message != "length must be at most 1" {
		t.Fatalf("array message = %q", arr[0].Message)
	}
}

func TestPathRef_Escaping(t *testing.T) {
	p := oaskema.Root().Field("a/b").Field("c~d").Index(2)
	if got := p.Pointer(); got != "/a~1b/c~0d/2" {
		t.Fatalf("pointer = %s", got)
	}
	if oaskema.Root().Pointer() != "/" {
		t.Fatal("root pointer should be /")
	}
}
