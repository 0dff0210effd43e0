package jsonschema

import (
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func objectSchema() *Schema {
	props := NewProperties()
	props.Set("zeta", &Schema{Type: "string", MinLength: intp(1)})
	props.Set("alpha", &Schema{Type: "number", Minimum: floatp(0), ExclusiveMinimum: true})
	props.Set("tags", &Schema{Type: "array", Items: &Schema{Type: "string"}, MaxItems: intp(3)})
	return &Schema{Type: "object", Properties: props, Required: []string{"zeta"}}
}

func TestMarshalJSON_KeyOrder(t *testing.T) {
	b, err := json.Marshal(objectSchema())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"object","properties":{"zeta":{"type":"string","minLength":1},` +
		`"alpha":{"type":"number","minimum":0,"exclusiveMinimum":true},` +
		`"tags":{"type":"array","maxItems":3,"items":{"type":"string"}}},"required":["zeta"]}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
}

func TestMarshalJSON_RequiredPresence(t *testing.T) {
	empty, _ := json.Marshal(&Schema{Type: "object", Properties: NewProperties(), Required: []string{}})
	if !strings.Contains(string(empty), `"required":[]`) {
		t.Fatalf("empty required list should be emitted: %s", empty)
	}
	absent, _ := json.Marshal(&Schema{Type: "string"})
	if string(absent) != `{"type":"string"}` {
		t.Fatalf("unexpected: %s", absent)
	}
}

func TestMarshalJSON_NullableDefault(t *testing.T) {
	b, _ := json.Marshal(Schema{Type: "string", Nullable: true, Default: "x", Enum: []any{"x", "y"}})
	if string(b) != `{"type":"string","enum":["x","y"],"nullable":true,"default":"x"}` {
		t.Fatalf("unexpected: %s", b)
	}
}

func TestMarshal_NullDefault(t *testing.T) {
	s := Schema{Type: "string", Nullable: true, HasDefault: true}
	b, _ := json.Marshal(s)
	if string(b) != `{"type":"string","nullable":true,"default":null}` {
		t.Fatalf("unexpected: %s", b)
	}
	y, err := yaml.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(y), "default: null") {
		t.Fatalf("yaml lost null default:\n%s", y)
	}
	if _, ok := (&s).ToMap()["default"]; !ok {
		t.Fatal("ToMap lost null default")
	}
}

func TestMarshalYAML_KeyOrder(t *testing.T) {
	b, err := yaml.Marshal(objectSchema())
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	order := []string{"type: object", "properties:", "zeta:", "alpha:", "tags:", "required:"}
	last := -1
	for _, k := range order {
		i := strings.Index(out, k)
		if i <= last {
			t.Fatalf("%q out of order in:\n%s", k, out)
		}
		last = i
	}
}

func TestToMap(t *testing.T) {
	got := objectSchema().ToMap()
	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"zeta":  map[string]any{"type": "string", "minLength": 1},
			"alpha": map[string]any{"type": "number", "minimum": float64(0), "exclusiveMinimum": true},
			"tags":  map[string]any{"type": "array", "maxItems": 3, "items": map[string]any{"type": "string"}},
		},
		"required": []string{"zeta"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestClone_Deep(t *testing.T) {
	orig := objectSchema()
	c := orig.Clone()
	if !reflect.DeepEqual(orig, c) {
		t.Fatal("clone differs from original")
	}
	*c.Properties.Value("zeta").MinLength = 9
	c.Properties.Value("tags").Items.Type = "number"
	c.Required[0] = "other"
	c.Properties.Set("new", &Schema{Type: "boolean"})

	if *orig.Properties.Value("zeta").MinLength != 1 {
		t.Fatal("MinLength shared")
	}
	if orig.Properties.Value("tags").Items.Type != "string" {
		t.Fatal("Items shared")
	}
	if orig.Required[0] != "zeta" || orig.Properties.Len() != 3 {
		t.Fatal("Required or Properties shared")
	}
}

func TestClone_CompositeDefaultAndEnum(t *testing.T) {
	orig := &Schema{
		Type:       "object",
		Default:    map[string]any{"tags": []any{"a"}},
		HasDefault: true,
		Enum:       []any{map[string]any{"k": "v"}},
	}
	c := orig.Clone()
	c.Default.(map[string]any)["tags"].([]any)[0] = "changed"
	c.Enum[0].(map[string]any)["k"] = "changed"

	if got := orig.Default.(map[string]any)["tags"].([]any)[0]; got != "a" {
		t.Fatalf("Default shared: %v", got)
	}
	if got := orig.Enum[0].(map[string]any)["k"]; got != "v" {
		t.Fatalf("Enum shared: %v", got)
	}
	if !c.HasDefault {
		t.Fatal("HasDefault not copied")
	}
}

func TestProperties_SetKeepsPosition(t *testing.T) {
	p := NewProperties()
	p.Set("a", &Schema{Type: "string"})
	p.Set("b", &Schema{Type: "string"})
	p.Set("a", &Schema{Type: "number"})
	if got := p.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys = %v", got)
	}
	if p.Value("a").Type != "number" {
		t.Fatal("replacement lost")
	}
	var nilProps *Properties
	if nilProps.Len() != 0 || nilProps.Keys() != nil || nilProps.Value("x") != nil {
		t.Fatal("nil Properties should be empty")
	}
}
