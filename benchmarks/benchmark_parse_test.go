package benchmarks_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/goccy/go-json"

	oaskema "github.com/reoring/oaskema"
	g "github.com/reoring/oaskema/dsl"
)

// ---- Helpers ----

func userSchema() oaskema.Node {
	return g.Object().
		Field("id", g.String().Min(1)).
		Field("name", g.String().Max(100)).
		Field("email", g.String().Email()).
		Field("age", g.Number().Min(0).Optional()).
		Field("tags", g.Array(g.String()).Max(10).Optional()).
		Build()
}

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice","email":"alice@example.com","age":30,"tags":["a","b"],"extra":true}`)
}

// hugeArrayJSON builds an array of n user objects.
func hugeArrayJSON(n int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id":"u_%d","name":"n%d","email":"u%d@example.com","age":%d}`, i, i, i, i%90)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func decode(tb testing.TB, data []byte) any {
	tb.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		tb.Fatalf("decode: %v", err)
	}
	return v
}

// ---- Micro benchmarks (small inputs) ----

func Benchmark_Parse_Object_Small_Decoded(b *testing.B) {
	ctx := context.Background()
	s := userSchema()
	v := decode(b, smallUserJSON())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := oaskema.Parse(ctx, s, v); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Parse_Object_Small_DecodeAndParse(b *testing.B) {
	ctx := context.Background()
	s := userSchema()
	data := smallUserJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := oaskema.Parse(ctx, s, decode(b, data)); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Parse_Object_Small_Invalid(b *testing.B) {
	ctx := context.Background()
	s := userSchema()
	v := decode(b, []byte(`{"id":"","email":"nope","age":-1}`))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := oaskema.Parse(ctx, s, v); err == nil {
			b.Fatal("expected issues")
		}
	}
}

func Benchmark_Parse_Query_Coerced(b *testing.B) {
	ctx := context.Background()
	s := g.Object().
		Field("page", g.Number().Min(1).Default(1)).
		Field("verbose", g.Bool().Optional()).
		Field("since", g.Date().Optional()).
		Build()
	v := map[string]any{"page": "3", "verbose": "true", "since": "2024-01-02T03:04:05Z"}
	opt := oaskema.ParseOpt{CoerceStrings: true}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := oaskema.Parse(ctx, s, v, opt); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Large inputs ----

func Benchmark_Parse_HugeArray(b *testing.B) {
	for _, n := range []int{1_000, 10_000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ctx := context.Background()
			s := g.Array(g.Node(userSchema())).Build()
			data := hugeArrayJSON(n)
			v := decode(b, data)
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := oaskema.Parse(ctx, s, v); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
