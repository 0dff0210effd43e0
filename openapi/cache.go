package openapi

import (
	"reflect"
	"sync"

	oaskema "github.com/reoring/oaskema"
	js "github.com/reoring/oaskema/jsonschema"
)

// Cache memoizes conversions by node identity. Schemas are static per
// endpoint, so entries are never invalidated. Callers always receive a deep
// copy and may modify it freely. The zero value is ready to use.
type Cache struct {
	mu        sync.RWMutex
	schemas   map[oaskema.Node]*js.Schema
	fragments map[fragmentKey]cachedFragment
}

type fragmentKey struct {
	loc  Location
	node oaskema.Node
}

type cachedFragment struct {
	frag  *Fragment
	diags Diagnostics
}

func NewCache() *Cache { return &Cache{} }

// Convert is the memoized form of Convert.
func (c *Cache) Convert(n oaskema.Node) *js.Schema {
	if !cacheable(n) {
		return Convert(n)
	}
	c.mu.RLock()
	s, ok := c.schemas[n]
	c.mu.RUnlock()
	if ok {
		return s.Clone()
	}

	c.mu.Lock()
	if s, ok = c.schemas[n]; !ok { // double-check
		s = Convert(n)
		if c.schemas == nil {
			c.schemas = map[oaskema.Node]*js.Schema{}
		}
		c.schemas[n] = s
	}
	c.mu.Unlock()
	return s.Clone()
}

// BuildLocationSchema is the memoized form of BuildLocationSchema.
func (c *Cache) BuildLocationSchema(loc Location, n oaskema.Node) (*Fragment, Diagnostics) {
	if !cacheable(n) {
		return BuildLocationSchema(loc, n)
	}
	key := fragmentKey{loc: loc, node: n}
	c.mu.RLock()
	e, ok := c.fragments[key]
	c.mu.RUnlock()
	if ok {
		return e.frag.Clone(), append(Diagnostics(nil), e.diags...)
	}

	c.mu.Lock()
	if e, ok = c.fragments[key]; !ok {
		f, d := BuildLocationSchema(loc, n)
		e = cachedFragment{frag: f, diags: d}
		if c.fragments == nil {
			c.fragments = map[fragmentKey]cachedFragment{}
		}
		c.fragments[key] = e
	}
	c.mu.Unlock()
	return e.frag.Clone(), append(Diagnostics(nil), e.diags...)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.schemas) + len(c.fragments)
}

// cacheable reports whether n can serve as an identity key. Only pointer
// nodes qualify; value nodes may be uncomparable.
func cacheable(n oaskema.Node) bool {
	if n == nil {
		return false
	}
	return reflect.TypeOf(n).Kind() == reflect.Pointer
}
