package jsonschema

// Properties is an insertion-ordered map of property name to schema.
type Properties struct {
	keys []string
	vals map[string]*Schema
}

func NewProperties() *Properties {
	return &Properties{vals: map[string]*Schema{}}
}

// Set adds or replaces a property. Replacing keeps the original position.
func (p *Properties) Set(name string, s *Schema) {
	if p.vals == nil {
		p.vals = map[string]*Schema{}
	}
	if _, ok := p.vals[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.vals[name] = s
}

func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.vals[name]
	return s, ok
}

// Value returns the schema for name, or nil.
func (p *Properties) Value(name string) *Schema {
	s, _ := p.Get(name)
	return s
}

// Keys returns the property names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	c := &Properties{keys: append([]string(nil), p.keys...), vals: make(map[string]*Schema, len(p.vals))}
	for k, v := range p.vals {
		c.vals[k] = v.Clone()
	}
	return c
}

func (p *Properties) members() []member {
	ms := make([]member, 0, len(p.keys))
	for _, k := range p.keys {
		ms = append(ms, member{k, p.vals[k]})
	}
	return ms
}

func (p *Properties) MarshalJSON() ([]byte, error) { return marshalMembers(p.members()) }

func (p *Properties) MarshalYAML() (any, error) { return yamlMapping(p.members()) }
