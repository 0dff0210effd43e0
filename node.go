package oaskema

// Kind identifies a schema node variant.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindDate
	KindObject
	KindArray
	KindLiteral
	KindEnum
	KindUnion
	KindNullable
	KindOptional
	KindDefault
)

var kindNames = [...]string{
	KindString:   "string",
	KindNumber:   "number",
	KindBoolean:  "boolean",
	KindDate:     "date",
	KindObject:   "object",
	KindArray:    "array",
	KindLiteral:  "literal",
	KindEnum:     "enum",
	KindUnion:    "union",
	KindNullable: "nullable",
	KindOptional: "optional",
	KindDefault:  "default",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is the root interface of the schema tree. Concrete nodes are pointers
// to the structs below; nodes are treated as immutable once built.
type Node interface {
	Kind() Kind
}

// String accepts strings satisfying every check.
type String struct {
	Checks []StringCheck
}

func (*String) Kind() Kind { return KindString }

// Number accepts JSON numbers satisfying every check.
type Number struct {
	Checks []NumberCheck
}

func (*Number) Kind() Kind { return KindNumber }

type Boolean struct{}

func (*Boolean) Kind() Kind { return KindBoolean }

// Date accepts time.Time values or RFC3339 strings.
type Date struct{}

func (*Date) Kind() Kind { return KindDate }

// Object is an ordered set of named fields.
type Object struct {
	Fields []Field
}

func (*Object) Kind() Kind { return KindObject }

// Field looks up a field by name.
func (o *Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Field binds a JSON property name to its schema.
type Field struct {
	Name   string
	Schema Node
}

// Array holds a single element schema.
type Array struct {
	Element Node
	Checks  []ArrayCheck
}

func (*Array) Kind() Kind { return KindArray }

// Literal accepts exactly one of Values.
type Literal struct {
	Values []any
}

func (*Literal) Kind() Kind { return KindLiteral }

// Enum accepts one of a fixed list of strings.
type Enum struct {
	Values []string
}

func (*Enum) Kind() Kind { return KindEnum }

// Union accepts a value matching any of Options; the first match wins.
type Union struct {
	Options []Node
}

func (*Union) Kind() Kind { return KindUnion }

type Nullable struct {
	Inner Node
}

func (*Nullable) Kind() Kind { return KindNullable }

// Optional marks an object field as omittable.
type Optional struct {
	Inner Node
}

func (*Optional) Kind() Kind { return KindOptional }

// Default supplies Value when an object field is missing.
type Default struct {
	Inner Node
	Value any
}

func (*Default) Kind() Kind { return KindDefault }

// IsRequired reports whether an object field using n must be present in the
// input. Only the outermost wrapper is inspected: Optional and Default make a
// field omittable, Nullable does not.
func IsRequired(n Node) bool {
	switch n.(type) {
	case *Optional, *Default:
		return false
	}
	return true
}

// Unwrap strips Optional, Nullable and Default wrappers until a non-wrapper
// node is reached.
func Unwrap(n Node) Node {
	for {
		switch t := n.(type) {
		case *Optional:
			n = t.Inner
		case *Nullable:
			n = t.Inner
		case *Default:
			n = t.Inner
		default:
			return n
		}
	}
}
