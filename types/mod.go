// Package types defines the type description model: a closed set of variants
// describing a datatype to convert.
//
// Type descriptions are pure data. They are built once through the
// constructors of this package, compared by structural value, and never
// mutated afterwards, which makes them safe to share across concurrent
// conversions.
//
// A description may contain unresolved type variables when it belongs to a
// generic schema. Binding the variables to concrete types happens once, when
// a record is instantiated with type arguments; a variable reaching the
// conversion engine unresolved is a hard error, never a silent fallback.
package types

import (
	"fmt"
	"strings"

	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/value"
)

// Type is the interface implemented by every variant of the type description
// model.
type Type interface {
	fmt.Stringer

	// Equal returns true when the other description has the same structural
	// value.
	Equal(other Type) bool
}

// PrimitiveKind enumerates the primitive datatypes.
type PrimitiveKind int

// Kinds of primitives.
const (
	KindBool PrimitiveKind = iota
	KindInt
	KindFloat
	KindString
	KindBytes
)

// String implements fmt.Stringer.
func (k PrimitiveKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Primitive describes a primitive datatype.
//
// - implements types.Type
type Primitive struct {
	Kind PrimitiveKind
}

// The primitive descriptions.
var (
	Bool   = Primitive{Kind: KindBool}
	Int    = Primitive{Kind: KindInt}
	Float  = Primitive{Kind: KindFloat}
	String = Primitive{Kind: KindString}
	Bytes  = Primitive{Kind: KindBytes}
)

// Equal implements types.Type.
func (p Primitive) Equal(other Type) bool {
	o, ok := other.(Primitive)
	return ok && o.Kind == p.Kind
}

// String implements fmt.Stringer.
func (p Primitive) String() string {
	return p.Kind.String()
}

// Collection describes an ordered sequence of items of a single type. A
// collection with a nil item type is unparameterized and is rejected at
// conversion time.
//
// - implements types.Type
type Collection struct {
	Item Type
}

// NewCollection returns a collection description of the given item type.
func NewCollection(item Type) Collection {
	return Collection{Item: item}
}

// Equal implements types.Type.
func (c Collection) Equal(other Type) bool {
	o, ok := other.(Collection)
	return ok && equalOrNil(c.Item, o.Item)
}

// String implements fmt.Stringer.
func (c Collection) String() string {
	return fmt.Sprintf("list[%s]", stringOrNil(c.Item))
}

// Mapping describes an ordered mapping from keys to values. The key type is
// restricted to strings by the JSON-oriented converters. A mapping with a nil
// key or value type is unparameterized and is rejected at conversion time.
//
// - implements types.Type
type Mapping struct {
	Key   Type
	Value Type
}

// NewMapping returns a mapping description with the given key and value
// types.
func NewMapping(key, val Type) Mapping {
	return Mapping{Key: key, Value: val}
}

// Equal implements types.Type.
func (m Mapping) Equal(other Type) bool {
	o, ok := other.(Mapping)
	return ok && equalOrNil(m.Key, o.Key) && equalOrNil(m.Value, o.Value)
}

// String implements fmt.Stringer.
func (m Mapping) String() string {
	return fmt.Sprintf("map[%s,%s]", stringOrNil(m.Key), stringOrNil(m.Value))
}

// Optional describes a value that may be absent.
//
// - implements types.Type
type Optional struct {
	Inner Type
}

// NewOptional returns an optional description of the inner type.
func NewOptional(inner Type) Optional {
	return Optional{Inner: inner}
}

// Equal implements types.Type.
func (o Optional) Equal(other Type) bool {
	t, ok := other.(Optional)
	return ok && equalOrNil(o.Inner, t.Inner)
}

// String implements fmt.Stringer.
func (o Optional) String() string {
	return fmt.Sprintf("optional[%s]", stringOrNil(o.Inner))
}

// Enum describes an enumeration: a mapping from member names to their
// serialized form.
//
// - implements types.Type
type Enum struct {
	Name    string
	Members []EnumMember
}

// EnumMember is one member of an enumeration. A nil serialized form means the
// member serializes to its own name.
type EnumMember struct {
	Name  string
	Value value.Value
}

// NewEnum returns an enumeration description.
func NewEnum(name string, members ...EnumMember) Enum {
	return Enum{Name: name, Members: members}
}

// Member returns the member with the given name.
func (e Enum) Member(name string) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}

	return EnumMember{}, false
}

// Names returns the names of every member in declaration order.
func (e Enum) Names() []string {
	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = m.Name
	}

	return names
}

// Equal implements types.Type.
func (e Enum) Equal(other Type) bool {
	o, ok := other.(Enum)
	if !ok || o.Name != e.Name || len(o.Members) != len(e.Members) {
		return false
	}

	for i, m := range e.Members {
		if o.Members[i].Name != m.Name {
			return false
		}
		if (m.Value == nil) != (o.Members[i].Value == nil) {
			return false
		}
		if m.Value != nil && !m.Value.Equal(o.Members[i].Value) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer.
func (e Enum) String() string {
	return fmt.Sprintf("enum(%s)", e.Name)
}

// Literal describes a type whose values are restricted to a fixed set of
// primitive values.
//
// - implements types.Type
type Literal struct {
	Values []value.Value
}

// NewLiteral returns a literal description allowing the given values.
func NewLiteral(values ...value.Value) Literal {
	return Literal{Values: values}
}

// Allows returns true when the value equals one of the allowed values.
func (l Literal) Allows(v value.Value) bool {
	for _, allowed := range l.Values {
		if allowed.Equal(v) {
			return true
		}
	}

	return false
}

// Equal implements types.Type.
func (l Literal) Equal(other Type) bool {
	o, ok := other.(Literal)
	if !ok || len(o.Values) != len(l.Values) {
		return false
	}

	for i, v := range l.Values {
		if !v.Equal(o.Values[i]) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer.
func (l Literal) String() string {
	parts := make([]string, len(l.Values))
	for i, v := range l.Values {
		parts[i] = v.String()
	}

	return fmt.Sprintf("literal[%s]", strings.Join(parts, ","))
}

// Annotated wraps a base description with an ordered list of settings. The
// settings take precedence over schema-attached and global settings of the
// same kind.
//
// - implements types.Type
type Annotated struct {
	Base     Type
	Settings []settings.Setting
}

// NewAnnotated returns the base description annotated with the settings.
func NewAnnotated(base Type, list ...settings.Setting) Annotated {
	return Annotated{Base: base, Settings: list}
}

// Equal implements types.Type. Only the base descriptions are compared:
// annotations do not change the shape of the described type.
func (a Annotated) Equal(other Type) bool {
	o, ok := other.(Annotated)
	if ok {
		return equalOrNil(a.Base, o.Base)
	}

	return equalOrNil(a.Base, other)
}

// String implements fmt.Stringer.
func (a Annotated) String() string {
	return fmt.Sprintf("annotated[%s]", stringOrNil(a.Base))
}

// Variable describes an unresolved generic parameter. It only exists inside
// generic schemas; it must be bound to a concrete type before the conversion
// engine sees it.
//
// - implements types.Type
type Variable struct {
	Name string
}

// NewVariable returns a type variable with the given name.
func NewVariable(name string) Variable {
	return Variable{Name: name}
}

// Equal implements types.Type.
func (v Variable) Equal(other Type) bool {
	o, ok := other.(Variable)
	return ok && o.Name == v.Name
}

// String implements fmt.Stringer.
func (v Variable) String() string {
	return fmt.Sprintf("typevar(%s)", v.Name)
}

// Any describes the explicit wildcard that accepts every value unchanged. It
// is only effective when declared; the engine never falls back to it.
//
// - implements types.Type
type Any struct{}

// Equal implements types.Type.
func (a Any) Equal(other Type) bool {
	_, ok := other.(Any)
	return ok
}

// String implements fmt.Stringer.
func (a Any) String() string {
	return "any"
}

// Unwrap removes every annotation layer and returns the underlying
// description.
func Unwrap(t Type) Type {
	for {
		a, ok := t.(Annotated)
		if !ok {
			return t
		}

		t = a.Base
	}
}

// Substitute returns the description with every type variable replaced by
// its binding. Variables without a binding are left in place so that the
// engine can report them.
func Substitute(t Type, bindings map[string]Type) Type {
	if t == nil || len(bindings) == 0 {
		return t
	}

	switch typ := t.(type) {
	case Variable:
		if bound, found := bindings[typ.Name]; found {
			return bound
		}
		return typ

	case Collection:
		return Collection{Item: Substitute(typ.Item, bindings)}

	case Mapping:
		return Mapping{
			Key:   Substitute(typ.Key, bindings),
			Value: Substitute(typ.Value, bindings),
		}

	case Optional:
		return Optional{Inner: Substitute(typ.Inner, bindings)}

	case Annotated:
		return Annotated{
			Base:     Substitute(typ.Base, bindings),
			Settings: typ.Settings,
		}

	case Union:
		members := make([]UnionMember, len(typ.Members))
		for i, m := range typ.Members {
			members[i] = UnionMember{
				Name: m.Name,
				Type: Substitute(m.Type, bindings),
			}
		}

		res := typ
		res.Members = members

		return res

	case Record:
		args := make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			args[i] = Substitute(arg, bindings)
		}

		res := typ
		res.Args = args

		return res

	default:
		return typ
	}
}

func equalOrNil(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.Equal(b)
}

func stringOrNil(t Type) string {
	if t == nil {
		return "?"
	}

	return t.String()
}
