// Package value defines the untyped, self-describing value tree that the
// serialized side of a conversion is expressed in.
//
// A value is either null, a boolean, a number, a string, an ordered sequence
// of values, or an ordered mapping from string keys to values. Format
// adapters translate their native syntax to and from this model, so that the
// conversion engine never has to know about bytes or text syntax.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Kind enumerates the variants of the value model.
type Kind int

// Kinds of values, in the order they are documented.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindObject
)

// String implements fmt.Stringer. It returns a human-readable name of the
// kind, suitable for error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Value is the interface implemented by every variant of the value tree.
type Value interface {
	fmt.Stringer

	// Kind returns the variant of the value.
	Kind() Kind

	// Equal returns true when the other value has the same shape and content.
	// Object comparison is independent of the key order, sequence comparison
	// is not.
	Equal(other Value) bool
}

// Shape returns the name of the runtime shape of the value, where a nil value
// means the value is missing entirely.
func Shape(v Value) string {
	if v == nil {
		return "nothing"
	}

	return v.Kind().String()
}

// Null is the null value.
//
// - implements value.Value
type Null struct{}

// Kind implements value.Value. It returns the null kind.
func (n Null) Kind() Kind {
	return KindNull
}

// Equal implements value.Value. It returns true when the other value is null.
func (n Null) Equal(other Value) bool {
	_, ok := other.(Null)
	return ok
}

// String implements fmt.Stringer.
func (n Null) String() string {
	return "null"
}

// Bool is a boolean value.
//
// - implements value.Value
type Bool bool

// Kind implements value.Value. It returns the boolean kind.
func (b Bool) Kind() Kind {
	return KindBool
}

// Equal implements value.Value. It returns true when the other value is the
// same boolean.
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && o == b
}

// String implements fmt.Stringer.
func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

// String is a string value.
//
// - implements value.Value
type String string

// Kind implements value.Value. It returns the string kind.
func (s String) Kind() Kind {
	return KindString
}

// Equal implements value.Value. It returns true when the other value is the
// same string.
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && o == s
}

// String implements fmt.Stringer. It returns the string quoted so that it can
// be embedded in error messages without ambiguity.
func (s String) String() string {
	return strconv.Quote(string(s))
}

// Number is a numeric value. It remembers whether it was built from an
// integer or from a floating point number so that integers survive a
// round trip without loss.
//
// - implements value.Value
type Number struct {
	isFloat  bool
	integer  int64
	floating float64
}

// NewInt returns a number holding the given integer.
func NewInt(v int64) Number {
	return Number{integer: v}
}

// NewFloat returns a number holding the given floating point value.
func NewFloat(v float64) Number {
	return Number{isFloat: true, floating: v}
}

// IsInt returns true when the number was built from an integer.
func (n Number) IsInt() bool {
	return !n.isFloat
}

// Int returns the number as an integer. It returns an error when the number
// is a floating point value with a fractional part, as the conversion would
// be lossy.
func (n Number) Int() (int64, error) {
	if !n.isFloat {
		return n.integer, nil
	}

	i := int64(n.floating)
	if float64(i) != n.floating {
		return 0, xerrors.Errorf("number %s is not a lossless integer", n)
	}

	return i, nil
}

// Float returns the number as a floating point value.
func (n Number) Float() float64 {
	if n.isFloat {
		return n.floating
	}

	return float64(n.integer)
}

// Kind implements value.Value. It returns the number kind.
func (n Number) Kind() Kind {
	return KindNumber
}

// Equal implements value.Value. Two numbers are equal when they represent the
// same numeric value, regardless of their integer or floating point origin.
func (n Number) Equal(other Value) bool {
	o, ok := other.(Number)
	if !ok {
		return false
	}

	if !n.isFloat && !o.isFloat {
		return n.integer == o.integer
	}

	return n.Float() == o.Float()
}

// String implements fmt.Stringer.
func (n Number) String() string {
	if !n.isFloat {
		return strconv.FormatInt(n.integer, 10)
	}

	return strconv.FormatFloat(n.floating, 'g', -1, 64)
}

// Sequence is an ordered list of values.
//
// - implements value.Value
type Sequence []Value

// Kind implements value.Value. It returns the sequence kind.
func (s Sequence) Kind() Kind {
	return KindSequence
}

// Equal implements value.Value. Two sequences are equal when they hold equal
// values in the same order.
func (s Sequence) Equal(other Value) bool {
	o, ok := other.(Sequence)
	if !ok || len(o) != len(s) {
		return false
	}

	for i, item := range s {
		if !item.Equal(o[i]) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, item := range s {
		parts[i] = item.String()
	}

	return "[" + strings.Join(parts, ",") + "]"
}

// Object is an ordered mapping from string keys to values. The key order is
// the insertion order, which format adapters use to preserve the layout of
// the source document.
//
// - implements value.Value
type Object struct {
	keys    []string
	entries map[string]Value
}

// NewObject returns a new empty object.
func NewObject() *Object {
	return &Object{
		entries: make(map[string]Value),
	}
}

// Set assigns the value to the key. The key keeps its original position when
// it is already present.
func (o *Object) Set(key string, v Value) *Object {
	if _, found := o.entries[key]; !found {
		o.keys = append(o.keys, key)
	}

	o.entries[key] = v

	return o
}

// Get returns the value stored under the key, or false when the key does not
// exist.
func (o *Object) Get(key string) (Value, bool) {
	v, found := o.entries[key]
	return v, found
}

// Delete removes the key from the object. Missing keys are ignored.
func (o *Object) Delete(key string) {
	if _, found := o.entries[key]; !found {
		return
	}

	delete(o.entries, key)

	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys of the object in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)

	return keys
}

// Len returns the number of entries in the object.
func (o *Object) Len() int {
	return len(o.keys)
}

// Kind implements value.Value. It returns the object kind.
func (o *Object) Kind() Kind {
	return KindObject
}

// Equal implements value.Value. Two objects are equal when they hold the same
// keys with equal values, regardless of the key order.
func (o *Object) Equal(other Value) bool {
	obj, ok := other.(*Object)
	if !ok || obj.Len() != o.Len() {
		return false
	}

	for key, v := range o.entries {
		ov, found := obj.entries[key]
		if !found || !v.Equal(ov) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer. The keys are sorted so that the rendering
// is deterministic.
func (o *Object) String() string {
	keys := o.Keys()
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%q:%s", key, o.entries[key])
	}

	return "{" + strings.Join(parts, ",") + "}"
}
