// This file contains the schema model for record types: a named product type
// with an ordered sequence of fields, optionally parameterized by type
// variables.

package types

import (
	"fmt"
	"strings"

	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/value"
	"golang.org/x/xerrors"
)

// Field describes one field of a schema.
type Field struct {
	// Name is the field name on the typed side.
	Name string

	// Type is the declared type of the field.
	Type Type

	// Aliases are the serialized names used instead of Name. During
	// deserialization every alias is tried in order; during serialization the
	// first alias is used.
	Aliases []string

	// Default is the value used when the payload has no entry for the field.
	Default value.Value

	// DefaultFactory builds the default lazily. It takes precedence over
	// Default when both are set.
	DefaultFactory func() value.Value

	// Flatten splices the sub-fields of this field into the parent's key
	// namespace instead of nesting them under the field key.
	Flatten bool

	// CollectExtras makes the field receive every payload key that no other
	// field claims.
	CollectExtras bool

	// Settings are resolved with the highest precedence for the contexts of
	// this field.
	Settings []settings.Setting
}

// HasDefault returns true when the field defines a default value.
func (f Field) HasDefault() bool {
	return f.Default != nil || f.DefaultFactory != nil
}

// DefaultValue returns the default value of the field. It must only be
// called when HasDefault returns true.
func (f Field) DefaultValue() value.Value {
	if f.DefaultFactory != nil {
		return f.DefaultFactory()
	}

	return f.Default
}

// Schema describes a named product type. A schema may declare type
// parameters, in which case its fields may use type variables that are bound
// when the schema is instantiated into a record.
type Schema struct {
	Name     string
	Params   []string
	Fields   []Field
	Settings []settings.Setting
}

// NewSchema returns a schema with the given name and fields.
func NewSchema(name string, fields ...Field) *Schema {
	return &Schema{Name: name, Fields: fields}
}

// NewGenericSchema returns a schema parameterized by the given type
// variables.
func NewGenericSchema(name string, params []string, fields ...Field) *Schema {
	return &Schema{Name: name, Params: params, Fields: fields}
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Record describes an instantiation of a schema. For a generic schema, the
// type arguments bind the schema parameters in declaration order.
//
// - implements types.Type
type Record struct {
	Schema *Schema
	Args   []Type
}

// NewRecord returns a record description instantiating the schema with the
// given type arguments.
func NewRecord(schema *Schema, args ...Type) Record {
	return Record{Schema: schema, Args: args}
}

// ResolvedFields returns the fields of the schema with every type parameter
// substituted by the matching type argument. It returns an error when the
// number of arguments does not match the number of parameters. Parameters
// without an argument are left as variables, which the engine rejects when
// they reach a converter.
func (r Record) ResolvedFields() ([]Field, error) {
	if len(r.Args) > 0 && len(r.Args) != len(r.Schema.Params) {
		return nil, xerrors.Errorf("schema '%s' expects %d type arguments, got %d",
			r.Schema.Name, len(r.Schema.Params), len(r.Args))
	}

	if len(r.Args) == 0 {
		return r.Schema.Fields, nil
	}

	bindings := make(map[string]Type)
	for i, param := range r.Schema.Params {
		bindings[param] = r.Args[i]
	}

	fields := make([]Field, len(r.Schema.Fields))
	for i, f := range r.Schema.Fields {
		f.Type = Substitute(f.Type, bindings)
		fields[i] = f
	}

	return fields, nil
}

// Equal implements types.Type. Records are compared by schema name and
// structural field types, so that two descriptions of the same shape are
// interchangeable.
func (r Record) Equal(other Type) bool {
	o, ok := other.(Record)
	if !ok || o.Schema.Name != r.Schema.Name {
		return false
	}

	if len(o.Schema.Fields) != len(r.Schema.Fields) || len(o.Args) != len(r.Args) {
		return false
	}

	for i, f := range r.Schema.Fields {
		of := o.Schema.Fields[i]
		if of.Name != f.Name || !equalOrNil(of.Type, f.Type) {
			return false
		}
	}

	for i, arg := range r.Args {
		if !equalOrNil(arg, o.Args[i]) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer.
func (r Record) String() string {
	if len(r.Args) == 0 {
		return fmt.Sprintf("record(%s)", r.Schema.Name)
	}

	args := make([]string, len(r.Args))
	for i, arg := range r.Args {
		args[i] = stringOrNil(arg)
	}

	return fmt.Sprintf("record(%s[%s])", r.Schema.Name, strings.Join(args, ","))
}
