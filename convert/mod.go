// Package convert defines the conversion engine: the context passed to the
// converters, the converter contract, the driver that dispatches a context
// to the first applicable converter, and the structured conversion errors.
//
// A conversion is a single synchronous recursive descent. The driver builds
// a root context from the value and the type description, asks the registry
// for the candidate converters, and tries them in registration order. A
// converter signals that it is not applicable by returning ErrNotApplicable,
// in which case the driver falls through to the next candidate; any other
// failure is final and propagates to the caller. Converters recursively
// convert nested values by spawning child contexts and calling their Convert
// method.
//
// The engine holds no state across calls: a mapper, its registry and the
// type descriptions can be shared by any number of concurrent conversions
// once they are built.
package convert

import (
	"go.dedis.ch/databind"
	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
	"golang.org/x/xerrors"
)

// Direction tells a converter which way it is converting.
type Direction int

// Directions of a conversion.
const (
	// Serialize converts a typed value into its payload form.
	Serialize Direction = iota

	// Deserialize converts a payload into its typed form.
	Deserialize
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Serialize {
		return "serialize"
	}

	return "deserialize"
}

// ErrNotApplicable is the distinguished outcome a converter returns when it
// does not handle the type description of the context. The driver recovers
// it and falls through to the next candidate; every other error is final.
var ErrNotApplicable = xerrors.New("converter is not applicable")

// Converter is the contract every converter implements.
type Converter interface {
	// Convert either returns the converted value, or ErrNotApplicable to let
	// the driver try the next candidate, or a hard conversion failure.
	Convert(ctx *Context) (value.Value, error)
}

// Matcher is an optional interface a converter can implement to declare its
// applicability upfront, so that a registry can filter it out of the
// candidates without running it.
type Matcher interface {
	Match(t types.Type, dir Direction) bool
}

// Registry resolves the ordered candidate converters for a type description
// and a direction. See convert/registry for the default implementation.
type Registry interface {
	Resolve(t types.Type, dir Direction) []Converter
}

// Mapper is the driver of a conversion. It is built once and can then be
// shared across concurrent conversions.
type Mapper struct {
	registry Registry
	settings *settings.Settings
	filename string
	strict   bool
}

// NewMapper returns a mapper using the given registry and settings. A nil
// settings container is replaced by an empty one.
func NewMapper(reg Registry, set *settings.Settings) *Mapper {
	if set == nil {
		set = settings.NewSettings()
	}

	return &Mapper{
		registry: reg,
		settings: set,
		strict:   true,
	}
}

// SetFilename attaches a source location identifier to the root context, so
// that error traces can name the document they point into. It must be called
// before the mapper is shared.
func (m *Mapper) SetFilename(name string) {
	m.filename = name
}

// SetStrictByDefault controls the strictness of primitive deserialization
// when no Strict setting resolves. Strict is the default. It must be called
// before the mapper is shared.
func (m *Mapper) SetStrictByDefault(enabled bool) {
	m.strict = enabled
}

// Serialize converts a typed value into its payload form.
func (m *Mapper) Serialize(v value.Value, t types.Type) (value.Value, error) {
	return m.Convert(v, t, Serialize)
}

// Deserialize converts a payload into its typed form.
func (m *Mapper) Deserialize(v value.Value, t types.Type) (value.Value, error) {
	return m.Convert(v, t, Deserialize)
}

// Convert runs a conversion of the value against the type description in the
// given direction.
func (m *Mapper) Convert(v value.Value, t types.Type, dir Direction) (value.Value, error) {
	root := &Context{
		typ:       t,
		val:       v,
		direction: dir,
		filename:  m.filename,
		mapper:    m,
	}

	return m.convert(root)
}

// convert dispatches a context to the first applicable converter.
func (m *Mapper) convert(ctx *Context) (value.Value, error) {
	if v, ok := types.Unwrap(ctx.typ).(types.Variable); ok {
		return nil, NewUnresolvedVariable(ctx, v.Name)
	}

	for _, conv := range m.registry.Resolve(ctx.typ, ctx.direction) {
		res, err := conv.Convert(ctx)
		if err == nil {
			return res, nil
		}

		if xerrors.Is(err, ErrNotApplicable) {
			databind.Logger.Trace().
				Str("type", ctx.typ.String()).
				Msgf("converter %T is not applicable", conv)

			continue
		}

		return nil, err
	}

	return nil, NewNoMatchingConverter(ctx)
}

// Convert is the entry point of the engine: it converts the value against
// the type description in the given direction, using the settings and the
// registry provided by the caller.
func Convert(v value.Value, t types.Type, dir Direction,
	set *settings.Settings, reg Registry) (value.Value, error) {

	return NewMapper(reg, set).Convert(v, t, dir)
}
