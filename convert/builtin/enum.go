// This file contains the converter for enumeration types.

package builtin

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// EnumConverter converts enumeration members. The typed side holds the
// member name; the payload side holds the serialized form of the member,
// which defaults to the name. Deserialization matches by exact name, or by
// serialized form for members with a custom one, such as integer-valued
// enumerations.
//
// - implements convert.Converter
type EnumConverter struct{}

// Convert implements convert.Converter.
func (c EnumConverter) Convert(ctx *convert.Context) (value.Value, error) {
	enum, ok := types.Unwrap(ctx.Type()).(types.Enum)
	if !ok {
		return nil, convert.ErrNotApplicable
	}

	if ctx.Direction() == convert.Serialize {
		return c.serialize(ctx, enum)
	}

	return c.deserialize(ctx, enum)
}

func (c EnumConverter) serialize(ctx *convert.Context, enum types.Enum) (value.Value, error) {
	name, ok := ctx.Value().(value.String)
	if !ok {
		return nil, convert.NewTypeError(ctx, "string")
	}

	member, found := enum.Member(string(name))
	if !found {
		return nil, convert.NewInvalidEnumValue(ctx, name.String(), enum.Names())
	}

	if member.Value != nil {
		return member.Value, nil
	}

	return name, nil
}

func (c EnumConverter) deserialize(ctx *convert.Context, enum types.Enum) (value.Value, error) {
	for _, member := range enum.Members {
		form := member.Value
		if form == nil {
			form = value.String(member.Name)
		}

		if form.Equal(ctx.Value()) {
			return value.String(member.Name), nil
		}

		// A member with a custom serialized form still deserializes from its
		// exact name.
		if name, ok := ctx.Value().(value.String); ok && string(name) == member.Name {
			return value.String(member.Name), nil
		}
	}

	got := "nothing"
	if ctx.Value() != nil {
		got = ctx.Value().String()
	}

	return nil, convert.NewInvalidEnumValue(ctx, got, enum.Names())
}
