// This file contains the converter for union types.
//
// The discriminator style decides how the payload names the member it
// carries. Serialization always re-attaches the discriminator in the
// configured style; the member is resolved by attempting each one in
// declaration order, which is the documented tie-break when several members
// could accept the value.

package builtin

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// UnionConverter converts values that are exactly one of the members of a
// union.
//
// - implements convert.Converter
type UnionConverter struct{}

// Convert implements convert.Converter.
func (c UnionConverter) Convert(ctx *convert.Context) (value.Value, error) {
	union, ok := types.Unwrap(ctx.Type()).(types.Union)
	if !ok {
		return nil, convert.ErrNotApplicable
	}

	if len(union.Members) == 0 {
		return nil, convert.NewError(ctx, "union %s has no members", ctx.Type())
	}

	style, disc, err := c.effectiveStyle(ctx, union)
	if err != nil {
		return nil, err
	}

	if ctx.Direction() == convert.Deserialize {
		return c.deserialize(ctx, union, style, disc)
	}

	return c.serialize(ctx, union, style, disc)
}

// effectiveStyle resolves the discriminator style, letting a UnionStyle
// setting override what the union type declares.
func (c UnionConverter) effectiveStyle(ctx *convert.Context,
	union types.Union) (types.UnionStyle, string, error) {

	style := union.Style
	disc := union.DiscriminatorKey()

	st, found := ctx.GetSetting(settings.KindUnionStyle)
	if !found {
		return style, disc, nil
	}

	override := st.(settings.UnionStyle)

	if override.Style != "" {
		parsed, valid := types.ParseUnionStyle(override.Style)
		if !valid {
			return 0, "", convert.NewError(ctx, "unknown union style '%s'", override.Style)
		}

		style = parsed
	}

	if override.Discriminator != "" {
		disc = override.Discriminator
	}

	return style, disc, nil
}

func (c UnionConverter) deserialize(ctx *convert.Context, union types.Union,
	style types.UnionStyle, disc string) (value.Value, error) {

	if style == types.StyleBestMatch || style == types.StyleLiteral {
		for _, member := range union.Members {
			res, err := ctx.Spawn(ctx.Value(), member.Type, convert.NoKey()).Convert()
			if err == nil {
				return res, nil
			}
		}

		return nil, convert.NewError(ctx, "no member of %s accepted the %s value",
			ctx.Type(), value.Shape(ctx.Value()))
	}

	obj, ok := ctx.Value().(*value.Object)
	if !ok {
		return nil, convert.NewTypeError(ctx, "object")
	}

	switch style {
	case types.StyleNested:
		if obj.Len() != 1 {
			return nil, convert.NewError(ctx,
				"nested union payload must have exactly one key, got %d", obj.Len())
		}

		name := obj.Keys()[0]

		member, found := union.Member(name)
		if !found {
			return nil, convert.NewUnknownUnionMember(ctx, name)
		}

		inner, _ := obj.Get(name)

		return ctx.Spawn(inner, member.Type, convert.FieldKey(name)).Convert()

	case types.StyleFlat:
		member, _, err := c.lookupMember(ctx, union, obj, disc)
		if err != nil {
			return nil, err
		}

		rest := value.NewObject()
		for _, k := range obj.Keys() {
			if k == disc {
				continue
			}

			v, _ := obj.Get(k)
			rest.Set(k, v)
		}

		return ctx.Spawn(rest, member.Type, convert.NoKey()).Convert()

	case types.StyleKeyed:
		member, name, err := c.lookupMember(ctx, union, obj, disc)
		if err != nil {
			return nil, err
		}

		key := union.NestingKey
		if key == "" {
			key = name
		}

		inner, found := obj.Get(key)
		if !found {
			return nil, convert.NewError(ctx, "missing union payload key '%s'", key)
		}

		return ctx.Spawn(inner, member.Type, convert.FieldKey(key)).Convert()

	default:
		return nil, convert.NewError(ctx, "unsupported union style '%s'", style)
	}
}

// lookupMember reads the discriminator key from the payload and returns the
// matching member.
func (c UnionConverter) lookupMember(ctx *convert.Context, union types.Union,
	obj *value.Object, disc string) (types.UnionMember, string, error) {

	dv, found := obj.Get(disc)
	if !found {
		return types.UnionMember{}, "", convert.NewError(ctx, "missing discriminator key '%s'", disc)
	}

	name, ok := dv.(value.String)
	if !ok {
		return types.UnionMember{}, "", convert.NewError(ctx,
			"discriminator '%s' must be a string, got %s", disc, value.Shape(dv))
	}

	member, found := union.Member(string(name))
	if !found {
		return types.UnionMember{}, "", convert.NewUnknownUnionMember(ctx, string(name))
	}

	return member, string(name), nil
}

func (c UnionConverter) serialize(ctx *convert.Context, union types.Union,
	style types.UnionStyle, disc string) (value.Value, error) {

	name, res, err := c.resolveMember(ctx, union)
	if err != nil {
		return nil, err
	}

	switch style {
	case types.StyleBestMatch, types.StyleLiteral:
		return res, nil

	case types.StyleNested:
		return value.NewObject().Set(name, res), nil

	case types.StyleFlat:
		obj, ok := res.(*value.Object)
		if !ok {
			return nil, convert.NewError(ctx,
				"flat union member '%s' must serialize to an object, got %s",
				name, value.Shape(res))
		}

		out := value.NewObject().Set(disc, value.String(name))
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			out.Set(k, v)
		}

		return out, nil

	case types.StyleKeyed:
		key := union.NestingKey
		if key == "" {
			key = name
		}

		return value.NewObject().
			Set(disc, value.String(name)).
			Set(key, res), nil

	default:
		return nil, convert.NewError(ctx, "unsupported union style '%s'", style)
	}
}

// resolveMember finds the member a typed value belongs to by attempting each
// one in declaration order and keeping the first success.
func (c UnionConverter) resolveMember(ctx *convert.Context,
	union types.Union) (string, value.Value, error) {

	for _, member := range union.Members {
		res, err := ctx.Spawn(ctx.Value(), member.Type, convert.NoKey()).Convert()
		if err == nil {
			return member.Name, res, nil
		}
	}

	return "", nil, convert.NewError(ctx, "value matches no member of %s", ctx.Type())
}
