// This file contains the converter for primitive types.
//
// Strict mode requires an exact shape match: numbers stay numeric, strings
// stay strings. Non-strict deserialization additionally accepts
// numeric-looking strings for numeric targets and truthy/falsy keywords for
// booleans. Serialization is always strict.

package builtin

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"

	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// PrimitiveConverter converts the primitive datatypes bool, int, float,
// string and bytes. Bytes are represented as base64 strings on the payload
// side. When a Stringify setting resolves, its hooks replace the conversion
// entirely.
//
// - implements convert.Converter
type PrimitiveConverter struct{}

// Convert implements convert.Converter.
func (c PrimitiveConverter) Convert(ctx *convert.Context) (value.Value, error) {
	prim, ok := types.Unwrap(ctx.Type()).(types.Primitive)
	if !ok {
		return nil, convert.ErrNotApplicable
	}

	if st, found := ctx.GetSetting(settings.KindStringify); found {
		return c.stringify(ctx, st.(settings.Stringify))
	}

	switch prim.Kind {
	case types.KindBool:
		return c.toBool(ctx)
	case types.KindInt:
		return c.toInt(ctx)
	case types.KindFloat:
		return c.toFloat(ctx)
	case types.KindString:
		return c.toString(ctx)
	case types.KindBytes:
		return c.toBytes(ctx)
	default:
		return nil, convert.ErrNotApplicable
	}
}

func (c PrimitiveConverter) stringify(ctx *convert.Context, hooks settings.Stringify) (value.Value, error) {
	if ctx.Direction() == convert.Serialize {
		if hooks.Dump == nil {
			return nil, convert.NewError(ctx, "stringify setting has no dump hook")
		}

		str, err := hooks.Dump(ctx.Value())
		if err != nil {
			return nil, convert.NewError(ctx, "couldn't stringify value: %v", err).Wrap(err)
		}

		return value.String(str), nil
	}

	if hooks.Load == nil {
		return nil, convert.NewError(ctx, "stringify setting has no load hook")
	}

	str, ok := ctx.Value().(value.String)
	if !ok {
		return nil, convert.NewTypeError(ctx, "string")
	}

	res, err := hooks.Load(string(str))
	if err != nil {
		return nil, convert.NewError(ctx, "couldn't parse %s: %v", str, err).Wrap(err)
	}

	return res, nil
}

func (c PrimitiveConverter) toBool(ctx *convert.Context) (value.Value, error) {
	if b, ok := ctx.Value().(value.Bool); ok {
		return b, nil
	}

	if !ctx.Strict() {
		if str, ok := ctx.Value().(value.String); ok {
			switch strings.ToLower(string(str)) {
			case "yes", "true", "on", "enabled":
				return value.Bool(true), nil
			case "no", "false", "off", "disabled":
				return value.Bool(false), nil
			}

			return nil, convert.NewError(ctx, "%s is not a truthy keyword", str)
		}
	}

	return nil, convert.NewTypeError(ctx, "bool")
}

func (c PrimitiveConverter) toInt(ctx *convert.Context) (value.Value, error) {
	if num, ok := ctx.Value().(value.Number); ok {
		i, err := num.Int()
		if err != nil {
			return nil, convert.NewError(ctx, "expected int: %v", err).Wrap(err)
		}

		return value.NewInt(i), nil
	}

	if !ctx.Strict() {
		if str, ok := ctx.Value().(value.String); ok {
			i, err := strconv.ParseInt(string(str), 10, 64)
			if err != nil {
				return nil, convert.NewError(ctx, "%s is not an integer", str)
			}

			return value.NewInt(i), nil
		}
	}

	return nil, convert.NewTypeError(ctx, "int")
}

func (c PrimitiveConverter) toFloat(ctx *convert.Context) (value.Value, error) {
	var res float64

	switch v := ctx.Value().(type) {
	case value.Number:
		res = v.Float()

	case value.String:
		if ctx.Strict() {
			return nil, convert.NewTypeError(ctx, "float")
		}

		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, convert.NewError(ctx, "%s is not a float", v)
		}

		res = f

	default:
		return nil, convert.NewTypeError(ctx, "float")
	}

	if st, found := ctx.GetSetting(settings.KindPrecision); found {
		res = round(res, st.(settings.Precision).Decimals)
	}

	return value.NewFloat(res), nil
}

func (c PrimitiveConverter) toString(ctx *convert.Context) (value.Value, error) {
	if str, ok := ctx.Value().(value.String); ok {
		return str, nil
	}

	if !ctx.Strict() {
		switch v := ctx.Value().(type) {
		case value.Number:
			return value.String(v.String()), nil
		case value.Bool:
			return value.String(v.String()), nil
		}
	}

	return nil, convert.NewTypeError(ctx, "string")
}

// toBytes converts between the raw bytes held in a typed-side string and
// their base64 payload form.
func (c PrimitiveConverter) toBytes(ctx *convert.Context) (value.Value, error) {
	str, ok := ctx.Value().(value.String)
	if !ok {
		return nil, convert.NewTypeError(ctx, "string")
	}

	if ctx.Direction() == convert.Serialize {
		return value.String(base64.StdEncoding.EncodeToString([]byte(str))), nil
	}

	raw, err := base64.StdEncoding.DecodeString(string(str))
	if err != nil {
		return nil, convert.NewError(ctx, "couldn't decode base64: %v", err).Wrap(err)
	}

	return value.String(raw), nil
}

func round(f float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(f*shift) / shift
}
