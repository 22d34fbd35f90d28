// This file contains the converter for optional types.

package builtin

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// OptionalConverter converts values that may be absent. A null or missing
// value stays null; a present value is delegated to the inner type.
//
// - implements convert.Converter
type OptionalConverter struct{}

// Convert implements convert.Converter.
func (OptionalConverter) Convert(ctx *convert.Context) (value.Value, error) {
	opt, ok := types.Unwrap(ctx.Type()).(types.Optional)
	if !ok {
		return nil, convert.ErrNotApplicable
	}

	if opt.Inner == nil {
		return nil, convert.NewError(ctx, "optional type %s is missing its inner type", ctx.Type())
	}

	if ctx.Value() == nil || ctx.Value().Kind() == value.KindNull {
		return value.Null{}, nil
	}

	return ctx.Spawn(ctx.Value(), opt.Inner, convert.NoKey()).Convert()
}
