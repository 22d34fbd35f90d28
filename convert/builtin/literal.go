// This file contains the converter for literal types.

package builtin

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// LiteralConverter accepts a value when it equals one of the allowed literal
// values. A mismatch yields the not-applicable signal instead of a hard
// failure, so that a union can fall through to another literal-discriminated
// member; when the literal was the sole candidate, the driver reports the
// exhausted scan.
//
// - implements convert.Converter
type LiteralConverter struct{}

// Convert implements convert.Converter.
func (LiteralConverter) Convert(ctx *convert.Context) (value.Value, error) {
	lit, ok := types.Unwrap(ctx.Type()).(types.Literal)
	if !ok {
		return nil, convert.ErrNotApplicable
	}

	if ctx.Value() != nil && lit.Allows(ctx.Value()) {
		return ctx.Value(), nil
	}

	return nil, convert.ErrNotApplicable
}
