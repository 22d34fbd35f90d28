// This file contains the converter for the explicit wildcard type.

package builtin

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// AnyConverter accepts and returns the value unchanged. It only applies when
// the type description explicitly declares the wildcard; the engine never
// falls back to it.
//
// - implements convert.Converter
type AnyConverter struct{}

// Convert implements convert.Converter.
func (AnyConverter) Convert(ctx *convert.Context) (value.Value, error) {
	if _, ok := types.Unwrap(ctx.Type()).(types.Any); !ok {
		return nil, convert.ErrNotApplicable
	}

	if ctx.Value() == nil {
		return value.Null{}, nil
	}

	return ctx.Value(), nil
}
