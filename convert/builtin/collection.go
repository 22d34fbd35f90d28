// This file contains the converter for collection types.

package builtin

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// CollectionConverter converts ordered sequences element by element against
// the declared item type. An unparameterized collection is an error: the
// missing parameter is never widened to the wildcard.
//
// - implements convert.Converter
type CollectionConverter struct{}

// Convert implements convert.Converter.
func (CollectionConverter) Convert(ctx *convert.Context) (value.Value, error) {
	col, ok := types.Unwrap(ctx.Type()).(types.Collection)
	if !ok {
		return nil, convert.ErrNotApplicable
	}

	if col.Item == nil {
		return nil, convert.NewError(ctx, "collection type %s is missing its item type parameter", ctx.Type())
	}

	seq, ok := ctx.Value().(value.Sequence)
	if !ok {
		return nil, convert.NewTypeError(ctx, "sequence")
	}

	res := make(value.Sequence, len(seq))

	for i, item := range seq {
		converted, err := ctx.Spawn(item, col.Item, convert.IndexKey(i)).Convert()
		if err != nil {
			return nil, err
		}

		res[i] = converted
	}

	return res, nil
}
