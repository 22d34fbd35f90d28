// This file contains the converter for mapping types.

package builtin

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// MappingConverter converts string-keyed mappings entry by entry against the
// declared value type. The declared key type must be a string: a non-string
// key type is rejected with a descriptive error instead of being silently
// stringified. An unparameterized mapping is an error.
//
// - implements convert.Converter
type MappingConverter struct{}

// Convert implements convert.Converter.
func (MappingConverter) Convert(ctx *convert.Context) (value.Value, error) {
	mapping, ok := types.Unwrap(ctx.Type()).(types.Mapping)
	if !ok {
		return nil, convert.ErrNotApplicable
	}

	if mapping.Key == nil || mapping.Value == nil {
		return nil, convert.NewError(ctx, "mapping type %s is missing its key or value type parameter", ctx.Type())
	}

	key, ok := types.Unwrap(mapping.Key).(types.Primitive)
	if !ok || key.Kind != types.KindString {
		return nil, convert.NewError(ctx, "mapping keys must be strings, not %s", mapping.Key)
	}

	obj, ok := ctx.Value().(*value.Object)
	if !ok {
		return nil, convert.NewTypeError(ctx, "object")
	}

	res := value.NewObject()

	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)

		converted, err := ctx.Spawn(v, mapping.Value, convert.FieldKey(k)).Convert()
		if err != nil {
			return nil, err
		}

		res.Set(k, converted)
	}

	return res, nil
}
