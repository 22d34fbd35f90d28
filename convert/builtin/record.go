// This file contains the converter for record types.
//
// Fields are processed in declared order. The serialized key of a field is
// its first alias when one is set, otherwise its name transformed by the
// effective naming convention. A field marked flatten splices the keys of
// its own record into the parent namespace; a field marked collect-extra
// receives every payload key that no other field claims. Remaining unclaimed
// keys are an error unless the effective extra-keys policy permits them.

package builtin

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// RecordConverter converts named product types described by a schema.
//
// - implements convert.Converter
type RecordConverter struct{}

// Convert implements convert.Converter.
func (c RecordConverter) Convert(ctx *convert.Context) (value.Value, error) {
	record, ok := types.Unwrap(ctx.Type()).(types.Record)
	if !ok {
		return nil, convert.ErrNotApplicable
	}

	fields, err := record.ResolvedFields()
	if err != nil {
		return nil, convert.NewError(ctx, "couldn't resolve fields: %v", err).Wrap(err)
	}

	if ctx.Direction() == convert.Deserialize {
		return c.deserialize(ctx, fields)
	}

	return c.serialize(ctx, fields)
}

func (c RecordConverter) deserialize(ctx *convert.Context, fields []types.Field) (value.Value, error) {
	obj, ok := ctx.Value().(*value.Object)
	if !ok {
		return nil, convert.NewTypeError(ctx, "object")
	}

	res := value.NewObject()
	claimed := make(map[string]bool)

	var collector *types.Field

	for i := range fields {
		field := fields[i]

		if field.CollectExtras {
			collector = &fields[i]
			continue
		}

		if field.Flatten {
			err := c.deserializeFlat(ctx, field, obj, claimed, res)
			if err != nil {
				return nil, err
			}

			continue
		}

		matched := ""

		var raw value.Value
		for _, key := range fieldKeys(ctx, field) {
			if v, found := obj.Get(key); found {
				matched, raw = key, v
				claimed[key] = true

				break
			}
		}

		if matched == "" {
			fallback, err := c.missing(ctx, field)
			if err != nil {
				return nil, err
			}

			res.Set(field.Name, fallback)

			continue
		}

		converted, err := ctx.Spawn(raw, fieldType(field), convert.FieldKey(matched)).Convert()
		if err != nil {
			return nil, err
		}

		res.Set(field.Name, converted)
	}

	var extras []string
	for _, key := range obj.Keys() {
		if !claimed[key] {
			extras = append(extras, key)
		}
	}

	if collector != nil {
		sub := value.NewObject()
		for _, key := range extras {
			v, _ := obj.Get(key)
			sub.Set(key, v)
		}

		converted, err := ctx.Spawn(sub, fieldType(*collector),
			convert.FieldKey(collector.Name)).Convert()
		if err != nil {
			return nil, err
		}

		res.Set(collector.Name, converted)

		return res, nil
	}

	err := c.checkExtras(ctx, extras)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// deserializeFlat extracts from the parent payload the keys that the
// flattened record claims, and converts them as the field value.
func (c RecordConverter) deserializeFlat(ctx *convert.Context, field types.Field,
	obj *value.Object, claimed map[string]bool, res *value.Object) error {

	inner, err := c.flatFields(ctx, field)
	if err != nil {
		return err
	}

	sub := value.NewObject()
	for _, key := range claimedKeys(ctx, inner) {
		if v, found := obj.Get(key); found {
			sub.Set(key, v)
			claimed[key] = true
		}
	}

	converted, err := ctx.Spawn(sub, fieldType(field), convert.FieldKey(field.Name)).Convert()
	if err != nil {
		return err
	}

	res.Set(field.Name, converted)

	return nil
}

func (c RecordConverter) serialize(ctx *convert.Context, fields []types.Field) (value.Value, error) {
	obj, ok := ctx.Value().(*value.Object)
	if !ok {
		return nil, convert.NewTypeError(ctx, "object")
	}

	res := value.NewObject()
	claimed := make(map[string]bool)

	for _, field := range fields {
		claimed[field.Name] = true

		raw, found := obj.Get(field.Name)

		if field.CollectExtras || field.Flatten {
			if !found {
				if !field.HasDefault() {
					if field.CollectExtras {
						continue
					}

					return nil, convert.NewMissingField(ctx, field.Name)
				}

				raw = field.DefaultValue()
			}

			converted, err := ctx.Spawn(raw, fieldType(field),
				convert.FieldKey(field.Name)).Convert()
			if err != nil {
				return nil, err
			}

			sub, ok := converted.(*value.Object)
			if !ok {
				return nil, convert.NewError(ctx,
					"field '%s' must serialize to an object to be spliced, got %s",
					field.Name, value.Shape(converted))
			}

			for _, key := range sub.Keys() {
				v, _ := sub.Get(key)
				res.Set(key, v)
			}

			continue
		}

		if !found {
			fallback, err := c.missing(ctx, field)
			if err != nil {
				return nil, err
			}

			raw = fallback
		}

		converted, err := ctx.Spawn(raw, fieldType(field), convert.FieldKey(field.Name)).Convert()
		if err != nil {
			return nil, err
		}

		if c.omitNull(ctx, field, converted) {
			continue
		}

		res.Set(fieldKeys(ctx, field)[0], converted)
	}

	var extras []string
	for _, key := range obj.Keys() {
		if !claimed[key] {
			extras = append(extras, key)
		}
	}

	err := c.checkExtras(ctx, extras)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// missing resolves the value of a field absent from the payload: the default
// when one is declared, an implicit null for optional fields, otherwise a
// missing-field error.
func (c RecordConverter) missing(ctx *convert.Context, field types.Field) (value.Value, error) {
	if field.HasDefault() {
		return field.DefaultValue(), nil
	}

	if _, optional := types.Unwrap(field.Type).(types.Optional); optional {
		return value.Null{}, nil
	}

	return nil, convert.NewMissingField(ctx, fieldKeys(ctx, field)[0])
}

// checkExtras applies the effective extra-keys policy to the unclaimed keys.
func (c RecordConverter) checkExtras(ctx *convert.Context, extras []string) error {
	if len(extras) == 0 {
		return nil
	}

	st, found := ctx.GetSetting(settings.KindExtraKeys)
	if !found || !st.(settings.ExtraKeys).Allow {
		return convert.NewExtraKeys(ctx, extras)
	}

	if recorder := st.(settings.ExtraKeys).Recorder; recorder != nil {
		recorder(ctx.Path(), extras)
	}

	return nil
}

// omitNull tells whether an absent optional field should be left out of the
// serialized form.
func (c RecordConverter) omitNull(ctx *convert.Context, field types.Field, converted value.Value) bool {
	if converted.Kind() != value.KindNull {
		return false
	}

	if _, optional := types.Unwrap(field.Type).(types.Optional); !optional {
		return false
	}

	for _, st := range field.Settings {
		if omit, ok := st.(settings.OmitNull); ok {
			return omit.Enabled
		}
	}

	if st, found := ctx.GetSetting(settings.KindOmitNull); found {
		return st.(settings.OmitNull).Enabled
	}

	return false
}

// flatFields returns the resolved fields of the record a flattened field
// points at.
func (c RecordConverter) flatFields(ctx *convert.Context, field types.Field) ([]types.Field, error) {
	record, ok := types.Unwrap(field.Type).(types.Record)
	if !ok {
		return nil, convert.NewError(ctx, "field '%s' must be a record to be flattened, not %s",
			field.Name, field.Type)
	}

	fields, err := record.ResolvedFields()
	if err != nil {
		return nil, convert.NewError(ctx, "couldn't resolve fields: %v", err).Wrap(err)
	}

	return fields, nil
}

// fieldKeys returns the candidate serialized keys of a field: its aliases
// when set, otherwise its name transformed by the effective naming
// convention. Aliases are never transformed.
func fieldKeys(ctx *convert.Context, field types.Field) []string {
	if len(field.Aliases) > 0 {
		return field.Aliases
	}

	for _, st := range field.Settings {
		if alias, ok := st.(settings.Alias); ok {
			return alias.Names
		}
	}

	name := field.Name

	if st, found := ctx.GetSetting(settings.KindNamingConvention); found {
		if transform := st.(settings.NamingConvention).Transform; transform != nil {
			name = transform(name)
		}
	}

	return []string{name}
}

// claimedKeys returns every serialized key a record's fields claim,
// including the keys of nested flattened records.
func claimedKeys(ctx *convert.Context, fields []types.Field) []string {
	var keys []string

	for _, field := range fields {
		if field.CollectExtras {
			continue
		}

		if field.Flatten {
			if record, ok := types.Unwrap(field.Type).(types.Record); ok {
				if inner, err := record.ResolvedFields(); err == nil {
					keys = append(keys, claimedKeys(ctx, inner)...)
				}
			}

			continue
		}

		keys = append(keys, fieldKeys(ctx, field)...)
	}

	return keys
}

// fieldType returns the type a field's child frame is spawned with: the
// declared type, annotated with the field settings so that they resolve with
// the highest precedence.
func fieldType(field types.Field) types.Type {
	if len(field.Settings) == 0 {
		return field.Type
	}

	return types.NewAnnotated(field.Type, field.Settings...)
}
