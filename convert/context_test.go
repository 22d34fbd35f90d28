package convert_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/internal/testing/fake"
	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// converterFunc adapts a function into a converter so that a test can inspect
// or spawn contexts.
//
// - implements convert.Converter
type converterFunc func(ctx *convert.Context) (value.Value, error)

// Convert implements convert.Converter.
func (f converterFunc) Convert(ctx *convert.Context) (value.Value, error) {
	return f(ctx)
}

func TestKey_Segment(t *testing.T) {
	require.Equal(t, ".host", convert.FieldKey("host").Segment())
	require.Equal(t, "[3]", convert.IndexKey(3).Segment())
	require.Equal(t, "", convert.NoKey().Segment())
}

func TestContext_Accessors(t *testing.T) {
	var root *convert.Context

	reg := fake.NewRegistry(converterFunc(func(ctx *convert.Context) (value.Value, error) {
		root = ctx
		return ctx.Value(), nil
	}))

	mapper := convert.NewMapper(reg, nil)
	mapper.SetFilename("config.json")

	_, err := mapper.Deserialize(value.NewInt(4), types.Int)
	require.NoError(t, err)

	require.Nil(t, root.Parent())
	require.True(t, root.Type().Equal(types.Int))
	require.True(t, root.Value().Equal(value.NewInt(4)))
	require.Equal(t, convert.NoKey(), root.Key())
	require.Equal(t, convert.Deserialize, root.Direction())
	require.Equal(t, "config.json", root.Filename())
}

func TestContext_Spawn(t *testing.T) {
	var child *convert.Context

	reg := fake.NewRegistry(converterFunc(func(ctx *convert.Context) (value.Value, error) {
		if ctx.Parent() == nil {
			child = ctx.Spawn(value.String("inner"), types.String, convert.FieldKey("name"))
			return child.Convert()
		}

		return ctx.Value(), nil
	}))

	res, err := convert.NewMapper(reg, nil).Serialize(value.Null{}, types.Any{})
	require.NoError(t, err)
	require.True(t, res.Equal(value.String("inner")))

	require.NotNil(t, child.Parent())
	require.Equal(t, "$.name", child.Path())
	require.Equal(t, convert.Serialize, child.Direction())
}

func TestContext_GetSetting(t *testing.T) {
	inspect := func(typ types.Type, set *settings.Settings) (settings.Setting, bool) {
		var st settings.Setting
		var found bool

		reg := fake.NewRegistry(converterFunc(func(ctx *convert.Context) (value.Value, error) {
			st, found = ctx.GetSetting(settings.KindPrecision)
			return value.Null{}, nil
		}))

		_, err := convert.NewMapper(reg, set).Deserialize(value.Null{}, typ)
		require.NoError(t, err)

		return st, found
	}

	// No setting anywhere.
	_, found := inspect(types.Float, nil)
	require.False(t, found)

	// Global tier.
	set := settings.NewSettings()
	set.AddGlobal(settings.NewPrecision(2))

	st, found := inspect(types.Float, set)
	require.True(t, found)
	require.Equal(t, 2, st.(settings.Precision).Decimals)

	// Schema-attached settings dominate the globals.
	schema := types.NewSchema("Config")
	schema.Settings = []settings.Setting{settings.NewPrecision(3)}

	st, _ = inspect(types.NewRecord(schema), set)
	require.Equal(t, 3, st.(settings.Precision).Decimals)

	// The side table counts as the schema tier as well.
	other := types.NewSchema("Other")
	set.AddLocal(other, settings.NewPrecision(5))

	st, _ = inspect(types.NewRecord(other), set)
	require.Equal(t, 5, st.(settings.Precision).Decimals)

	// Annotations dominate everything, innermost layer first.
	annotated := types.NewAnnotated(
		types.NewAnnotated(types.NewRecord(schema), settings.NewPrecision(7)),
		settings.NewPrecision(8),
	)

	st, _ = inspect(annotated, set)
	require.Equal(t, 7, st.(settings.Precision).Decimals)

	// Within a tier, the priority breaks ties.
	prioritized := types.NewAnnotated(types.Float,
		settings.NewPrecision(1),
		settings.NewPrecision(9, settings.High),
	)

	st, _ = inspect(prioritized, set)
	require.Equal(t, 9, st.(settings.Precision).Decimals)
}

func TestContext_Strict(t *testing.T) {
	inspect := func(typ types.Type, dir convert.Direction) bool {
		var strict bool

		reg := fake.NewRegistry(converterFunc(func(ctx *convert.Context) (value.Value, error) {
			strict = ctx.Strict()
			return value.Null{}, nil
		}))

		_, err := convert.Convert(value.Null{}, typ, dir, nil, reg)
		require.NoError(t, err)

		return strict
	}

	// Strict is the deserialization default.
	require.True(t, inspect(types.Int, convert.Deserialize))

	// Serialization is always strict, regardless of settings.
	require.True(t, inspect(types.NewAnnotated(types.Int, settings.NewStrict(false)),
		convert.Serialize))

	// A Strict setting overrides the default.
	require.False(t, inspect(types.NewAnnotated(types.Int, settings.NewStrict(false)),
		convert.Deserialize))
}

func TestContext_StrictByDefault(t *testing.T) {
	var strict bool

	reg := fake.NewRegistry(converterFunc(func(ctx *convert.Context) (value.Value, error) {
		strict = ctx.Strict()
		return value.Null{}, nil
	}))

	mapper := convert.NewMapper(reg, nil)
	mapper.SetStrictByDefault(false)

	_, err := mapper.Deserialize(value.Null{}, types.Int)
	require.NoError(t, err)
	require.False(t, strict)

	// An explicit setting still dominates the relaxed default.
	_, err = mapper.Deserialize(value.Null{}, types.NewAnnotated(types.Int, settings.NewStrict(true)))
	require.NoError(t, err)
	require.True(t, strict)
}

func TestContext_Trace(t *testing.T) {
	var leaf *convert.Context

	reg := fake.NewRegistry(converterFunc(func(ctx *convert.Context) (value.Value, error) {
		if ctx.Parent() == nil {
			mid := ctx.Spawn(value.NewObject(), types.NewCollection(types.Int), convert.FieldKey("items"))
			return mid.Convert()
		}

		if _, ok := ctx.Type().(types.Collection); ok {
			leaf = ctx.Spawn(value.String("x"), types.Int, convert.IndexKey(2))
			return leaf.Convert()
		}

		return value.Null{}, nil
	}))

	mapper := convert.NewMapper(reg, nil)
	mapper.SetFilename("data.yaml")

	_, err := mapper.Deserialize(value.NewObject(), types.NewMapping(types.String, types.Int))
	require.NoError(t, err)

	require.Equal(t, "$.items[2]", leaf.Path())

	expected := "in \"data.yaml\"\n" +
		"  $: map[string,int]\n" +
		"  $.items: list[int]\n" +
		"  $.items[2]: int"
	require.Equal(t, expected, leaf.Trace())
}
