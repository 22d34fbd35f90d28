package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

func TestPrimitiveConverter_NotApplicable(t *testing.T) {
	_, err := makeSoloMapper(PrimitiveConverter{}).Deserialize(value.Null{}, types.Any{})

	var e *convert.NoMatchingConverterError
	require.ErrorAs(t, err, &e)
}

func TestPrimitiveConverter_Bool(t *testing.T) {
	mapper := makeMapper(nil)

	res, err := mapper.Deserialize(value.Bool(true), types.Bool)
	require.NoError(t, err)
	require.True(t, res.Equal(value.Bool(true)))

	// Strict mode rejects keywords.
	_, err = mapper.Deserialize(value.String("yes"), types.Bool)
	require.Error(t, err)
	require.Equal(t, "expected bool, got string", err.(*convert.Error).Message())

	// Relaxed mode accepts the truthy and falsy keywords.
	mapper.SetStrictByDefault(false)

	for _, keyword := range []string{"yes", "true", "ON", "Enabled"} {
		res, err = mapper.Deserialize(value.String(keyword), types.Bool)
		require.NoError(t, err)
		require.True(t, res.Equal(value.Bool(true)))
	}

	for _, keyword := range []string{"no", "false", "OFF", "Disabled"} {
		res, err = mapper.Deserialize(value.String(keyword), types.Bool)
		require.NoError(t, err)
		require.True(t, res.Equal(value.Bool(false)))
	}

	_, err = mapper.Deserialize(value.String("maybe"), types.Bool)
	require.Error(t, err)
	require.Equal(t, "\"maybe\" is not a truthy keyword", err.(*convert.Error).Message())
}

func TestPrimitiveConverter_Int(t *testing.T) {
	mapper := makeMapper(nil)

	res, err := mapper.Deserialize(value.NewInt(42), types.Int)
	require.NoError(t, err)
	require.True(t, res.Equal(value.NewInt(42)))

	// A whole float is a lossless integer.
	res, err = mapper.Deserialize(value.NewFloat(42), types.Int)
	require.NoError(t, err)
	require.True(t, res.Equal(value.NewInt(42)))

	// A fractional float is not.
	_, err = mapper.Deserialize(value.NewFloat(4.2), types.Int)
	require.Error(t, err)

	// Strict mode rejects numeric strings.
	_, err = mapper.Deserialize(value.String("42"), types.Int)
	require.Error(t, err)

	// Relaxed mode parses them.
	mapper.SetStrictByDefault(false)

	res, err = mapper.Deserialize(value.String("42"), types.Int)
	require.NoError(t, err)
	require.True(t, res.Equal(value.NewInt(42)))

	_, err = mapper.Deserialize(value.String("4x2"), types.Int)
	require.Error(t, err)
	require.Equal(t, "\"4x2\" is not an integer", err.(*convert.Error).Message())
}

func TestPrimitiveConverter_Float(t *testing.T) {
	mapper := makeMapper(nil)

	res, err := mapper.Deserialize(value.NewFloat(2.5), types.Float)
	require.NoError(t, err)
	require.True(t, res.Equal(value.NewFloat(2.5)))

	// An integer widens to a float.
	res, err = mapper.Deserialize(value.NewInt(2), types.Float)
	require.NoError(t, err)
	require.True(t, res.Equal(value.NewFloat(2)))

	_, err = mapper.Deserialize(value.String("2.5"), types.Float)
	require.Error(t, err)

	mapper.SetStrictByDefault(false)

	res, err = mapper.Deserialize(value.String("2.5"), types.Float)
	require.NoError(t, err)
	require.True(t, res.Equal(value.NewFloat(2.5)))

	_, err = mapper.Deserialize(value.String("abc"), types.Float)
	require.Error(t, err)
	require.Equal(t, "\"abc\" is not a float", err.(*convert.Error).Message())

	_, err = mapper.Deserialize(value.Bool(true), types.Float)
	require.Error(t, err)
}

func TestPrimitiveConverter_Precision(t *testing.T) {
	typ := types.NewAnnotated(types.Float, settings.NewPrecision(2))

	res, err := makeMapper(nil).Deserialize(value.NewFloat(3.14159), typ)
	require.NoError(t, err)
	require.True(t, res.Equal(value.NewFloat(3.14)))
}

func TestPrimitiveConverter_String(t *testing.T) {
	mapper := makeMapper(nil)

	res, err := mapper.Deserialize(value.String("abc"), types.String)
	require.NoError(t, err)
	require.True(t, res.Equal(value.String("abc")))

	_, err = mapper.Deserialize(value.NewInt(42), types.String)
	require.Error(t, err)

	// Relaxed mode stringifies numbers and booleans.
	mapper.SetStrictByDefault(false)

	res, err = mapper.Deserialize(value.NewInt(42), types.String)
	require.NoError(t, err)
	require.True(t, res.Equal(value.String("42")))

	res, err = mapper.Deserialize(value.Bool(true), types.String)
	require.NoError(t, err)
	require.True(t, res.Equal(value.String("true")))

	_, err = mapper.Deserialize(value.Null{}, types.String)
	require.Error(t, err)
}

func TestPrimitiveConverter_Bytes(t *testing.T) {
	mapper := makeMapper(nil)

	payload, err := mapper.Serialize(value.String("\x01\x02\x03"), types.Bytes)
	require.NoError(t, err)
	require.True(t, payload.Equal(value.String("AQID")))

	raw, err := mapper.Deserialize(payload, types.Bytes)
	require.NoError(t, err)
	require.True(t, raw.Equal(value.String("\x01\x02\x03")))

	_, err = mapper.Deserialize(value.String("not base64!"), types.Bytes)
	require.Error(t, err)

	_, err = mapper.Deserialize(value.NewInt(1), types.Bytes)
	require.Error(t, err)
}

func TestPrimitiveConverter_Stringify(t *testing.T) {
	hooks := settings.NewStringify(
		func(v value.Value) (string, error) {
			return "v=" + v.String(), nil
		},
		func(s string) (value.Value, error) {
			return value.String(s[2:]), nil
		},
	)

	typ := types.NewAnnotated(types.String, hooks)

	mapper := makeMapper(nil)

	payload, err := mapper.Serialize(value.NewInt(7), typ)
	require.NoError(t, err)
	require.True(t, payload.Equal(value.String("v=7")))

	res, err := mapper.Deserialize(value.String("v=ok"), typ)
	require.NoError(t, err)
	require.True(t, res.Equal(value.String("ok")))

	// The load hook only sees strings.
	_, err = mapper.Deserialize(value.NewInt(1), typ)
	require.Error(t, err)
	require.Equal(t, "expected string, got number", err.(*convert.Error).Message())
}
