package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

func TestMappingConverter_Convert(t *testing.T) {
	typ := types.NewMapping(types.String, types.Int)

	mapper := makeMapper(nil)

	obj := value.NewObject().
		Set("a", value.NewInt(1)).
		Set("b", value.NewInt(2))

	res, err := mapper.Deserialize(obj, typ)
	require.NoError(t, err)
	require.True(t, res.Equal(obj))

	// Entry order is preserved.
	require.Equal(t, []string{"a", "b"}, res.(*value.Object).Keys())

	_, err = mapper.Deserialize(value.Sequence{}, typ)
	require.Error(t, err)
	require.Equal(t, "expected object, got sequence", err.(*convert.Error).Message())
}

func TestMappingConverter_EntryError(t *testing.T) {
	typ := types.NewMapping(types.String, types.Int)

	obj := value.NewObject().Set("a", value.String("x"))

	_, err := makeMapper(nil).Deserialize(obj, typ)
	require.Error(t, err)
	require.Equal(t, "$.a", err.(*convert.Error).Path())
}

func TestMappingConverter_KeyType(t *testing.T) {
	_, err := makeMapper(nil).Deserialize(value.NewObject(),
		types.NewMapping(types.Int, types.Int))
	require.Error(t, err)
	require.Equal(t, "mapping keys must be strings, not int", err.(*convert.Error).Message())
}

func TestMappingConverter_Unparameterized(t *testing.T) {
	_, err := makeMapper(nil).Deserialize(value.NewObject(), types.Mapping{})
	require.Error(t, err)
	require.Equal(t, "mapping type map[?,?] is missing its key or value type parameter",
		err.(*convert.Error).Message())
}
