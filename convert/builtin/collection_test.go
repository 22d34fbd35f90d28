package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

func TestCollectionConverter_Convert(t *testing.T) {
	typ := types.NewCollection(types.Int)

	mapper := makeMapper(nil)

	seq := value.Sequence{value.NewInt(1), value.NewInt(2)}

	res, err := mapper.Deserialize(seq, typ)
	require.NoError(t, err)
	require.True(t, res.Equal(seq))

	res, err = mapper.Serialize(value.Sequence{}, typ)
	require.NoError(t, err)
	require.True(t, res.Equal(value.Sequence{}))

	_, err = mapper.Deserialize(value.NewInt(1), typ)
	require.Error(t, err)
	require.Equal(t, "expected sequence, got number", err.(*convert.Error).Message())
}

func TestCollectionConverter_ElementError(t *testing.T) {
	typ := types.NewCollection(types.Int)

	seq := value.Sequence{value.NewInt(1), value.String("x")}

	_, err := makeMapper(nil).Deserialize(seq, typ)
	require.Error(t, err)

	// The failure points at the offending element.
	require.Equal(t, "$[1]", err.(*convert.Error).Path())
}

func TestCollectionConverter_Unparameterized(t *testing.T) {
	// The missing item type is an error, never a silent wildcard.
	_, err := makeMapper(nil).Deserialize(value.Sequence{}, types.Collection{})
	require.Error(t, err)
	require.Equal(t, "collection type list[?] is missing its item type parameter",
		err.(*convert.Error).Message())
}
