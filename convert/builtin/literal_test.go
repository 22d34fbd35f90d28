package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

func TestLiteralConverter_Convert(t *testing.T) {
	typ := types.NewLiteral(value.String("on"), value.NewInt(1))

	mapper := makeMapper(nil)

	res, err := mapper.Deserialize(value.String("on"), typ)
	require.NoError(t, err)
	require.True(t, res.Equal(value.String("on")))

	res, err = mapper.Serialize(value.NewInt(1), typ)
	require.NoError(t, err)
	require.True(t, res.Equal(value.NewInt(1)))

	// A value outside the allowed set exhausts the candidates instead of
	// failing hard, so that unions can fall through.
	_, err = mapper.Deserialize(value.String("off"), typ)

	var e *convert.NoMatchingConverterError
	require.ErrorAs(t, err, &e)

	_, err = mapper.Deserialize(nil, typ)
	require.ErrorAs(t, err, &e)
}
