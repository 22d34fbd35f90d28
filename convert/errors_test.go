package convert_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/internal/testing/fake"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
	"golang.org/x/xerrors"
)

// capture runs a conversion with a converter that builds an error from the
// frame it receives, so that the tests can inspect the rendered messages.
func capture(t *testing.T, typ types.Type, v value.Value,
	fn func(ctx *convert.Context) error) error {

	t.Helper()

	reg := fake.NewRegistry(converterFunc(func(ctx *convert.Context) (value.Value, error) {
		return nil, fn(ctx)
	}))

	_, err := convert.NewMapper(reg, nil).Deserialize(v, typ)
	require.Error(t, err)

	return err
}

func TestError_Rendering(t *testing.T) {
	err := capture(t, types.Int, value.String("abc"), func(ctx *convert.Context) error {
		return convert.NewError(ctx, "couldn't parse '%s'", "abc")
	})

	e := err.(*convert.Error)
	require.Equal(t, "couldn't parse 'abc'", e.Message())
	require.Equal(t, "$", e.Path())
	require.Equal(t, "couldn't parse 'abc'\nconversion trace:\n  $: int", e.Error())
}

func TestError_Wrap(t *testing.T) {
	cause := xerrors.New("io failure")

	err := capture(t, types.Int, value.Null{}, func(ctx *convert.Context) error {
		return convert.NewError(ctx, "couldn't read").Wrap(cause)
	})

	require.True(t, xerrors.Is(err, cause))
}

func TestNewTypeError(t *testing.T) {
	err := capture(t, types.Int, value.String("abc"), func(ctx *convert.Context) error {
		return convert.NewTypeError(ctx, "integer")
	})

	require.Equal(t, "expected integer, got string", err.(*convert.Error).Message())
}

func TestMissingFieldError(t *testing.T) {
	err := capture(t, types.Int, value.NewObject(), func(ctx *convert.Context) error {
		return convert.NewMissingField(ctx, "host")
	})

	var e *convert.MissingFieldError
	require.ErrorAs(t, err, &e)
	require.Equal(t, "host", e.Field)
	require.Equal(t, "missing required field 'host'", e.Message())
}

func TestExtraKeysError(t *testing.T) {
	err := capture(t, types.Int, value.NewObject(), func(ctx *convert.Context) error {
		return convert.NewExtraKeys(ctx, []string{"zeta", "alpha"})
	})

	var e *convert.ExtraKeysError
	require.ErrorAs(t, err, &e)
	require.Equal(t, []string{"alpha", "zeta"}, e.Keys)
	require.Equal(t, "unclaimed keys in payload: alpha, zeta", e.Message())
}

func TestInvalidEnumValueError(t *testing.T) {
	err := capture(t, types.Int, value.String("purple"), func(ctx *convert.Context) error {
		return convert.NewInvalidEnumValue(ctx, "\"purple\"", []string{"red", "green"})
	})

	var e *convert.InvalidEnumValueError
	require.ErrorAs(t, err, &e)
	require.Equal(t, []string{"red", "green"}, e.Legal)
	require.Equal(t, "\"purple\" is not a member of the enumeration, expected one of [red, green]",
		e.Message())
}

func TestUnknownUnionMemberError(t *testing.T) {
	union := types.NewUnion(types.StyleFlat, types.UnionMember{Name: "aws", Type: types.Int})

	err := capture(t, union, value.NewObject(), func(ctx *convert.Context) error {
		return convert.NewUnknownUnionMember(ctx, "gcp")
	})

	var e *convert.UnknownUnionMemberError
	require.ErrorAs(t, err, &e)
	require.Equal(t, "gcp", e.Member)
	require.Equal(t, "'gcp' matches no member of union[aws]", e.Message())
}
