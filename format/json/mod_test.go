package json

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/format"
	"go.dedis.ch/databind/value"
)

func TestAdapter_Registered(t *testing.T) {
	a, found := format.Get("json")
	require.True(t, found)
	require.Equal(t, "json", a.Name())
}

func TestAdapter_Load(t *testing.T) {
	data := []byte(`{"b": 1, "a": [true, null, "x", 2.5]}`)

	res, err := Adapter{}.Load(data)
	require.NoError(t, err)

	expected := value.NewObject().
		Set("b", value.NewInt(1)).
		Set("a", value.Sequence{
			value.Bool(true),
			value.Null{},
			value.String("x"),
			value.NewFloat(2.5),
		})
	require.True(t, res.Equal(expected))

	// The source key order is preserved.
	require.Equal(t, []string{"b", "a"}, res.(*value.Object).Keys())
}

func TestAdapter_Load_Numbers(t *testing.T) {
	res, err := Adapter{}.Load([]byte(`[1, 2.0, 1e3]`))
	require.NoError(t, err)

	seq := res.(value.Sequence)
	require.True(t, seq[0].(value.Number).IsInt())
	require.False(t, seq[1].(value.Number).IsInt())
	require.False(t, seq[2].(value.Number).IsInt())
}

func TestAdapter_Load_Invalid(t *testing.T) {
	_, err := Adapter{}.Load([]byte(`{`))
	require.Error(t, err)

	_, err = Adapter{}.Load([]byte(`1 2`))
	require.EqualError(t, err, "trailing data after the json document")
}

func TestAdapter_Dump(t *testing.T) {
	v := value.NewObject().
		Set("b", value.NewInt(1)).
		Set("a", value.Sequence{value.Bool(false), value.Null{}, value.String("x")})

	data, err := Adapter{}.Dump(v)
	require.NoError(t, err)
	require.Equal(t, `{"b":1,"a":[false,null,"x"]}`, string(data))
}

func TestAdapter_RoundTrip(t *testing.T) {
	data := []byte(`{"name":"ada","tags":["a","b"],"ratio":0.5,"none":null}`)

	v, err := Adapter{}.Load(data)
	require.NoError(t, err)

	out, err := Adapter{}.Dump(v)
	require.NoError(t, err)
	require.Equal(t, string(data), string(out))
}
