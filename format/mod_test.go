package format

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/value"
)

// fakeAdapter is a registrable adapter without syntax.
//
// - implements format.Adapter
type fakeAdapter struct {
	name string
}

func (a fakeAdapter) Name() string {
	return a.name
}

func (a fakeAdapter) Load(data []byte) (value.Value, error) {
	return value.Null{}, nil
}

func (a fakeAdapter) Dump(v value.Value) ([]byte, error) {
	return nil, nil
}

func TestRegister(t *testing.T) {
	Register(fakeAdapter{name: "bbb"})
	Register(fakeAdapter{name: "aaa"})

	a, found := Get("aaa")
	require.True(t, found)
	require.Equal(t, "aaa", a.Name())

	_, found = Get("zzz")
	require.False(t, found)

	require.Equal(t, []string{"aaa", "bbb"}, Names())
}
