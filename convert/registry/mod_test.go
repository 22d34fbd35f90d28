package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/internal/testing/fake"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

// matchingConverter declares its applicability upfront.
//
// - implements convert.Converter
// - implements convert.Matcher
type matchingConverter struct {
	fake.Converter

	match bool
}

// Match implements convert.Matcher.
func (c matchingConverter) Match(t types.Type, dir convert.Direction) bool {
	return c.match
}

func TestModule_Name(t *testing.T) {
	require.Equal(t, "builtin", NewModule("builtin").Name())
}

func TestModule_Resolve(t *testing.T) {
	first := fake.NewConverter(value.NewInt(1))
	second := fake.NewConverter(value.NewInt(2))

	mod := NewModule("test")
	mod.Register(first)
	mod.Register(second)

	res := mod.Resolve(types.Int, convert.Deserialize)
	require.Len(t, res, 2)

	// Registration order is preserved.
	require.Equal(t, first, res[0])
	require.Equal(t, second, res[1])
}

func TestModule_Resolve_Matcher(t *testing.T) {
	kept := matchingConverter{match: true}
	skipped := matchingConverter{match: false}

	mod := NewModule("test")
	mod.Register(skipped)
	mod.Register(kept)

	res := mod.Resolve(types.Int, convert.Serialize)
	require.Len(t, res, 1)
	require.Equal(t, convert.Converter(kept), res[0])
}

func TestModule_NewChild(t *testing.T) {
	inherited := fake.NewConverter(value.NewInt(1))
	own := fake.NewConverter(value.NewInt(2))

	parent := NewModule("parent")
	parent.Register(inherited)

	child := parent.NewChild("child")
	child.Register(own)

	// Own converters come before the parent's.
	res := child.Resolve(types.Int, convert.Deserialize)
	require.Len(t, res, 2)
	require.Equal(t, own, res[0])
	require.Equal(t, inherited, res[1])

	// The parent is not affected.
	require.Len(t, parent.Resolve(types.Int, convert.Deserialize), 1)
}
