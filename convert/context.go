// This file contains the conversion context: the per-step frame that carries
// the current type description, the current value, the direction, and a link
// to the parent frame.
//
// The chain of frames is an explicit immutable structure so that errors can
// render a full path trace independently of the call stack.

package convert

import (
	"fmt"
	"strings"

	"go.dedis.ch/databind/settings"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
)

type keyKind int

const (
	keyNone keyKind = iota
	keyField
	keyIndex
)

// Key locates a value relative to its parent: a field name, a sequence
// index, or nothing for frames that keep the parent location.
type Key struct {
	kind  keyKind
	name  string
	index int
}

// FieldKey returns a key locating the value under an object key.
func FieldKey(name string) Key {
	return Key{kind: keyField, name: name}
}

// IndexKey returns a key locating the value at a sequence index.
func IndexKey(index int) Key {
	return Key{kind: keyIndex, index: index}
}

// NoKey returns the key of a frame that stays at the parent location, such
// as the inner frame of an optional.
func NoKey() Key {
	return Key{}
}

// Segment returns the path segment of the key, empty for NoKey.
func (k Key) Segment() string {
	switch k.kind {
	case keyField:
		return "." + k.name
	case keyIndex:
		return fmt.Sprintf("[%d]", k.index)
	default:
		return ""
	}
}

// Context is the frame passed to a converter. Frames are created per
// recursive step and never mutated afterwards.
type Context struct {
	parent    *Context
	typ       types.Type
	val       value.Value
	key       Key
	direction Direction
	filename  string
	mapper    *Mapper
}

// Parent returns the parent frame, or nil at the root.
func (c *Context) Parent() *Context {
	return c.parent
}

// Type returns the type description of the frame, including its
// annotations.
func (c *Context) Type() types.Type {
	return c.typ
}

// Value returns the value being converted.
func (c *Context) Value() value.Value {
	return c.val
}

// Key returns the location of the value relative to the parent frame.
func (c *Context) Key() Key {
	return c.key
}

// Direction returns the direction of the conversion.
func (c *Context) Direction() Direction {
	return c.direction
}

// Filename returns the source location identifier of the document, or an
// empty string.
func (c *Context) Filename() string {
	return c.filename
}

// Spawn returns a child frame for a nested value. The filename of the
// parent is inherited.
func (c *Context) Spawn(v value.Value, t types.Type, key Key) *Context {
	return &Context{
		parent:    c,
		typ:       t,
		val:       v,
		key:       key,
		direction: c.direction,
		filename:  c.filename,
		mapper:    c.mapper,
	}
}

// Convert dispatches the frame to the first applicable converter of the
// registry.
func (c *Context) Convert() (value.Value, error) {
	return c.mapper.convert(c)
}

// GetSetting resolves the single effective setting of the given kind for
// this frame. The precedence tiers are scanned in order: the annotations of
// the current type description (innermost first), then the settings attached
// to the schema, then the global settings. Within a tier, the priority of
// each instance breaks ties. It returns false when no tier has a match.
func (c *Context) GetSetting(kind settings.Kind) (settings.Setting, bool) {
	if st, ok := settings.Highest(c.annotatedSettings(kind)); ok {
		return st, true
	}

	if st, ok := settings.Highest(c.schemaSettings(kind)); ok {
		return st, true
	}

	return settings.Highest(c.mapper.settings.Global(kind))
}

// annotatedSettings collects the settings of the given kind from the
// annotation layers of the type description, innermost first.
func (c *Context) annotatedSettings(kind settings.Kind) []settings.Setting {
	var layers [][]settings.Setting

	for t := c.typ; ; {
		a, ok := t.(types.Annotated)
		if !ok {
			break
		}

		layers = append(layers, a.Settings)
		t = a.Base
	}

	var res []settings.Setting
	for i := len(layers) - 1; i >= 0; i-- {
		for _, st := range layers[i] {
			if st.Kind() == kind {
				res = append(res, st)
			}
		}
	}

	return res
}

// schemaSettings collects the settings of the given kind attached to the
// schema the frame points at, either directly on the schema or through the
// side table of the settings container. The scope is the record frame itself:
// nested records resolve their own schema settings, never the parent's.
func (c *Context) schemaSettings(kind settings.Kind) []settings.Setting {
	rec, ok := types.Unwrap(c.typ).(types.Record)
	if !ok {
		return nil
	}

	var res []settings.Setting
	for _, st := range rec.Schema.Settings {
		if st.Kind() == kind {
			res = append(res, st)
		}
	}

	return append(res, c.mapper.settings.Local(rec.Schema, kind)...)
}

// Strict returns the effective strictness of the frame. Serialization is
// always strict; deserialization resolves the Strict setting and falls back
// to the mapper default.
func (c *Context) Strict() bool {
	if c.direction == Serialize {
		return true
	}

	if st, ok := c.GetSetting(settings.KindStrict); ok {
		return st.(settings.Strict).Enabled
	}

	return c.mapper.strict
}

// Path returns the payload path of the frame, such as "$.server.port" or
// "$.items[2]".
func (c *Context) Path() string {
	if c.parent == nil {
		return "$"
	}

	return c.parent.Path() + c.key.Segment()
}

// Trace renders the chain of frames from the root down to this one, one
// line per frame with its path and its expected type.
func (c *Context) Trace() string {
	var frames []*Context
	for cur := c; cur != nil; cur = cur.parent {
		frames = append(frames, cur)
	}

	var sb strings.Builder

	if c.filename != "" {
		fmt.Fprintf(&sb, "in %q\n", c.filename)
	}

	for i := len(frames) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "  %s: %s", frames[i].Path(), frames[i].typ)

		if i > 0 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
