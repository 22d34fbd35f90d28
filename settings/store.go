// This file contains the container for global and schema-attached settings.
//
// Settings attached "to a schema" are kept in an explicit side table keyed by
// the schema identity, so that attaching settings never mutates the type
// description itself.

package settings

// Settings is a container for the settings that apply to a whole conversion
// call. It holds global settings and a side table of settings attached to a
// specific schema, and can defer to a parent container.
//
// The container is mutable during setup only. Once a conversion uses it, it
// must be treated as read-only, which makes it safe to share across
// concurrent conversions.
type Settings struct {
	parent *Settings
	global []Setting
	local  map[interface{}][]Setting
}

// NewSettings returns a new empty settings container.
func NewSettings() *Settings {
	return &Settings{
		local: make(map[interface{}][]Setting),
	}
}

// NewChild returns a new empty container that defers to this one. Lookups
// return the child's own settings before the parent's.
func (s *Settings) NewChild() *Settings {
	child := NewSettings()
	child.parent = s

	return child
}

// AddGlobal adds a setting that applies to every context of the conversion.
func (s *Settings) AddGlobal(st Setting) {
	s.global = append(s.global, st)
}

// AddLocal attaches a setting to the given key, usually a *types.Schema. The
// setting applies whenever a conversion context points at that schema.
func (s *Settings) AddLocal(key interface{}, st Setting) {
	s.local[key] = append(s.local[key], st)
}

// Global returns every global setting of the given kind, own settings first,
// then the parent's.
func (s *Settings) Global(kind Kind) []Setting {
	if s == nil {
		return nil
	}

	res := filter(s.global, kind)

	return append(res, s.parent.Global(kind)...)
}

// Local returns every setting of the given kind attached to the key, own
// settings first, then the parent's.
func (s *Settings) Local(key interface{}, kind Kind) []Setting {
	if s == nil {
		return nil
	}

	res := filter(s.local[key], kind)

	return append(res, s.parent.Local(key, kind)...)
}

func filter(list []Setting, kind Kind) []Setting {
	var res []Setting
	for _, st := range list {
		if st.Kind() == kind {
			res = append(res, st)
		}
	}

	return res
}
