// Package registry defines the converter registry mechanism.
//
// A module is an ordered collection of converters. The order is significant:
// the driver tries the candidates in registration order and the first one
// that does not signal "not applicable" wins, so registering a converter
// before another is the documented tie-break when both could apply.
//
// Modules compose hierarchically: a child module resolves its own converters
// first and then defers to its parent, so a converter set can be scoped to a
// sub-tree of the conversion without mutating the parent.
//
// A module is mutable during setup only. Once a conversion uses it, it must
// be treated as read-only, which makes it safe to share across concurrent
// conversions.
package registry

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
)

// Module is the default implementation of the converter registry.
//
// - implements convert.Registry
type Module struct {
	name       string
	parent     convert.Registry
	converters []convert.Converter
}

// NewModule returns a new empty module with the given name.
func NewModule(name string) *Module {
	return &Module{name: name}
}

// NewChild returns a new empty module that resolves its own converters first
// and then defers to this module.
func (m *Module) NewChild(name string) *Module {
	return &Module{name: name, parent: m}
}

// Name returns the name of the module.
func (m *Module) Name() string {
	return m.name
}

// Register appends a converter to the module. Registering the same converter
// twice is allowed; it will simply be tried twice.
func (m *Module) Register(c convert.Converter) {
	m.converters = append(m.converters, c)
}

// Resolve implements convert.Registry. It returns the candidate converters
// for the type description and the direction, own converters first in
// registration order, then the parent's. Converters that declare their
// applicability through the convert.Matcher interface are filtered out when
// they do not match.
func (m *Module) Resolve(t types.Type, dir convert.Direction) []convert.Converter {
	res := make([]convert.Converter, 0, len(m.converters))

	for _, c := range m.converters {
		if matcher, ok := c.(convert.Matcher); ok && !matcher.Match(t, dir) {
			continue
		}

		res = append(res, c)
	}

	if m.parent != nil {
		res = append(res, m.parent.Resolve(t, dir)...)
	}

	return res
}
