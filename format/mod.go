// Package format defines the adapter abstraction between a byte syntax and
// the value model.
//
// An adapter translates losslessly between its native syntax and the subset
// of the value model it supports. Adapters do not participate in the
// conversion itself: their only contribution to the engine is the document
// they load and, through the mapper, the filename used in error traces.
//
// The package keeps a registry of adapters so that tools can look them up by
// name. Adapter packages register themselves when imported.
package format

import (
	"sort"

	"go.dedis.ch/databind/value"
)

// Adapter is the interface implemented by a format adapter.
type Adapter interface {
	// Name returns the name of the format, e.g. "json".
	Name() string

	// Load parses the data into a value tree.
	Load(data []byte) (value.Value, error)

	// Dump renders the value tree in the format syntax.
	Dump(v value.Value) ([]byte, error)
}

var store = make(map[string]Adapter)

// Register makes the adapter available under its name. It is meant to be
// called from the init function of adapter packages, before any lookup
// happens.
func Register(a Adapter) {
	store[a.Name()] = a
}

// Get returns the adapter registered under the name.
func Get(name string) (Adapter, bool) {
	a, found := store[name]
	return a, found
}

// Names returns the names of the registered adapters in lexical order.
func Names() []string {
	names := make([]string, 0, len(store))
	for name := range store {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
