// Package builtin provides one converter per type description variant and
// the default registry that combines them.
//
// Every converter inspects the type description of the context, after
// removing its annotation layers, and returns convert.ErrNotApplicable when
// the description is not the variant it handles, so that the driver falls
// through to the next candidate in the registry.
package builtin

import (
	"go.dedis.ch/databind/convert/registry"
)

// DefaultRegistry returns a registry with every built-in converter
// registered in the documented order. Callers extend it by registering
// additional converters, or by scoping extensions in a child module.
func DefaultRegistry() *registry.Module {
	mod := registry.NewModule("builtin")

	mod.Register(AnyConverter{})
	mod.Register(LiteralConverter{})
	mod.Register(PrimitiveConverter{})
	mod.Register(OptionalConverter{})
	mod.Register(CollectionConverter{})
	mod.Register(MappingConverter{})
	mod.Register(EnumConverter{})
	mod.Register(UnionConverter{})
	mod.Register(RecordConverter{})

	return mod
}
