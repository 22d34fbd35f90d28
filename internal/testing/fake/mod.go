// Package fake provides fake implementations for interfaces commonly used in
// the repository.
// The implementations offer configuration to return errors when it is needed
// by the unit test and it is also possible to record the call of functions of
// an object in some cases.
package fake

import (
	"go.dedis.ch/databind/convert"
	"go.dedis.ch/databind/types"
	"go.dedis.ch/databind/value"
	"golang.org/x/xerrors"
)

// Call is a tool to keep track of a function calls.
type Call struct {
	calls [][]interface{}
}

// NewCall returns a new empty call recorder.
func NewCall() *Call {
	return &Call{}
}

// Get returns the nth call ith parameter.
func (c *Call) Get(n, i int) interface{} {
	return c.calls[n][i]
}

// Len returns the number of calls.
func (c *Call) Len() int {
	return len(c.calls)
}

// Add adds a call to the list.
func (c *Call) Add(args ...interface{}) {
	c.calls = append(c.calls, args)
}

// Converter is a fake implementation of convert.Converter.
//
// - implements convert.Converter
type Converter struct {
	resp value.Value
	err  error
	call *Call
}

// NewConverter returns a fake converter that always succeeds with the given
// value.
func NewConverter(resp value.Value) Converter {
	return Converter{resp: resp}
}

// NewBadConverter returns a fake converter that always fails.
func NewBadConverter() Converter {
	return Converter{err: xerrors.New("fake error")}
}

// NewNotApplicableConverter returns a fake converter that always declines.
func NewNotApplicableConverter() Converter {
	return Converter{err: convert.ErrNotApplicable}
}

// WithCall records the contexts the converter receives in the given
// recorder.
func (c Converter) WithCall(call *Call) Converter {
	c.call = call
	return c
}

// Convert implements convert.Converter.
func (c Converter) Convert(ctx *convert.Context) (value.Value, error) {
	if c.call != nil {
		c.call.Add(ctx)
	}

	return c.resp, c.err
}

// Registry is a fake implementation of convert.Registry that always resolves
// the same converters.
//
// - implements convert.Registry
type Registry struct {
	converters []convert.Converter
}

// NewRegistry returns a fake registry resolving the given converters.
func NewRegistry(converters ...convert.Converter) Registry {
	return Registry{converters: converters}
}

// Resolve implements convert.Registry.
func (r Registry) Resolve(t types.Type, dir convert.Direction) []convert.Converter {
	return r.converters
}
