// This file contains the structured conversion errors. Every error carries
// the frame at the point of failure, so that its message can be rendered
// with the full path trace from the root of the payload.

package convert

import (
	"fmt"
	"sort"
	"strings"

	"go.dedis.ch/databind/value"
)

// Error is a structured conversion failure. It carries the message, an
// optional expected-versus-actual description, and the frame at the point of
// failure.
//
// - implements error
type Error struct {
	message string
	frame   *Context
	cause   error
}

// NewError returns a conversion error with the given message, located at the
// frame.
func NewError(ctx *Context, format string, args ...interface{}) *Error {
	return &Error{
		message: fmt.Sprintf(format, args...),
		frame:   ctx,
	}
}

// NewTypeError returns a conversion error describing a mismatch between the
// expected type and the runtime shape of the value.
func NewTypeError(ctx *Context, expected string) *Error {
	return &Error{
		message: fmt.Sprintf("expected %s, got %s", expected, value.Shape(ctx.Value())),
		frame:   ctx,
	}
}

// Wrap attaches a cause to the error and returns it.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// Message returns the failure message without the trace.
func (e *Error) Message() string {
	return e.message
}

// Frame returns the frame at the point of failure.
func (e *Error) Frame() *Context {
	return e.frame
}

// Path returns the payload path at the point of failure.
func (e *Error) Path() string {
	return e.frame.Path()
}

// Unwrap returns the cause of the error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Error implements error. It renders the message followed by the conversion
// trace.
func (e *Error) Error() string {
	return fmt.Sprintf("%s\nconversion trace:\n%s", e.message, e.frame.Trace())
}

// baseError aliases Error so that the wrapper types below can embed it
// without the field name colliding with the promoted Error method.
type baseError = Error

// NoMatchingConverterError indicates that no registered converter claimed
// applicability for the type description of the frame.
//
// - implements error
type NoMatchingConverterError struct {
	*baseError
}

// NewNoMatchingConverter returns an error for a frame that exhausted the
// candidate converters.
func NewNoMatchingConverter(ctx *Context) *NoMatchingConverterError {
	return &NoMatchingConverterError{
		baseError: NewError(ctx, "no applicable converter for %s on %s value",
			ctx.Type(), value.Shape(ctx.Value())),
	}
}

// MissingFieldError indicates that a required field has neither a payload
// entry nor a default.
//
// - implements error
type MissingFieldError struct {
	*baseError

	Field string
}

// NewMissingField returns an error for the missing field.
func NewMissingField(ctx *Context, field string) *MissingFieldError {
	return &MissingFieldError{
		baseError: NewError(ctx, "missing required field '%s'", field),
		Field: field,
	}
}

// ExtraKeysError indicates that the payload carries keys that no field
// claims and that the effective extra-keys policy forbids them.
//
// - implements error
type ExtraKeysError struct {
	*baseError

	Keys []string
}

// NewExtraKeys returns an error listing the unclaimed keys.
func NewExtraKeys(ctx *Context, keys []string) *ExtraKeysError {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	return &ExtraKeysError{
		baseError: NewError(ctx, "unclaimed keys in payload: %s", strings.Join(sorted, ", ")),
		Keys:  sorted,
	}
}

// InvalidEnumValueError indicates that a payload value matches no member of
// the enumeration.
//
// - implements error
type InvalidEnumValueError struct {
	*baseError

	Legal []string
}

// NewInvalidEnumValue returns an error listing the legal members.
func NewInvalidEnumValue(ctx *Context, got string, legal []string) *InvalidEnumValueError {
	return &InvalidEnumValueError{
		baseError: NewError(ctx, "%s is not a member of the enumeration, expected one of [%s]",
			got, strings.Join(legal, ", ")),
		Legal: legal,
	}
}

// UnknownUnionMemberError indicates that a discriminator value matches no
// member of the union.
//
// - implements error
type UnknownUnionMemberError struct {
	*baseError

	Member string
}

// NewUnknownUnionMember returns an error for the unknown member name.
func NewUnknownUnionMember(ctx *Context, member string) *UnknownUnionMemberError {
	return &UnknownUnionMemberError{
		baseError: NewError(ctx, "'%s' matches no member of %s", member, ctx.Type()),
		Member: member,
	}
}

// UnresolvedVariableError indicates that a type variable reached the engine
// without being bound to a concrete type. This is an integration bug of the
// caller and is never recovered.
//
// - implements error
type UnresolvedVariableError struct {
	*baseError

	Name string
}

// NewUnresolvedVariable returns an error for the unresolved variable.
func NewUnresolvedVariable(ctx *Context, name string) *UnresolvedVariableError {
	return &UnresolvedVariableError{
		baseError: NewError(ctx, "type variable '%s' reached the engine unresolved", name),
		Name:  name,
	}
}
