// This file contains the union type description and its discriminator
// styles.
//
// The best-match style attempts the members in declaration order and keeps
// the first success. This is known to be both inefficient and ambiguous when
// several members could accept the same payload; the declaration order is
// the only tie-break.

package types

import (
	"fmt"
	"strings"
)

// UnionStyle enumerates the discriminator styles of a union.
type UnionStyle int

// Discriminator styles.
const (
	// StyleNested wraps the payload as {"<id>": {...}}.
	StyleNested UnionStyle = iota

	// StyleFlat merges the discriminator key into the member payload:
	// {"type": "<id>", ...}.
	StyleFlat

	// StyleKeyed wraps the payload as {"type": "<id>", "<id>": {...}}.
	StyleKeyed

	// StyleBestMatch uses no discriminator: members are attempted in
	// declaration order and the first success wins.
	StyleBestMatch

	// StyleLiteral behaves like StyleBestMatch but relies on literal fields
	// inside the members to tell them apart, so serialization does not
	// attach anything.
	StyleLiteral
)

// String implements fmt.Stringer.
func (s UnionStyle) String() string {
	switch s {
	case StyleNested:
		return "nested"
	case StyleFlat:
		return "flat"
	case StyleKeyed:
		return "keyed"
	case StyleBestMatch:
		return "bestmatch"
	case StyleLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// ParseUnionStyle returns the style matching the given name.
func ParseUnionStyle(name string) (UnionStyle, bool) {
	for _, s := range []UnionStyle{StyleNested, StyleFlat, StyleKeyed, StyleBestMatch, StyleLiteral} {
		if s.String() == name {
			return s, true
		}
	}

	return StyleNested, false
}

// DefaultDiscriminator is the discriminator key used when a union does not
// declare one.
const DefaultDiscriminator = "type"

// UnionMember is one member of a union, identified by the name that the
// discriminator value carries.
type UnionMember struct {
	Name string
	Type Type
}

// Union describes a type that is exactly one of its members.
//
// - implements types.Type
type Union struct {
	Members []UnionMember

	// Style is the discriminator style. Defaults to StyleNested.
	Style UnionStyle

	// Discriminator is the payload key holding the member name, for the
	// styles that use one. Defaults to DefaultDiscriminator.
	Discriminator string

	// NestingKey is the payload key holding the member payload in the keyed
	// style. When empty, the member name is used.
	NestingKey string
}

// NewUnion returns a union description of the given members.
func NewUnion(style UnionStyle, members ...UnionMember) Union {
	return Union{Members: members, Style: style}
}

// Member returns the member with the given name.
func (u Union) Member(name string) (UnionMember, bool) {
	for _, m := range u.Members {
		if m.Name == name {
			return m, true
		}
	}

	return UnionMember{}, false
}

// DiscriminatorKey returns the configured discriminator key, or the default.
func (u Union) DiscriminatorKey() string {
	if u.Discriminator == "" {
		return DefaultDiscriminator
	}

	return u.Discriminator
}

// Equal implements types.Type.
func (u Union) Equal(other Type) bool {
	o, ok := other.(Union)
	if !ok || o.Style != u.Style || len(o.Members) != len(u.Members) {
		return false
	}

	if o.DiscriminatorKey() != u.DiscriminatorKey() || o.NestingKey != u.NestingKey {
		return false
	}

	for i, m := range u.Members {
		if o.Members[i].Name != m.Name || !equalOrNil(o.Members[i].Type, m.Type) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer.
func (u Union) String() string {
	names := make([]string, len(u.Members))
	for i, m := range u.Members {
		names[i] = m.Name
	}

	return fmt.Sprintf("union[%s]", strings.Join(names, "|"))
}
