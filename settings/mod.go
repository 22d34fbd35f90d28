// Package settings defines the typed settings that affect the behavior of
// converters, and their resolution rules.
//
// A setting is an instance of one of the concrete kinds defined in this
// package. During a conversion, at most one instance per kind is effective
// for a given context. The effective instance is resolved by scanning, in
// precedence order, the settings attached to the innermost annotation of the
// current type description, then the settings attached to the schema, then
// the global settings passed to the conversion call. Within one of these
// tiers, the priority of each instance breaks ties, highest first; the first
// instance at the highest priority wins.
package settings

import "go.dedis.ch/databind/value"

// Priority determines the order of settings in the presence of multiple
// conflicting instances inside the same precedence tier.
type Priority int

// Priorities, from the weakest to the strongest. Constructors assign Normal
// unless told otherwise.
const (
	Low Priority = iota
	Normal
	High
	Ultimate
)

// Kind identifies one kind of setting. At most one instance per kind is
// effective for a given conversion context.
type Kind int

// Kinds of settings.
const (
	// KindStrict controls loss-less primitive coercions. Default: strict
	// deserialization, always-strict serialization.
	KindStrict Kind = iota

	// KindAlias overrides the serialized name of a record field. Default:
	// none, the field name is used.
	KindAlias

	// KindDateFormat carries a date layout for converters that represent
	// dates as strings. Default: none.
	KindDateFormat

	// KindPrecision bounds the number of decimals of floating point values.
	// Default: none, values are kept as-is.
	KindPrecision

	// KindExtraKeys decides what happens to payload keys that no field
	// claims. Default: they are an error.
	KindExtraKeys

	// KindOmitNull omits absent optional fields instead of serializing an
	// explicit null. Default: disabled.
	KindOmitNull

	// KindUnionStyle overrides the discriminator style of a union. Default:
	// the style declared on the union type.
	KindUnionStyle

	// KindNamingConvention transforms field names into serialized keys.
	// Default: none, names are used verbatim.
	KindNamingConvention

	// KindStringify replaces the primitive conversion with custom hooks that
	// render to and parse from a string. Default: none.
	KindStringify
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindStrict:
		return "strict"
	case KindAlias:
		return "alias"
	case KindDateFormat:
		return "dateformat"
	case KindPrecision:
		return "precision"
	case KindExtraKeys:
		return "extrakeys"
	case KindOmitNull:
		return "omitnull"
	case KindUnionStyle:
		return "unionstyle"
	case KindNamingConvention:
		return "namingconvention"
	case KindStringify:
		return "stringify"
	default:
		return "unknown"
	}
}

// Setting is the interface implemented by every concrete setting.
type Setting interface {
	// Kind returns the kind the setting is keyed by.
	Kind() Kind

	// Priority returns the tie-break priority of this instance.
	Priority() Priority
}

type base struct {
	prio Priority
}

func (b base) Priority() Priority {
	return b.prio
}

func makeBase(prio []Priority) base {
	if len(prio) > 0 {
		return base{prio: prio[0]}
	}

	return base{prio: Normal}
}

// Strict enables or disables loss-less primitive coercions during
// deserialization. Serialization is always strict.
//
// - implements settings.Setting
type Strict struct {
	base

	Enabled bool
}

// NewStrict returns a strictness setting.
func NewStrict(enabled bool, prio ...Priority) Strict {
	return Strict{base: makeBase(prio), Enabled: enabled}
}

// Kind implements settings.Setting.
func (s Strict) Kind() Kind {
	return KindStrict
}

// Alias attaches one or more alternative serialized names to a record field.
// During deserialization every alias is tried in order; during serialization
// the first alias is used.
//
// - implements settings.Setting
type Alias struct {
	base

	Names []string
}

// NewAlias returns an alias setting for the given names.
func NewAlias(name string, more ...string) Alias {
	return Alias{base: makeBase(nil), Names: append([]string{name}, more...)}
}

// Kind implements settings.Setting.
func (a Alias) Kind() Kind {
	return KindAlias
}

// DateFormat carries a date layout for converters that represent dates as
// strings. The built-in converters do not read it; it is resolved by custom
// converters registered alongside them.
//
// - implements settings.Setting
type DateFormat struct {
	base

	Layout string
}

// NewDateFormat returns a date format setting with the given layout.
func NewDateFormat(layout string, prio ...Priority) DateFormat {
	return DateFormat{base: makeBase(prio), Layout: layout}
}

// Kind implements settings.Setting.
func (d DateFormat) Kind() Kind {
	return KindDateFormat
}

// Precision bounds the number of decimals kept when converting floating
// point values.
//
// - implements settings.Setting
type Precision struct {
	base

	Decimals int
}

// NewPrecision returns a precision setting keeping the given number of
// decimals.
func NewPrecision(decimals int, prio ...Priority) Precision {
	return Precision{base: makeBase(prio), Decimals: decimals}
}

// Kind implements settings.Setting.
func (p Precision) Kind() Kind {
	return KindPrecision
}

// ExtraKeys decides what happens to payload keys that no record field
// claims. When allowed, the optional recorder is invoked with the path of
// the record and the offending keys instead of failing the conversion.
//
// - implements settings.Setting
type ExtraKeys struct {
	base

	Allow    bool
	Recorder func(path string, keys []string)
}

// NewExtraKeys returns an extra-keys setting.
func NewExtraKeys(allow bool, prio ...Priority) ExtraKeys {
	return ExtraKeys{base: makeBase(prio), Allow: allow}
}

// NewExtraKeysRecorder returns an extra-keys setting that allows unclaimed
// keys and reports them to the recorder.
func NewExtraKeysRecorder(fn func(path string, keys []string)) ExtraKeys {
	return ExtraKeys{base: makeBase(nil), Allow: true, Recorder: fn}
}

// Kind implements settings.Setting.
func (e ExtraKeys) Kind() Kind {
	return KindExtraKeys
}

// OmitNull omits absent optional fields from the serialized form instead of
// writing an explicit null.
//
// - implements settings.Setting
type OmitNull struct {
	base

	Enabled bool
}

// NewOmitNull returns an omit-null setting.
func NewOmitNull(enabled bool, prio ...Priority) OmitNull {
	return OmitNull{base: makeBase(prio), Enabled: enabled}
}

// Kind implements settings.Setting.
func (o OmitNull) Kind() Kind {
	return KindOmitNull
}

// UnionStyle overrides the discriminator style declared on a union type. The
// style names match the constants of the types package: "nested", "flat",
// "keyed", "bestmatch" and "literal". An empty field leaves the declared
// value untouched.
//
// - implements settings.Setting
type UnionStyle struct {
	base

	Style         string
	Discriminator string
}

// NewUnionStyle returns a union style setting.
func NewUnionStyle(style string, prio ...Priority) UnionStyle {
	return UnionStyle{base: makeBase(prio), Style: style}
}

// Kind implements settings.Setting.
func (u UnionStyle) Kind() Kind {
	return KindUnionStyle
}

// NamingConvention transforms record field names into serialized keys.
// Aliases are never transformed.
//
// - implements settings.Setting
type NamingConvention struct {
	base

	// Transform maps a field name to its serialized key.
	Transform func(name string) string
}

// NewNamingConvention returns a naming convention setting using the given
// transformation.
func NewNamingConvention(fn func(string) string, prio ...Priority) NamingConvention {
	return NamingConvention{base: makeBase(prio), Transform: fn}
}

// Kind implements settings.Setting.
func (n NamingConvention) Kind() Kind {
	return KindNamingConvention
}

// Stringify replaces the primitive conversion with custom hooks that render
// the typed value to a string and parse it back.
//
// - implements settings.Setting
type Stringify struct {
	base

	// Dump renders the typed value to its serialized string.
	Dump func(v value.Value) (string, error)

	// Load parses the serialized string back into the typed value.
	Load func(s string) (value.Value, error)
}

// NewStringify returns a stringify setting with the given hooks.
func NewStringify(dump func(value.Value) (string, error),
	load func(string) (value.Value, error), prio ...Priority) Stringify {

	return Stringify{base: makeBase(prio), Dump: dump, Load: load}
}

// Kind implements settings.Setting.
func (s Stringify) Kind() Kind {
	return KindStringify
}

// Highest returns the first setting with the highest priority among the
// candidates, or false when there is none.
func Highest(candidates []Setting) (Setting, bool) {
	var best Setting

	for _, c := range candidates {
		if best == nil || c.Priority() > best.Priority() {
			best = c
		}
	}

	return best, best != nil
}
