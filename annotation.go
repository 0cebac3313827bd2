package toolspec

import (
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

// Annotation is the compiler's input unit: a declared parameter or field type.
// The set of kinds is closed; Resolve performs exhaustive case analysis over it.
// Values are plain data; annotations never execute user code during resolution.
type Annotation interface {
	annotationKind() annotationKind
}

type annotationKind int

const (
	kindScalar annotationKind = iota
	kindSequence
	kindMapping
	kindUnion
	kindPlainRecord
	kindValidatedRecord
	kindStructuralMapping
	kindUnknown
)

// Scalar type names as they appear in the emitted schema vocabulary.
const (
	typeString  = "string"
	typeInteger = "integer"
	typeNumber  = "number"
	typeBoolean = "boolean"
	typeNull    = "null"
	typeArray   = "array"
	typeObject  = "object"
)

type scalar struct{ name string }

func (scalar) annotationKind() annotationKind { return kindScalar }

// String returns the string scalar annotation.
func String() Annotation { return scalar{typeString} }

// Integer returns the integer scalar annotation.
func Integer() Annotation { return scalar{typeInteger} }

// Number returns the floating-point scalar annotation.
func Number() Annotation { return scalar{typeNumber} }

// Boolean returns the boolean scalar annotation.
func Boolean() Annotation { return scalar{typeBoolean} }

// Null returns the null scalar annotation. Its main use is inside Union to mark
// a member as optional; see the optional collapse rule on Resolve.
func Null() Annotation { return scalar{typeNull} }

type sequence struct{ elem Annotation }

func (sequence) annotationKind() annotationKind { return kindSequence }

// Sequence returns an ordered-sequence annotation with the given element type.
func Sequence(elem Annotation) Annotation { return sequence{elem: elem} }

type mapping struct{ key, value Annotation }

func (mapping) annotationKind() annotationKind { return kindMapping }

// Mapping returns a key/value annotation. The key must resolve to the string
// scalar; Resolve reports a ModelingError otherwise.
func Mapping(key, value Annotation) Annotation { return mapping{key: key, value: value} }

type union struct{ members []Annotation }

func (union) annotationKind() annotationKind { return kindUnion }

// Union returns an annotation accepting any of the given alternatives, in
// declaration order. Union(T, Null()) is the idiom for an optional T.
func Union(members ...Annotation) Annotation { return union{members: members} }

type unknown struct{}

func (unknown) annotationKind() annotationKind { return kindUnknown }

// Unknown returns the permissive fallback annotation; it resolves to the
// string scalar rather than failing.
func Unknown() Annotation { return unknown{} }

// Field is one declared field of a PlainRecord. A field is required unless it
// carries a static default value or a default factory.
type Field struct {
	Name           string
	Type           Annotation
	Default        any
	HasDefault     bool
	DefaultFactory func() any
}

// PlainRecord is a nominal record type declared via field descriptors.
// Records are registered by pointer so that self-reference is detectable.
type PlainRecord struct {
	Name   string
	Fields []Field
}

func (*PlainRecord) annotationKind() annotationKind { return kindPlainRecord }

// NewPlainRecord declares a plain record annotation with the given fields,
// kept in declaration order.
func NewPlainRecord(name string, fields ...Field) *PlainRecord {
	return &PlainRecord{Name: name, Fields: fields}
}

// Key is one declared key of a StructuralMapping.
type Key struct {
	Name string
	Type Annotation
}

// StructuralMapping is a record-like type declared as a fixed set of named keys
// with no runtime-enforced validation. RequiredKeys nil means every key is
// required; a non-nil (possibly empty) slice is the explicit required set.
type StructuralMapping struct {
	Name         string
	Keys         []Key
	RequiredKeys []string
}

func (*StructuralMapping) annotationKind() annotationKind { return kindStructuralMapping }

// NewStructuralMapping declares a structural mapping annotation with all keys
// required. Use WithRequired to mark the type partial.
func NewStructuralMapping(name string, keys ...Key) *StructuralMapping {
	return &StructuralMapping{Name: name, Keys: keys}
}

// WithRequired sets the explicit required-key set and returns the receiver.
// Passing no names makes every key optional.
func (s *StructuralMapping) WithRequired(names ...string) *StructuralMapping {
	if names == nil {
		names = []string{}
	}
	s.RequiredKeys = names
	return s
}

// ValidatedRecord is a nominal record whose property and required metadata come
// from the record's own exported JSON Schema rather than from field descriptors.
type ValidatedRecord struct {
	Name   string
	Schema *jsonschema.Schema
}

func (*ValidatedRecord) annotationKind() annotationKind { return kindValidatedRecord }

// ValidatedRecordFor builds a ValidatedRecord annotation from a Go struct value
// by reflecting its JSON Schema. Shared sub-definitions stay as $defs/$ref in
// the exported schema; extraction later inlines one level of indirection.
// Types may customize their export with jsonschema struct tags or by
// implementing invopop's JSONSchema() method.
func ValidatedRecordFor(v any) *ValidatedRecord {
	r := &jsonschema.Reflector{}
	s := r.Reflect(v)
	name := recordName(v, s)
	return &ValidatedRecord{Name: name, Schema: s}
}

func recordName(v any, s *jsonschema.Schema) string {
	if s != nil && s.Ref != "" {
		parts := strings.Split(s.Ref, "/")
		return parts[len(parts)-1]
	}
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// isNull reports whether a is the null scalar annotation.
func isNull(a Annotation) bool {
	s, ok := a.(scalar)
	return ok && s.name == typeNull
}

// isRecord reports whether a is one of the record kinds that carry their own
// object schema (ValidatedRecord, PlainRecord, StructuralMapping).
func isRecord(a Annotation) bool {
	switch a.annotationKind() {
	case kindPlainRecord, kindValidatedRecord, kindStructuralMapping:
		return true
	default:
		return false
	}
}
