// Package schema defines mapping descriptors, the metadata describing a
// domain type's properties, cardinalities, and type classification, and
// the schema instances shaped by them.
package schema

import (
	"errors"
	"strings"
	"unicode"

	"github.com/gofhir/elementmodel/primitive"
)

// Kind classifies a property's declared content.
type Kind int

const (
	// KindPrimitive is a primitive-typed property.
	KindPrimitive Kind = iota
	// KindComplex is a complex-typed property with a single declared type.
	KindComplex
	// KindChoice is a choice property: its declared type is a closed set
	// of alternatives, resolved to one concrete type per instance.
	KindChoice
	// KindResource is a property holding a nested resource whose type is
	// only discoverable from the data.
	KindResource
)

// Property describes one element of a mapped type.
type Property struct {
	// Name is the element name. For a choice property this is the base
	// name (e.g. "value" for value[x]); wire representations suffix the
	// resolved type onto it.
	Name string

	// Types lists the acceptable type names. A fixed-type property has
	// exactly one; a choice property has several; a resource property
	// conventionally lists "Resource".
	Types []string

	// Repeats is true for a repeating (list) property.
	Repeats bool

	// Kind classifies the property.
	Kind Kind

	// ValueSlot is true for the property representing the "value" slot of
	// a primitive-bearing complex element. Its content is the scalar
	// itself rather than a nested instance.
	ValueSlot bool

	// Enum is the closed set of literal values for an enumerated
	// primitive, nil when the property is open.
	Enum []string
}

// AllowsType reports whether a runtime type name is acceptable for this
// property.
func (p *Property) AllowsType(name string) bool {
	for _, t := range p.Types {
		if t == name {
			return true
		}
	}
	return p.Kind == KindResource
}

// EnumAllows reports whether a literal is inside the closed enumeration.
// Open properties allow everything.
func (p *Property) EnumAllows(literal string) bool {
	if p.Enum == nil {
		return true
	}
	for _, v := range p.Enum {
		if v == literal {
			return true
		}
	}
	return false
}

// Descriptor is the mapping descriptor for one schema type: its name and
// property list in declared order.
type Descriptor struct {
	// Name is the type name (e.g. "Patient", "HumanName", "string").
	Name string

	// Properties lists the type's elements in declared order.
	Properties []*Property

	index map[string]*Property
}

// NewDescriptor creates a descriptor and builds its name index.
func NewDescriptor(name string, props ...*Property) *Descriptor {
	d := &Descriptor{
		Name:       name,
		Properties: props,
		index:      make(map[string]*Property, len(props)),
	}
	for _, p := range props {
		d.index[p.Name] = p
	}
	return d
}

// Lookup returns the property with the given element name.
func (d *Descriptor) Lookup(name string) (*Property, bool) {
	p, ok := d.index[name]
	return p, ok
}

// ValueProperty returns the value-slot property, if the type has one.
func (d *Descriptor) ValueProperty() (*Property, bool) {
	for _, p := range d.Properties {
		if p.ValueSlot {
			return p, true
		}
	}
	return nil, false
}

// ErrNotMapped signals an element name with no property in a descriptor.
var ErrNotMapped = errors.New("element not mapped")

// ChoiceLookup resolves a wire-format choice name such as "valueString"
// against the descriptor's choice properties. It returns the property, the
// resolved concrete type name, and whether the name matched. Plain names
// are not resolved here; callers try Lookup first.
func (d *Descriptor) ChoiceLookup(wireName string) (*Property, string, bool) {
	for _, p := range d.Properties {
		if p.Kind != KindChoice {
			continue
		}
		if !strings.HasPrefix(wireName, p.Name) || len(wireName) == len(p.Name) {
			continue
		}
		suffix := wireName[len(p.Name):]
		r := rune(suffix[0])
		if !unicode.IsUpper(r) {
			continue
		}
		// Primitive alternatives are declared lower-case; complex ones
		// keep the suffix casing.
		if lower := lowerFirst(suffix); primitive.IsPrimitiveType(lower) && p.AllowsType(lower) {
			return p, lower, true
		}
		if p.AllowsType(suffix) {
			return p, suffix, true
		}
	}
	return nil, "", false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
