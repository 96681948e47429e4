// Package fhirops implements the polymorphic collection operators a
// path-expression evaluator relies on: three-valued boolean evaluation,
// set operations under an injected equality comparer, single-element
// slicing, and the resource-rooted navigation rule.
//
// All operators are pure: input sequences are never mutated.
package fhirops

import (
	"unicode"
	"unicode/utf8"

	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/primitive"
)

// rootAliases are the base-type names a resource-rooted path may use in
// place of the concrete resource type.
var rootAliases = map[string]bool{
	"Resource":       true,
	"DomainResource": true,
}

// Ops evaluates collection operators under a configured equality comparer.
type Ops struct {
	cmp element.Comparer
}

// Option configures an Ops instance.
type Option func(*Ops)

// WithComparer overrides the equality comparer injected into every set
// operator.
func WithComparer(cmp element.Comparer) Option {
	return func(o *Ops) {
		if cmp != nil {
			o.cmp = cmp
		}
	}
}

// New creates an Ops instance. Without options it compares nodes with
// element.ValueComparer.
func New(opts ...Option) *Ops {
	o := &Ops{cmp: element.ValueComparer{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BooleanEval converts a focus to a boolean. An empty focus has no boolean
// value (ok is false). A single element whose value is a boolean yields
// that boolean. Any other non-empty focus is true: presence of content is
// truthy unless a single explicit boolean states otherwise.
func (o *Ops) BooleanEval(focus element.Collection) (value, ok bool) {
	if len(focus) == 0 {
		return false, false
	}
	if len(focus) == 1 && focus[0] != nil {
		if b, isBool := focus[0].Value().(primitive.Boolean); isBool {
			return b.Bool(), true
		}
	}
	return true, true
}

// Not negates BooleanEval. The undefined state of an empty focus
// propagates: ok is false and the caller must not coerce the result.
func (o *Ops) Not(focus element.Collection) (value, ok bool) {
	v, ok := o.BooleanEval(focus)
	if !ok {
		return false, false
	}
	return !v, true
}

// Union returns the distinct set union of a and b: a's elements in their
// original order, followed by b's elements not already included.
func (o *Ops) Union(a, b element.Collection) element.Collection {
	out := o.Distinct(a)
	for _, n := range b {
		if !o.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// Item returns the single element at the 0-based index as a collection.
// An index outside the bounds yields an empty collection, never an error.
func (o *Ops) Item(focus element.Collection, index int) element.Collection {
	if index < 0 || index >= len(focus) {
		return nil
	}
	return element.Collection{focus[index]}
}

// Last returns the final element of the focus. On an empty focus ok is
// false; the result is undefined and the caller must guard.
func (o *Ops) Last(focus element.Collection) (element.Node, bool) {
	if len(focus) == 0 {
		return nil, false
	}
	return focus[len(focus)-1], true
}

// Tail returns all but the first element. An empty or singleton focus
// yields an empty collection.
func (o *Ops) Tail(focus element.Collection) element.Collection {
	if len(focus) <= 1 {
		return nil
	}
	out := make(element.Collection, len(focus)-1)
	copy(out, focus[1:])
	return out
}

// Contains reports whether the focus contains a node equal to value under
// the configured comparer.
func (o *Ops) Contains(focus element.Collection, value element.Node) bool {
	for _, n := range focus {
		if o.cmp.Equal(n, value) {
			return true
		}
	}
	return false
}

// Distinct de-duplicates the focus under the configured comparer,
// preserving order; the first occurrence of each value is kept.
func (o *Ops) Distinct(focus element.Collection) element.Collection {
	var out element.Collection
	for _, n := range focus {
		if !o.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// IsDistinct reports whether the focus contains no duplicate values.
func (o *Ops) IsDistinct(focus element.Collection) bool {
	return len(o.Distinct(focus)) == len(focus)
}

// SubsetOf reports whether every element of the focus is contained in
// other.
func (o *Ops) SubsetOf(focus, other element.Collection) bool {
	for _, n := range focus {
		if !o.Contains(other, n) {
			return false
		}
	}
	return true
}

// Intersect returns the distinct elements of the focus that are contained
// in other, in focus order.
func (o *Ops) Intersect(focus, other element.Collection) element.Collection {
	var out element.Collection
	for _, n := range focus {
		if o.Contains(other, n) && !o.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// Exclude returns the elements of the focus not contained in other, in
// focus order. Duplicates in the focus are preserved.
func (o *Ops) Exclude(focus, other element.Collection) element.Collection {
	var out element.Collection
	for _, n := range focus {
		if !o.Contains(other, n) {
			out = append(out, n)
		}
	}
	return out
}

// Navigate resolves a name step against each node of elements.
//
// A name beginning with an upper-case letter is a type-name match, not a
// child lookup: a node is yielded as-is when its own runtime type equals
// the name, or when the name is one of the root base-type aliases
// (Resource, DomainResource). This supports writing a path as if rooted at
// an abstract base type. A name beginning with a lower-case letter is an
// ordinary child-element lookup. The two rules must not be conflated.
func (o *Ops) Navigate(elements element.Collection, name string) element.Collection {
	var out element.Collection
	if isTypeName(name) {
		for _, n := range elements {
			if n == nil {
				continue
			}
			if n.InstanceType() == name || rootAliases[name] {
				out = append(out, n)
			}
		}
		return out
	}
	for _, n := range elements {
		if n == nil {
			continue
		}
		out = append(out, element.ChildrenOf(n, name)...)
	}
	return out
}

// isTypeName reports whether a navigation step denotes a type name rather
// than a child element.
func isTypeName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
