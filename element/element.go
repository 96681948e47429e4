// Package element defines the typed-node contract: the uniform, read-only
// capability every tree node exposes, regardless of whether the tree was
// produced by a wire decoder or wraps an in-memory schema instance.
package element

import (
	"iter"

	"github.com/gofhir/elementmodel/primitive"
)

// Node is a read-only view over one element of hierarchical resource data.
// Nodes are transient projections over backing data: they are created on
// traversal, never persisted, and have no side effects.
type Node interface {
	// Name returns the element name (e.g. "family").
	Name() string

	// Value returns the scalar carried directly by this node, or nil when
	// the node carries none. Primitive-bearing complex elements carry
	// their scalar here in addition to any structural children.
	Value() primitive.Value

	// InstanceType returns the runtime type name of the node's content
	// (e.g. "HumanName", "string"), or "" when unknown. Polymorphic
	// content is only resolvable through this method.
	InstanceType() string

	// Location returns the stable, machine-addressable path of this node,
	// e.g. "Patient.name[0].family". Repeating elements carry their index;
	// singleton elements do not, which keeps locations unique among
	// siblings and stable across repeated traversals of the same data.
	Location() string

	// ShortPath returns the display path. It indexes the same elements
	// Location does, so for this model the two coincide; the distinction
	// exists so producers with denser locations can still render compact
	// paths.
	ShortPath() string

	// Children enumerates direct child nodes lazily, in schema-declared
	// order. With names, only same-named children are yielded, preserving
	// relative order and the index numbering used for Location and
	// ShortPath.
	Children(names ...string) iter.Seq[Node]
}

// Collection is an ordered sequence of nodes, the currency of the
// collection operators.
type Collection []Node

// Collect drains a lazy child sequence into a Collection.
func Collect(seq iter.Seq[Node]) Collection {
	var c Collection
	for n := range seq {
		c = append(c, n)
	}
	return c
}

// ChildrenOf collects the (optionally name-filtered) children of a node.
func ChildrenOf(n Node, names ...string) Collection {
	return Collect(n.Children(names...))
}

// NameMatches reports whether an element name matches a filter name. A
// filter is matched by the exact name; this is the single place a future
// choice-suffix match would hook in.
func NameMatches(name, filter string) bool {
	return name == filter
}
