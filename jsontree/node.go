package jsontree

import (
	"iter"

	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/primitive"
)

// srcNode is one decoded element. The tree is built once at decode time;
// node views over it are pure projections with no side effects.
type srcNode struct {
	name      string
	typ       string
	value     primitive.Value
	location  string
	shortPath string
	children  []*srcNode
}

func (n *srcNode) Name() string { return n.name }

func (n *srcNode) Value() primitive.Value { return n.value }

func (n *srcNode) InstanceType() string { return n.typ }

func (n *srcNode) Location() string { return n.location }

func (n *srcNode) ShortPath() string { return n.shortPath }

func (n *srcNode) Children(names ...string) iter.Seq[element.Node] {
	return func(yield func(element.Node) bool) {
		for _, c := range n.children {
			if len(names) > 0 && !matchesAny(c.name, names) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

func matchesAny(name string, filters []string) bool {
	for _, f := range filters {
		if element.NameMatches(name, f) {
			return true
		}
	}
	return false
}

// Verify interface compliance
var _ element.Node = (*srcNode)(nil)
