package materialize

import (
	"iter"

	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/primitive"
)

// valueChild is the synthesized pseudo-child wrapping the direct scalar of
// a primitive-bearing node. It reports its parent's location so structural
// errors point at the element that carries the value.
type valueChild struct {
	parent element.Node
	value  primitive.Value
}

func (v valueChild) Name() string { return "value" }

func (v valueChild) Value() primitive.Value { return v.value }

func (v valueChild) InstanceType() string { return v.parent.InstanceType() }

func (v valueChild) Location() string { return v.parent.Location() }

func (v valueChild) ShortPath() string { return v.parent.ShortPath() }

func (v valueChild) Children(names ...string) iter.Seq[element.Node] {
	return func(yield func(element.Node) bool) {}
}

// Verify interface compliance
var _ element.Node = valueChild{}
