// Package objtree adapts already-materialized schema instances back into
// typed-node trees, so a single query layer can operate uniformly whether
// data arrived from a wire parser or was built programmatically.
//
// The adapter is a read-only projection: it never mutates the instance it
// wraps and is safe to construct repeatedly over the same instance. Paths
// and coerced scalar values are computed lazily.
package objtree

import (
	"iter"
	"reflect"
	"sync"

	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/pool"
	"github.com/gofhir/elementmodel/primitive"
	"github.com/gofhir/elementmodel/schema"
)

// node presents one schema instance as a typed node. Path strings are
// accumulated from the parent during construction; the tree never
// traverses upward afterwards.
type node struct {
	inst *schema.Instance
	prop *schema.Property // nil at the root
	name string
	typ  string

	location  string
	shortPath string

	// Lazily computed scalar, memoized against the raw value it was
	// computed from. The memo is internal; it is re-evaluated when the
	// underlying raw value changes between reads.
	mu      sync.Mutex
	memoSet bool
	memoRaw any
	memoVal primitive.Value
}

// Wrap presents a schema instance as a typed-node tree rooted at the
// instance's own type name.
func Wrap(inst *schema.Instance) element.Node {
	t := inst.Type()
	return &node{
		inst:      inst,
		name:      t,
		typ:       t,
		location:  t,
		shortPath: t,
	}
}

func (n *node) Name() string { return n.name }

func (n *node) InstanceType() string { return n.typ }

func (n *node) Location() string { return n.location }

func (n *node) ShortPath() string { return n.shortPath }

// Value projects the instance's stored raw value as a domain scalar,
// applying type-specific coercions: date/time-like storage becomes a
// partial date/time value, bounded-integer storage becomes a plain
// integer. A failed coercion falls back to the uncoerced raw value rather
// than raising; validation is the materializer's job, not the adapter's.
func (n *node) Value() primitive.Value {
	raw, ok := n.inst.RawValue()
	if !ok {
		return nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.memoSet && reflect.DeepEqual(raw, n.memoRaw) {
		return n.memoVal
	}

	v, err := primitive.Coerce(n.typ, raw)
	if err != nil {
		v = fallbackValue(raw)
	}
	n.memoSet = true
	n.memoRaw = raw
	n.memoVal = v
	return v
}

// fallbackValue wraps an uncoercible raw value so callers still see
// something rather than nothing.
func fallbackValue(raw any) primitive.Value {
	switch r := raw.(type) {
	case primitive.Value:
		return r
	case string:
		return primitive.String(r)
	case bool:
		return primitive.Boolean(r)
	}
	return nil
}

// Children enumerates the instance's mapped properties in declared order.
// Value slots are not enumerated; their content is projected through
// Value on this node itself.
func (n *node) Children(names ...string) iter.Seq[element.Node] {
	return func(yield func(element.Node) bool) {
		for _, prop := range n.inst.Descriptor().Properties {
			if prop.ValueSlot {
				continue
			}
			if len(names) > 0 && !anyNameMatches(prop.Name, names) {
				continue
			}
			for i, childInst := range n.inst.Children(prop.Name) {
				if !yield(n.child(prop, childInst, i)) {
					return
				}
			}
		}
	}
}

// child constructs the adapter node for one property value. Repeating
// properties carry their running index in both paths; singleton
// properties keep unindexed paths while remaining uniquely addressable,
// since a non-repeating name occurs at most once among siblings.
func (n *node) child(prop *schema.Property, childInst *schema.Instance, index int) *node {
	idx := -1
	if prop.Repeats {
		idx = index
	}

	// Choice- and resource-typed properties take the runtime type from
	// the instance's dynamic shape; fixed-type properties take the
	// declared one.
	typ := childInst.Type()
	if prop.Kind == schema.KindPrimitive || prop.Kind == schema.KindComplex {
		typ = prop.Types[0]
	}

	return &node{
		inst:      childInst,
		prop:      prop,
		name:      prop.Name,
		typ:       typ,
		location:  pool.ChildPath(n.location, prop.Name, idx),
		shortPath: pool.ChildPath(n.shortPath, prop.Name, idx),
	}
}

func anyNameMatches(name string, filters []string) bool {
	for _, f := range filters {
		if element.NameMatches(name, f) {
			return true
		}
	}
	return false
}

// Verify interface compliance
var _ element.Node = (*node)(nil)
