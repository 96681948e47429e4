// Package materialize builds schema-shaped instances from typed-node
// trees: the strict direction of the element model. It enforces
// cardinality, member-closedness, and enumeration validity, and reports
// structural errors carrying the offending element's location.
package materialize

import (
	"time"

	em "github.com/gofhir/elementmodel"
	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/primitive"
	"github.com/gofhir/elementmodel/schema"
)

// Materializer builds schema instances from typed-node trees using a
// mapping provider. A Materializer is safe for concurrent use as long as
// concurrent calls target different instances.
type Materializer struct {
	provider schema.Provider
	opts     *em.Options
}

// New creates a Materializer. By default unknown members and unrecognized
// enumeration literals are rejected; see em.WithAcceptUnknownMembers and
// em.WithAllowUnrecognizedEnums.
func New(provider schema.Provider, opts ...em.Option) *Materializer {
	o := em.DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Materializer{provider: provider, opts: o}
}

// Materialize builds a fresh instance for the node, resolving the mapping
// descriptor from the node's runtime type.
//
// On error the returned instance is nil and any partially populated state
// is discarded; materialization does not roll back.
func (m *Materializer) Materialize(node element.Node) (*schema.Instance, error) {
	return m.run(node, "", nil)
}

// MaterializeAs builds a fresh instance for the node against an explicit
// type name, overriding resolution from the node's runtime type.
func (m *Materializer) MaterializeAs(node element.Node, typeName string) (*schema.Instance, error) {
	return m.run(node, typeName, nil)
}

// MaterializeInto populates a caller-supplied instance in place. The
// instance's shape must match the resolved descriptor exactly; a mismatch
// is reported before any mutation. The materializer borrows the target for
// the duration of the call; the caller owns it before and after. On error
// the target's contents must be treated as discarded.
func (m *Materializer) MaterializeInto(node element.Node, target *schema.Instance) error {
	if target == nil {
		return em.NewArgumentError("target", "must not be nil")
	}
	_, err := m.run(node, "", target)
	return err
}

func (m *Materializer) run(node element.Node, typeName string, target *schema.Instance) (*schema.Instance, error) {
	start := time.Now()
	inst, err := m.materialize(node, typeName, target)
	m.opts.Metrics.RecordMaterialization(time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// materialize is the recursive core. It resolves the descriptor, resolves
// or allocates the target, then drives every child (including the
// synthesized "value" pseudo-child of primitive-bearing nodes) through one
// uniform assignment loop.
func (m *Materializer) materialize(node element.Node, typeName string, target *schema.Instance) (*schema.Instance, error) {
	if typeName == "" {
		typeName = node.InstanceType()
	}
	if typeName == "" {
		return nil, em.NewStructuralError(em.KindUnknownType, node.Location(),
			"element %q has no resolvable type", node.Name())
	}
	desc, err := m.provider.Descriptor(typeName)
	if err != nil {
		return nil, em.NewStructuralError(em.KindUnknownType, node.Location(),
			"no mapping for type %q: %v", typeName, err)
	}

	if target == nil {
		target = schema.NewInstance(desc)
	} else if target.Type() != desc.Name {
		return nil, em.NewArgumentError("target",
			"existing instance of type %q does not match resolved type %q",
			target.Type(), desc.Name)
	}

	// A direct scalar on the node becomes a pseudo-child named "value",
	// processed ahead of the real children so primitive content and
	// structural sub-elements flow through the same loop.
	if v := node.Value(); v != nil {
		if err := m.assign(node, valueChild{parent: node, value: v}, desc, target); err != nil {
			return nil, err
		}
	}

	for child := range node.Children() {
		if err := m.assign(node, child, desc, target); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// assign materializes one child node into its property on the target.
func (m *Materializer) assign(parent, child element.Node, desc *schema.Descriptor, target *schema.Instance) error {
	name := child.Name()
	prop, ok := desc.Lookup(name)
	if !ok {
		if !m.opts.AcceptUnknownMembers {
			return em.NewStructuralError(em.KindUnknownMember, child.Location(),
				"encountered unknown element %q", name)
		}
		m.opts.Metrics.RecordUnknownMemberSkipped()
		return nil
	}

	if !prop.Repeats && target.Count(name) > 0 {
		return em.NewStructuralError(em.KindRepeatedMember, child.Location(),
			"element %q must not repeat", name)
	}

	if prop.ValueSlot {
		if err := target.SetRawValue(rawOf(child.Value())); err != nil {
			return em.NewStructuralError(em.KindInternal, child.Location(), "%v", err)
		}
		m.opts.Metrics.RecordNode()
		return nil
	}

	childType := child.InstanceType()
	if childType == "" && len(prop.Types) == 1 {
		childType = prop.Types[0]
	}
	if childType == "" {
		return em.NewStructuralError(em.KindUnknownType, child.Location(),
			"cannot resolve the runtime type of polymorphic element %q", name)
	}
	if !prop.AllowsType(childType) {
		return em.NewStructuralError(em.KindTypeMismatch, child.Location(),
			"type %q is not acceptable for element %q", childType, name)
	}

	childInst, err := m.materialize(child, childType, nil)
	if err != nil {
		return err
	}
	if err := target.Add(name, childInst); err != nil {
		return em.NewStructuralError(em.KindInternal, child.Location(), "%v", err)
	}
	m.opts.Metrics.RecordNode()

	// Closed enumerations are advisory, not storage-coercive: valid and
	// tolerated literals alike stay verbatim on the instance.
	if prop.Enum != nil {
		if lit, isLiteral := literalOf(childInst); isLiteral && !prop.EnumAllows(lit) {
			if !m.opts.AllowUnrecognizedEnums {
				return em.NewStructuralError(em.KindInvalidLiteral, parent.Location(),
					"literal %q is not a valid value for element %q", lit, name)
			}
			m.opts.Metrics.RecordEnumTolerated()
		}
	}
	return nil
}

// rawOf unwraps string-shaped primitives to their host string so the value
// slot stores the wire-verbatim literal; other values stay typed.
func rawOf(v primitive.Value) any {
	if s, ok := v.(primitive.String); ok {
		return string(s)
	}
	return v
}

// literalOf extracts a literal string from a materialized primitive
// instance, when it holds one.
func literalOf(inst *schema.Instance) (string, bool) {
	raw, ok := inst.RawValue()
	if !ok {
		return "", false
	}
	switch s := raw.(type) {
	case string:
		return s, true
	case primitive.String:
		return string(s), true
	}
	return "", false
}
