package element

// Comparer decides value-equality between two typed nodes. It is injected
// into every set and sequence operator; implementations must not fall back
// to reference or structural host equality.
type Comparer interface {
	// Equal reports whether a and b are equal.
	Equal(a, b Node) bool
}

// ValueComparer is the default Comparer. Two nodes are equal iff both are
// present or both absent, and their immediate scalar values are equal under
// primitive-value rules. Children are not deep-compared: distinctness in a
// query context is driven by the primitively comparable value of the focus
// item.
type ValueComparer struct{}

// Equal implements Comparer.
func (ValueComparer) Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	av, bv := a.Value(), b.Value()
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	return av.Equal(bv)
}

// Verify interface compliance
var _ Comparer = ValueComparer{}
