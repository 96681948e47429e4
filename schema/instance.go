package schema

import "fmt"

// Instance is a materialized object conforming to one descriptor. It owns
// its property values; a repeating property owns an ordered sequence of
// child instances, and the value slot of a primitive-bearing type owns the
// raw scalar verbatim.
//
// Instances are not safe for concurrent mutation or concurrent
// read-while-mutate; the materializer borrows the instance for the
// duration of a call and the caller owns it before and after.
type Instance struct {
	desc   *Descriptor
	fields map[string][]*Instance
	raw    any
	hasRaw bool
}

// NewInstance allocates an empty instance of the given shape.
func NewInstance(desc *Descriptor) *Instance {
	return &Instance{
		desc:   desc,
		fields: make(map[string][]*Instance),
	}
}

// Type returns the instance's mapped type name.
func (in *Instance) Type() string {
	return in.desc.Name
}

// Descriptor returns the mapping descriptor shaping this instance.
func (in *Instance) Descriptor() *Descriptor {
	return in.desc
}

// Add appends a child instance to the named property. Cardinality is not
// enforced here; the materializer rejects repeats before assignment.
func (in *Instance) Add(name string, child *Instance) error {
	p, ok := in.desc.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q has no element %q", ErrNotMapped, in.desc.Name, name)
	}
	if p.ValueSlot {
		return fmt.Errorf("element %q of %q is a value slot; use SetRawValue", name, in.desc.Name)
	}
	in.fields[name] = append(in.fields[name], child)
	return nil
}

// Count returns the number of values assigned to the named property. The
// value slot counts as one once set.
func (in *Instance) Count(name string) int {
	if p, ok := in.desc.Lookup(name); ok && p.ValueSlot {
		if in.hasRaw {
			return 1
		}
		return 0
	}
	return len(in.fields[name])
}

// Children returns the ordered child instances of the named property.
func (in *Instance) Children(name string) []*Instance {
	return in.fields[name]
}

// Child returns the first child instance of the named property.
func (in *Instance) Child(name string) (*Instance, bool) {
	c := in.fields[name]
	if len(c) == 0 {
		return nil, false
	}
	return c[0], true
}

// SetRawValue stores the scalar of a primitive-bearing instance verbatim
// into its value slot.
func (in *Instance) SetRawValue(v any) error {
	if _, ok := in.desc.ValueProperty(); !ok {
		return fmt.Errorf("type %q has no value slot", in.desc.Name)
	}
	in.raw = v
	in.hasRaw = true
	return nil
}

// RawValue returns the stored value-slot scalar, unconverted.
func (in *Instance) RawValue() (any, bool) {
	return in.raw, in.hasRaw
}
