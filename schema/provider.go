package schema

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownType signals a type name that no descriptor is registered for.
var ErrUnknownType = errors.New("unknown type")

// Provider resolves a type name to its mapping descriptor.
// Implementations return an error wrapping ErrUnknownType for unknown
// names.
type Provider interface {
	Descriptor(typeName string) (*Descriptor, error)
}

// Registry is an in-memory, thread-safe Provider.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Descriptor)}
}

// Register adds or replaces a descriptor.
func (r *Registry) Register(d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[d.Name] = d
}

// Descriptor implements Provider.
func (r *Registry) Descriptor(typeName string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return d, nil
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Verify interface compliance
var _ Provider = (*Registry)(nil)
