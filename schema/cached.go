package schema

import (
	em "github.com/gofhir/elementmodel"
	"github.com/gofhir/elementmodel/cache"
)

// CachedProvider memoizes descriptor resolution in front of a slower
// Provider (one backed by disk or a package registry). Registry itself
// needs no caching; this wrapper exists for providers that resolve
// lazily.
type CachedProvider struct {
	inner   Provider
	cache   *cache.Cache[string, *Descriptor]
	metrics *em.Metrics
}

// NewCachedProvider wraps a provider with an LRU of the given capacity.
func NewCachedProvider(inner Provider, capacity int) *CachedProvider {
	return NewCachedProviderWithMetrics(inner, capacity, nil)
}

// NewCachedProviderWithMetrics wraps a provider with an LRU of the given
// capacity and records hits and misses on the metrics collector.
func NewCachedProviderWithMetrics(inner Provider, capacity int, m *em.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   cache.New[string, *Descriptor](capacity),
		metrics: m,
	}
}

// Descriptor implements Provider. Unknown types are not negatively cached;
// a type registered later resolves on the next call.
func (p *CachedProvider) Descriptor(typeName string) (*Descriptor, error) {
	if d, ok := p.cache.Get(typeName); ok {
		p.metrics.RecordCacheHit()
		return d, nil
	}
	p.metrics.RecordCacheMiss()
	d, err := p.inner.Descriptor(typeName)
	if err != nil {
		return nil, err
	}
	p.cache.Set(typeName, d)
	return d, nil
}

// Hits returns the number of cache hits.
func (p *CachedProvider) Hits() uint64 { return p.cache.Hits() }

// Misses returns the number of cache misses.
func (p *CachedProvider) Misses() uint64 { return p.cache.Misses() }

// Verify interface compliance
var _ Provider = (*CachedProvider)(nil)
