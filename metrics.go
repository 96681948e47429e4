package elementmodel

import (
	"sync/atomic"
	"time"
)

// Metrics tracks materialization counters using lock-free atomic operations.
// All methods are safe for concurrent use, so a single Metrics instance can
// be shared by materializers running against different targets.
type Metrics struct {
	materializationsTotal  atomic.Uint64
	materializationsFailed atomic.Uint64

	// Timing (stored as nanoseconds)
	materializationTimeTotal atomic.Uint64

	// Soft-failure paths
	unknownMembersSkipped atomic.Uint64
	enumLiteralsTolerated atomic.Uint64

	// Nodes assigned to instance properties
	nodesMaterialized atomic.Uint64

	// Descriptor cache
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordMaterialization records a completed materialization call.
func (m *Metrics) RecordMaterialization(duration time.Duration, ok bool) {
	if m == nil {
		return
	}
	m.materializationsTotal.Add(1)
	if !ok {
		m.materializationsFailed.Add(1)
	}
	m.materializationTimeTotal.Add(uint64(duration.Nanoseconds())) //nolint:gosec // durations are non-negative
}

// RecordNode records one node assigned to an instance property.
func (m *Metrics) RecordNode() {
	if m == nil {
		return
	}
	m.nodesMaterialized.Add(1)
}

// RecordUnknownMemberSkipped records an unmapped member tolerated under
// AcceptUnknownMembers.
func (m *Metrics) RecordUnknownMemberSkipped() {
	if m == nil {
		return
	}
	m.unknownMembersSkipped.Add(1)
}

// RecordEnumTolerated records an enumeration literal tolerated under
// AllowUnrecognizedEnums.
func (m *Metrics) RecordEnumTolerated() {
	if m == nil {
		return
	}
	m.enumLiteralsTolerated.Add(1)
}

// RecordCacheHit records a descriptor-cache hit.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a descriptor-cache miss.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Add(1)
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	MaterializationsTotal  uint64
	MaterializationsFailed uint64
	MaterializationTime    time.Duration
	NodesMaterialized      uint64
	UnknownMembersSkipped  uint64
	EnumLiteralsTolerated  uint64
	CacheHits              uint64
	CacheMisses            uint64
}

// Snapshot returns a consistent-enough copy of the current counters.
// Individual counters are read atomically; the set as a whole is not a
// single atomic read.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		MaterializationsTotal:  m.materializationsTotal.Load(),
		MaterializationsFailed: m.materializationsFailed.Load(),
		MaterializationTime:    time.Duration(m.materializationTimeTotal.Load()), //nolint:gosec // stored from non-negative durations
		NodesMaterialized:      m.nodesMaterialized.Load(),
		UnknownMembersSkipped:  m.unknownMembersSkipped.Load(),
		EnumLiteralsTolerated:  m.enumLiteralsTolerated.Load(),
		CacheHits:              m.cacheHits.Load(),
		CacheMisses:            m.cacheMisses.Load(),
	}
}
