package elementmodel

// Option configures materialization behavior.
type Option func(*Options)

// Options holds all configuration recognized by the materializer.
type Options struct {
	// AcceptUnknownMembers tolerates element names that are not mapped by
	// the target descriptor instead of rejecting them. Skipped members are
	// absent from the resulting instance.
	AcceptUnknownMembers bool

	// AllowUnrecognizedEnums tolerates literal values outside a closed
	// enumeration instead of rejecting them. Tolerated values are still
	// stored verbatim on the instance.
	AllowUnrecognizedEnums bool

	// Metrics, when non-nil, receives materialization counters.
	Metrics *Metrics
}

// DefaultOptions returns the default configuration: unknown members and
// unrecognized enumeration literals are rejected.
func DefaultOptions() *Options {
	return &Options{
		AcceptUnknownMembers:   false,
		AllowUnrecognizedEnums: false,
	}
}

// WithAcceptUnknownMembers controls whether unrecognized element names are
// tolerated (skipped) or rejected with a structural error.
func WithAcceptUnknownMembers(accept bool) Option {
	return func(o *Options) {
		o.AcceptUnknownMembers = accept
	}
}

// WithAllowUnrecognizedEnums controls whether literal values outside a
// closed enumeration are tolerated or rejected with a structural error.
func WithAllowUnrecognizedEnums(allow bool) Option {
	return func(o *Options) {
		o.AllowUnrecognizedEnums = allow
	}
}

// WithMetrics attaches a metrics collector to the materializer.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}
