package elementmodel

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.AcceptUnknownMembers {
		t.Error("AcceptUnknownMembers should default to false")
	}
	if o.AllowUnrecognizedEnums {
		t.Error("AllowUnrecognizedEnums should default to false")
	}
	if o.Metrics != nil {
		t.Error("Metrics should default to nil")
	}
}

func TestOptionsApply(t *testing.T) {
	m := NewMetrics()
	o := DefaultOptions()
	for _, opt := range []Option{
		WithAcceptUnknownMembers(true),
		WithAllowUnrecognizedEnums(true),
		WithMetrics(m),
	} {
		opt(o)
	}

	if !o.AcceptUnknownMembers || !o.AllowUnrecognizedEnums {
		t.Errorf("options not applied: %+v", o)
	}
	if o.Metrics != m {
		t.Error("metrics not attached")
	}
}
