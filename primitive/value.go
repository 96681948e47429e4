package primitive

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Value is an immutable scalar with FHIR-defined equality.
// Implementations must not fall back to host-default equality; numeric and
// date/time values compare by domain semantics, not bit representation.
type Value interface {
	fmt.Stringer

	// Equal reports whether the other value is equal under FHIR rules.
	Equal(other Value) bool
}

// Ordered is implemented by values with a defined ordering.
type Ordered interface {
	Value

	// Cmp returns -1, 0, or 1. The second result is false when the two
	// values have no defined ordering (e.g. date/time values whose
	// precisions differ but agree on the shared prefix).
	Cmp(other Value) (int, bool)
}

// Boolean is the FHIR boolean primitive.
type Boolean bool

// Bool returns the host boolean.
func (b Boolean) Bool() bool { return bool(b) }

func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

// Equal implements Value.
func (b Boolean) Equal(other Value) bool {
	o, ok := other.(Boolean)
	return ok && b == o
}

// ParseBoolean parses the FHIR literals "true" and "false".
func ParseBoolean(s string) (Boolean, error) {
	switch s {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	}
	return false, fmt.Errorf("invalid boolean literal %q", s)
}

// String is the FHIR string primitive. It also carries the string-shaped
// primitives (uri, url, canonical, code, id, oid, uuid, markdown,
// base64Binary, xhtml), which share string equality.
type String string

func (s String) String() string { return string(s) }

// Equal implements Value.
func (s String) Equal(other Value) bool {
	o, ok := other.(String)
	return ok && s == o
}

// Cmp implements Ordered using lexical ordering.
func (s String) Cmp(other Value) (int, bool) {
	o, ok := other.(String)
	if !ok {
		return 0, false
	}
	switch {
	case s < o:
		return -1, true
	case s > o:
		return 1, true
	}
	return 0, true
}

// Integer is the FHIR integer primitive. It also represents integer64,
// unsignedInt, and positiveInt; the bounds are enforced at parse time and
// the bounded types convert to a plain integer.
type Integer int64

// Int64 returns the host integer.
func (i Integer) Int64() int64 { return int64(i) }

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Equal implements Value. An Integer equals a Decimal when they are
// numerically equal.
func (i Integer) Equal(other Value) bool {
	switch o := other.(type) {
	case Integer:
		return i == o
	case Decimal:
		return o.dec.Equal(decimal.NewFromInt(int64(i)))
	}
	return false
}

// Cmp implements Ordered. Integers order against both Integer and Decimal.
func (i Integer) Cmp(other Value) (int, bool) {
	switch o := other.(type) {
	case Integer:
		switch {
		case i < o:
			return -1, true
		case i > o:
			return 1, true
		}
		return 0, true
	case Decimal:
		return decimal.NewFromInt(int64(i)).Cmp(o.dec), true
	}
	return 0, false
}

// ParseInteger parses an integer literal, enforcing the bounds of the given
// FHIR type code (integer, integer64, unsignedInt, positiveInt).
func ParseInteger(typeCode, s string) (Integer, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s literal %q", typeCode, s)
	}
	switch typeCode {
	case "integer":
		if v < -2147483648 || v > 2147483647 {
			return 0, fmt.Errorf("%s literal %q out of range", typeCode, s)
		}
	case "unsignedInt":
		if v < 0 {
			return 0, fmt.Errorf("%s literal %q out of range", typeCode, s)
		}
	case "positiveInt":
		if v < 1 {
			return 0, fmt.Errorf("%s literal %q out of range", typeCode, s)
		}
	}
	return Integer(v), nil
}

// Decimal is the FHIR decimal primitive, backed by arbitrary-precision
// arithmetic. Equality is numeric: "0.010" equals "0.01".
type Decimal struct {
	dec decimal.Decimal
}

// NewDecimal wraps a decimal.Decimal.
func NewDecimal(d decimal.Decimal) Decimal { return Decimal{dec: d} }

// DecimalFromFloat converts a host float.
func DecimalFromFloat(f float64) Decimal { return Decimal{dec: decimal.NewFromFloat(f)} }

// Decimal returns the underlying decimal.Decimal.
func (d Decimal) Decimal() decimal.Decimal { return d.dec }

func (d Decimal) String() string { return d.dec.String() }

// Equal implements Value. A Decimal equals an Integer when they are
// numerically equal.
func (d Decimal) Equal(other Value) bool {
	switch o := other.(type) {
	case Decimal:
		return d.dec.Equal(o.dec)
	case Integer:
		return d.dec.Equal(decimal.NewFromInt(int64(o)))
	}
	return false
}

// Cmp implements Ordered.
func (d Decimal) Cmp(other Value) (int, bool) {
	switch o := other.(type) {
	case Decimal:
		return d.dec.Cmp(o.dec), true
	case Integer:
		return d.dec.Cmp(decimal.NewFromInt(int64(o))), true
	}
	return 0, false
}

// ParseDecimal parses a decimal literal, preserving its precision.
func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal literal %q", s)
	}
	return Decimal{dec: d}, nil
}
