package primitive

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Precision is the precision carried by a partial date or date/time value.
type Precision int

// Precision levels, coarsest first.
const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionSecond
)

var (
	dateRe = regexp.MustCompile(`^(\d{4})(?:-(\d{2})(?:-(\d{2}))?)?$`)
	timeRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,9}))?$`)
	zoneRe = regexp.MustCompile(`^(Z|[+-]\d{2}:\d{2})$`)
)

// Date is the FHIR date primitive: a calendar date with year, year-month,
// or full precision. Values of different precision are never equal and
// order only when they disagree within the shared prefix.
type Date struct {
	year, month, day int
	prec             Precision
}

// Precision returns the value's precision.
func (d Date) Precision() Precision { return d.prec }

func (d Date) String() string {
	switch d.prec {
	case PrecisionYear:
		return fmt.Sprintf("%04d", d.year)
	case PrecisionMonth:
		return fmt.Sprintf("%04d-%02d", d.year, d.month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
	}
}

// Equal implements Value.
func (d Date) Equal(other Value) bool {
	o, ok := other.(Date)
	return ok && d == o
}

// Cmp implements Ordered. Dates of different precision that agree on the
// shared prefix have no defined ordering.
func (d Date) Cmp(other Value) (int, bool) {
	o, ok := other.(Date)
	if !ok {
		return 0, false
	}
	if c := cmpInt(d.year, o.year); c != 0 {
		return c, true
	}
	if d.prec == PrecisionYear || o.prec == PrecisionYear {
		if d.prec == o.prec {
			return 0, true
		}
		return 0, false
	}
	if c := cmpInt(d.month, o.month); c != 0 {
		return c, true
	}
	if d.prec == PrecisionMonth || o.prec == PrecisionMonth {
		if d.prec == o.prec {
			return 0, true
		}
		return 0, false
	}
	return cmpInt(d.day, o.day), true
}

// ParseDate parses YYYY, YYYY-MM, or YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("invalid date literal %q", s)
	}
	d := Date{prec: PrecisionYear}
	d.year, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		d.month, _ = strconv.Atoi(m[2])
		d.prec = PrecisionMonth
		if d.month < 1 || d.month > 12 {
			return Date{}, fmt.Errorf("invalid date literal %q", s)
		}
	}
	if m[3] != "" {
		d.day, _ = strconv.Atoi(m[3])
		d.prec = PrecisionDay
		// Round-trip through time.Date to reject e.g. February 30.
		t := time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
		if t.Day() != d.day || int(t.Month()) != d.month {
			return Date{}, fmt.Errorf("invalid date literal %q", s)
		}
	}
	return d, nil
}

// Time is the FHIR time primitive: a time of day without a date or zone.
// Fractional seconds compare numerically, so "10:00:00.0" equals
// "10:00:00".
type Time struct {
	hour, minute, second int
	nanos                int
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	if t.nanos != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%09d", t.nanos), "0")
	}
	return s
}

// Equal implements Value.
func (t Time) Equal(other Value) bool {
	o, ok := other.(Time)
	return ok && t == o
}

// Cmp implements Ordered.
func (t Time) Cmp(other Value) (int, bool) {
	o, ok := other.(Time)
	if !ok {
		return 0, false
	}
	return cmpInt(t.totalNanos(), o.totalNanos()), true
}

func (t Time) totalNanos() int {
	return ((t.hour*60+t.minute)*60+t.second)*1e9 + t.nanos
}

// ParseTime parses hh:mm:ss with optional fractional seconds.
func ParseTime(s string) (Time, error) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return Time{}, fmt.Errorf("invalid time literal %q", s)
	}
	var t Time
	t.hour, _ = strconv.Atoi(m[1])
	t.minute, _ = strconv.Atoi(m[2])
	t.second, _ = strconv.Atoi(m[3])
	if t.hour > 23 || t.minute > 59 || t.second > 59 {
		return Time{}, fmt.Errorf("invalid time literal %q", s)
	}
	if m[4] != "" {
		frac := m[4] + strings.Repeat("0", 9-len(m[4]))
		t.nanos, _ = strconv.Atoi(frac)
	}
	return t, nil
}

// DateTime is the FHIR dateTime and instant primitive. A value is either a
// partial date (no time component) or a fully specified instant with a
// zone offset; the wire grammar does not allow a time without a full date
// and offset.
type DateTime struct {
	date    Date
	hasTime bool
	instant time.Time // valid only when hasTime
}

// Precision returns the date precision; values with a time component
// report PrecisionSecond.
func (dt DateTime) Precision() Precision {
	if dt.hasTime {
		return PrecisionSecond
	}
	return dt.date.prec
}

// HasTime reports whether the value carries a time component.
func (dt DateTime) HasTime() bool { return dt.hasTime }

// Instant returns the underlying instant for values with a time component.
func (dt DateTime) Instant() (time.Time, bool) { return dt.instant, dt.hasTime }

func (dt DateTime) String() string {
	if !dt.hasTime {
		return dt.date.String()
	}
	return dt.instant.Format("2006-01-02T15:04:05.999999999Z07:00")
}

// Equal implements Value. Instants compare on the timeline, so offsets
// that denote the same moment are equal; values of different precision
// are not.
func (dt DateTime) Equal(other Value) bool {
	o, ok := other.(DateTime)
	if !ok || dt.hasTime != o.hasTime {
		return false
	}
	if dt.hasTime {
		return dt.instant.Equal(o.instant)
	}
	return dt.date == o.date
}

// Cmp implements Ordered.
func (dt DateTime) Cmp(other Value) (int, bool) {
	o, ok := other.(DateTime)
	if !ok {
		return 0, false
	}
	if dt.hasTime && o.hasTime {
		switch {
		case dt.instant.Before(o.instant):
			return -1, true
		case dt.instant.After(o.instant):
			return 1, true
		}
		return 0, true
	}
	if !dt.hasTime && !o.hasTime {
		return dt.date.Cmp(o.date)
	}
	// One side is a partial date: order only when the date components
	// already disagree.
	a, b := dt.datePart(), o.datePart()
	if c, ok := a.Cmp(b); ok && c != 0 {
		return c, true
	}
	return 0, false
}

func (dt DateTime) datePart() Date {
	if !dt.hasTime {
		return dt.date
	}
	y, m, d := dt.instant.Date()
	return Date{year: y, month: int(m), day: d, prec: PrecisionDay}
}

// ParseDateTime parses a FHIR dateTime: YYYY, YYYY-MM, YYYY-MM-DD, or a
// full YYYY-MM-DDThh:mm:ss(.sss)?(Z|±hh:mm).
func ParseDateTime(s string) (DateTime, error) {
	ti, rest, found := strings.Cut(s, "T")
	if !found {
		d, err := ParseDate(s)
		if err != nil {
			return DateTime{}, fmt.Errorf("invalid dateTime literal %q", s)
		}
		return DateTime{date: d}, nil
	}

	d, err := ParseDate(ti)
	if err != nil || d.prec != PrecisionDay {
		return DateTime{}, fmt.Errorf("invalid dateTime literal %q", s)
	}

	// Split the zone suffix off the time-of-day part.
	zoneIdx := strings.IndexAny(rest, "Z+-")
	if zoneIdx < 0 {
		return DateTime{}, fmt.Errorf("invalid dateTime literal %q: missing zone offset", s)
	}
	tod, zone := rest[:zoneIdx], rest[zoneIdx:]
	if !zoneRe.MatchString(zone) {
		return DateTime{}, fmt.Errorf("invalid dateTime literal %q: bad zone offset", s)
	}
	t, err := ParseTime(tod)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid dateTime literal %q", s)
	}

	loc := time.UTC
	if zone != "Z" {
		sign := 1
		if zone[0] == '-' {
			sign = -1
		}
		hh, _ := strconv.Atoi(zone[1:3])
		mm, _ := strconv.Atoi(zone[4:6])
		loc = time.FixedZone(zone, sign*(hh*3600+mm*60))
	}

	return DateTime{
		date:    d,
		hasTime: true,
		instant: time.Date(d.year, time.Month(d.month), d.day,
			t.hour, t.minute, t.second, t.nanos, loc),
	}, nil
}

// ParseInstant parses a FHIR instant, which requires a time component.
func ParseInstant(s string) (DateTime, error) {
	dt, err := ParseDateTime(s)
	if err != nil {
		return DateTime{}, err
	}
	if !dt.hasTime {
		return DateTime{}, fmt.Errorf("invalid instant literal %q: time component required", s)
	}
	return dt, nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
