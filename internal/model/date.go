package model

import (
	"fmt"
	"time"
)

// ISODate is the wire format for calendar dates (YYYY-MM-DD).
const ISODate = "2006-01-02"

// Date is a calendar date with day granularity and no time component.
// The zero value is "no date".
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero reports whether d is the zero ("no date") value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal reports whether two dates denote the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String returns the ISO representation.
func (d Date) String() string { return d.t.Format(ISODate) }

// MarshalJSON encodes the date as a quoted ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted ISO string. The server may include a
// time component on legacy rows; anything after the date part is ignored.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date JSON: %s", s)
	}
	s = s[1 : len(s)-1]
	if len(s) > len(ISODate) {
		s = s[:len(ISODate)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an optional inclusive start/end date pair. A nil bound
// means "unbounded" on that side. Ordering of the bounds is not checked
// here; the server is authoritative.
type DateRange struct {
	Start *Date
	End   *Date
}

// Label returns the bound's ISO date, or the sentinel "all" when the
// bound is unset. Used in export filenames.
func Label(d *Date) string {
	if d == nil {
		return "all"
	}
	return d.String()
}
