package model

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire and storage format for day-granularity dates.
const DateFormat = "2006-01-02"

// Date is a calendar date with day granularity. It marshals to and from
// "YYYY-MM-DD" JSON strings. Entity date fields (purchase date, sale date,
// transaction date) use Date; record creation timestamps stay time.Time.
type Date struct {
	time.Time
}

// NewDate creates a Date from a time, truncating to day granularity in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	return NewDate(time.Now().UTC())
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return Date{t.UTC()}, nil
}

// String returns the date in "YYYY-MM-DD" format.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
