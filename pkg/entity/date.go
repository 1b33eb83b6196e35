package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LayoutISO is the wire and display layout of a calendar Date.
const LayoutISO = "2006-01-02"

// Date is a calendar day. The embedded time is always midnight UTC so two
// Dates for the same day compare equal with ==.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day, normalising
// overflow the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses "2006-01-02". Full RFC3339 timestamps are accepted and
// truncated to their date part.
func ParseDate(v string) (Date, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(LayoutISO, v); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return Date{}, fmt.Errorf("entity: invalid date %q, expected YYYY-MM-DD", v)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals; it panics on error.
func MustParseDate(v string) Date {
	d, err := ParseDate(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year(), d.Month(), d.Day()+n)
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// LastOfMonth returns the last day of d's month.
func (d Date) LastOfMonth() Date {
	return NewDate(d.Year(), d.Month()+1, 0)
}

// SameMonth reports whether both dates fall in the same month of the same year.
func (d Date) SameMonth(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(LayoutISO)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := ParseDate(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
