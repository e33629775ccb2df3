package domain

import (
	"encoding/json"
	"time"
)

// DateLayout is the ISO layout used for release dates in every output.
const DateLayout = "2006-01-02"

// Date is a calendar date that may be null (the NaT marker of the dataset).
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate builds a valid date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// Earliest and latest midnights a nanosecond timestamp can hold.
var (
	MinDate = NewDate(1677, time.September, 22)
	MaxDate = NewDate(2262, time.April, 11)
)

// CalendarDate returns the date year-month-day, or the null date when the
// combination does not exist (month 13, April 31) or lies outside
// [MinDate, MaxDate].
func CalendarDate(year, month, day int) Date {
	if month < 1 || month > 12 || day < 1 {
		return NullDate()
	}
	d := NewDate(year, time.Month(month), day)
	if d.Time.Day() != day {
		return NullDate()
	}
	if d.Time.Before(MinDate.Time) || d.Time.After(MaxDate.Time) {
		return NullDate()
	}
	return d
}

// NullDate returns the null date.
func NullDate() Date {
	return Date{}
}

// String returns YYYY-MM-DD, or "" for the null date.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// Before orders null dates after every valid date.
func (d Date) Before(other Date) bool {
	switch {
	case !d.Valid:
		return false
	case !other.Valid:
		return true
	default:
		return d.Time.Before(other.Time)
	}
}

// MarshalJSON encodes the null date as JSON null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}
