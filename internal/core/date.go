package core

import (
	"encoding/json"
	"strings"
	"time"
)

// Date wraps time.Time with tolerant ISO-8601 decoding. A missing or
// unparseable date decodes to the zero value; the engine skips such records
// instead of aborting an aggregation.
type Date struct {
	time.Time
}

// Accepted wire layouts, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 date string. Empty or malformed input yields
// the zero Date and ok=false.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, true
		}
	}
	return Date{}, false
}

// UnmarshalJSON never returns an error for bad dates; they become zero.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = Date{}
		return nil
	}
	parsed, _ := ParseDate(s)
	*d = parsed
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero value.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}

// Within reports whether the date falls inside [start, end], inclusive on
// both ends. Calendar days are compared, not instants.
func (d Date) Within(start, end Date) bool {
	if d.IsZero() {
		return false
	}
	day := d.dayStart()
	return !day.Before(start.dayStart()) && !day.After(end.dayStart())
}

// WeekOfMonth returns the 1-indexed week bucket: ceil(dayOfMonth/7).
// Week 5 holds days 29-31.
func (d Date) WeekOfMonth() int {
	return (d.Day() + 6) / 7
}

func (d Date) dayStart() time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
