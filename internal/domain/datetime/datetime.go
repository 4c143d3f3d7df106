// Package datetime implements the wire format used for all timestamps in the
// API: "yyyy-MM-dd HH:mm:ss", without a timezone designator.
package datetime

import (
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02 15:04:05"

// DateTime is a time.Time that marshals to and from the API wire format.
type DateTime time.Time

func (d DateTime) Time() time.Time {
	return time.Time(d)
}

func (d DateTime) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d DateTime) String() string {
	return time.Time(d).Format(Layout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(Layout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*d = DateTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse(Layout, raw)
	if err != nil {
		return fmt.Errorf("parse datetime %q: %w", raw, err)
	}
	*d = DateTime(parsed)
	return nil
}

// Parse decodes a wire-format timestamp from a query parameter.
func Parse(value string) (time.Time, error) {
	parsed, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse datetime %q: %w", value, err)
	}
	return parsed, nil
}

// FromTime wraps a time.Time, truncating sub-second precision the wire format
// cannot carry.
func FromTime(t time.Time) DateTime {
	return DateTime(t.Truncate(time.Second))
}

// FromTimePtr wraps an optional time.Time.
func FromTimePtr(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	value := FromTime(*t)
	return &value
}
