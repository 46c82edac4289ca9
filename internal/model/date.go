package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date. It is written as YYYY-MM-DD and accepts any of the
// ISO 8601 forms in dateLayouts when read.
type Date struct {
	time.Time
}

const dateFormat = "2006-01-02"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01",
	"2006",
}

// scanLayouts are the text forms SQL drivers hand back for date columns.
var scanLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseDate parses an ISO 8601 date or date-time and returns the UTC
// calendar date it falls on.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewDate(t), nil
		}
	}

	return Date{}, fmt.Errorf("cannot parse date: %q", s)
}

// NewDate truncates t to midnight UTC.
func NewDate(t time.Time) Date {
	u := t.UTC()
	return Date{Time: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.Time.Format(dateFormat)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date format (string expected): %w", err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(d.String())
}

// Value stores the date as a UTC midnight timestamp.
func (d Date) Value() (driver.Value, error) {
	return NewDate(d.Time).Time, nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		if parsed, err := ParseDate(v); err == nil {
			*d = parsed
			return nil
		}
		for _, layout := range scanLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				*d = NewDate(t)
				return nil
			}
		}
		return fmt.Errorf("cannot scan date: %q", v)
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}
