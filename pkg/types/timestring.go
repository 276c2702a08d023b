package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString returned when the value is not a valid HH:MM string
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange returned when minute arithmetic leaves the 00:00-24:00 day window
	ErrTimeOutOfRange = errors.New("types: time is out of day range")
)

// TimeString is a wall-clock time of day in "HH:MM" form.
// It deliberately carries no date and no timezone: all slot arithmetic in the
// service is local to the consultant's configured timezone, and callers align
// timezones upstream.
//
// "24:00" is accepted as an exclusive end-of-day bound (e.g. the end of a
// working range), but never as a start time.
type TimeString string

// NewTimeString creates a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String returns the raw "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the "HH:MM" shape and range.
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes returns the value as minutes since midnight (0..1440).
func (t TimeString) Minutes() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	h, err := twoDigits(s[0], s[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	m, err := twoDigits(s[3], s[4])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	total := h*60 + m
	if h > 24 || m > 59 || total > minutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return total, nil
}

// AddMinutes returns the time shifted forward by m minutes.
// Fails with ErrTimeOutOfRange if the result would pass midnight.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	cur, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := cur + m
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s + %dm", ErrTimeOutOfRange, t, m)
	}
	return fromMinutes(total), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Comparison is lexicographic, which is exact for zero-padded HH:MM values.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value implements driver.Valuer, storing the value as text.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive either as text
// or as time.Time depending on the driver version.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME columns come back as "HH:MM:SS", trim the seconds
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func fromMinutes(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}

func twoDigits(a, b byte) (int, error) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, ErrInvalidTimeString
	}
	return int(a-'0')*10 + int(b-'0'), nil
}
