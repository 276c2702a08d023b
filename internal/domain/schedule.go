package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// ErrInvalidConfiguration returned for malformed schedules or session
// settings. Persistence is refused while this error holds.
var ErrInvalidConfiguration = errors.New("domain: invalid schedule configuration")

// TimeRange is a half-open [Start, End) working interval within one day.
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Validate checks the HH:MM shape and the start < end invariant.
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: range start: %v", ErrInvalidConfiguration, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: range end: %v", ErrInvalidConfiguration, err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: range start %s must be before end %s", ErrInvalidConfiguration, r.Start, r.End)
	}
	return nil
}

// SpanMinutes returns the range length in minutes.
func (r TimeRange) SpanMinutes() int {
	start, err := r.Start.Minutes()
	if err != nil {
		return 0
	}
	end, err := r.End.Minutes()
	if err != nil {
		return 0
	}
	return end - start
}

// DaySchedule is the working configuration for one weekday.
// Ranges may arrive in any order; SortedRanges yields them start-ascending.
type DaySchedule struct {
	Enabled bool        `json:"enabled"`
	Ranges  []TimeRange `json:"ranges"`
}

// SortedRanges returns the ranges ordered by start time.
func (d DaySchedule) SortedRanges() []TimeRange {
	ranges := make([]TimeRange, len(d.Ranges))
	copy(ranges, d.Ranges)
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start.IsBefore(ranges[j].Start)
	})
	return ranges
}

// Validate checks every range and the intra-day non-overlap invariant.
func (d DaySchedule) Validate() error {
	for _, r := range d.Ranges {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	sorted := d.SortedRanges()
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start.IsBefore(sorted[i-1].End) {
			return fmt.Errorf("%w: ranges %s-%s and %s-%s overlap",
				ErrInvalidConfiguration,
				sorted[i-1].Start, sorted[i-1].End,
				sorted[i].Start, sorted[i].End)
		}
	}
	return nil
}

// WeekSchedule maps every weekday to its working configuration.
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DayFor returns the schedule of the weekday that date falls on.
func (w WeekSchedule) DayFor(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Days returns all seven day schedules keyed by weekday name.
func (w WeekSchedule) Days() map[string]DaySchedule {
	return map[string]DaySchedule{
		"monday":    w.Monday,
		"tuesday":   w.Tuesday,
		"wednesday": w.Wednesday,
		"thursday":  w.Thursday,
		"friday":    w.Friday,
		"saturday":  w.Saturday,
		"sunday":    w.Sunday,
	}
}

// Validate checks every day of the week.
func (w WeekSchedule) Validate() error {
	for name, day := range w.Days() {
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%v (%s)", err, name)
		}
	}
	return nil
}

// SessionSettings holds the consultant's session parameters.
// MaxSessionsPerDay is collected and validated but not enforced by slot
// generation or booking confirmation.
type SessionSettings struct {
	DefaultDurationMinutes int `json:"defaultDurationMinutes"`
	BufferMinutes          int `json:"bufferMinutes"`
	MaxSessionsPerDay      int `json:"maxSessionsPerDay"`
}

// Validate checks the session parameter invariants.
func (s SessionSettings) Validate() error {
	if s.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("%w: defaultDurationMinutes must be positive", ErrInvalidConfiguration)
	}
	if s.DefaultDurationMinutes > MaxSessionDurationMinutes {
		return fmt.Errorf("%w: defaultDurationMinutes must not exceed %d", ErrInvalidConfiguration, MaxSessionDurationMinutes)
	}
	if s.BufferMinutes < 0 {
		return fmt.Errorf("%w: bufferMinutes must not be negative", ErrInvalidConfiguration)
	}
	if s.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must not exceed %d", ErrInvalidConfiguration, MaxBufferMinutes)
	}
	if s.MaxSessionsPerDay <= 0 {
		return fmt.Errorf("%w: maxSessionsPerDay must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// ConsultantSchedule is the full availability document of one consultant.
type ConsultantSchedule struct {
	ConsultantID int64
	Week         WeekSchedule
	Settings     SessionSettings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the week configuration and the session settings together.
func (s *ConsultantSchedule) Validate() error {
	if err := s.Week.Validate(); err != nil {
		return err
	}
	return s.Settings.Validate()
}
