// Package availability implements slot derivation and conflict detection as
// pure functions. Both the schedule preview path and the booking confirmation
// path call into this package, so the two can never drift apart.
//
// All arithmetic is wall-clock HH:MM in the consultant's configured timezone;
// no timezone conversion happens here.
package availability

import (
	"fmt"
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// maxSlotsPerRange bounds the cursor walk so a pathological configuration
// cannot loop forever. Input validation rejects non-positive durations before
// this cap can matter.
const maxSlotsPerRange = 1000

// Interval is a half-open [Start, End) occupied interval.
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps reports whether two half-open intervals intersect.
// Adjacent intervals (one ending exactly where the other starts) do not
// overlap: the test uses strict inequalities on both sides.
func Overlaps(a, b Interval) bool {
	return a.Start.IsBefore(b.End) && b.Start.IsBefore(a.End)
}

// GenerateSlots derives the ordered bookable slots for date from the day's
// working configuration and the session settings.
//
// Within every range, a cursor starts at the range start and advances by
// duration+buffer; a slot is emitted only if it fits entirely inside the
// range, so partial tail slots are discarded rather than truncated. Ranges
// are processed start-ascending and their slots concatenated without a
// re-sort merge, which is sound because validated ranges never overlap.
//
// A disabled day, an empty range list, or a duration longer than every range
// all yield zero slots, not an error.
func GenerateSlots(day domain.DaySchedule, settings domain.SessionSettings, date time.Time) ([]domain.BookableSlot, error) {
	if settings.DefaultDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: defaultDurationMinutes must be positive", domain.ErrInvalidConfiguration)
	}
	if settings.BufferMinutes < 0 {
		return nil, fmt.Errorf("%w: bufferMinutes must not be negative", domain.ErrInvalidConfiguration)
	}

	slots := make([]domain.BookableSlot, 0)
	if !day.Enabled || len(day.Ranges) == 0 {
		return slots, nil
	}

	step := settings.DefaultDurationMinutes + settings.BufferMinutes

	for _, r := range day.SortedRanges() {
		if err := r.Validate(); err != nil {
			return nil, err
		}

		cursor := r.Start
		for i := 0; i < maxSlotsPerRange; i++ {
			end, err := cursor.AddMinutes(settings.DefaultDurationMinutes)
			if err != nil {
				// Прошли за полночь - слот заведомо не помещается
				break
			}
			if end.IsAfter(r.End) {
				break
			}

			slots = append(slots, domain.BookableSlot{
				Date:            date,
				StartTime:       cursor,
				EndTime:         end,
				DurationMinutes: settings.DefaultDurationMinutes,
			})

			cursor, err = cursor.AddMinutes(step)
			if err != nil {
				break
			}
		}
	}

	return slots, nil
}

// FilterAvailable removes every slot whose [start, end) interval intersects
// any of the busy intervals, preserving the original order. This is the
// single conflict-detection primitive: display paths and the server-side
// confirmation path both go through it.
func FilterAvailable(slots []domain.BookableSlot, busy []Interval) []domain.BookableSlot {
	if len(busy) == 0 {
		out := make([]domain.BookableSlot, len(slots))
		copy(out, slots)
		return out
	}

	out := make([]domain.BookableSlot, 0, len(slots))
	for _, slot := range slots {
		candidate := Interval{Start: slot.StartTime, End: slot.EndTime}
		blocked := false
		for _, b := range busy {
			if Overlaps(candidate, b) {
				blocked = true
				break
			}
		}
		if !blocked {
			out = append(out, slot)
		}
	}
	return out
}

// IntervalsFromAppointments converts active appointments into busy intervals.
// Completed and cancelled appointments release their interval and are
// skipped.
func IntervalsFromAppointments(appointments []*domain.Appointment) []Interval {
	busy := make([]Interval, 0, len(appointments))
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		end, err := a.EndTime()
		if err != nil {
			continue
		}
		busy = append(busy, Interval{Start: a.StartTime, End: end})
	}
	return busy
}

// IntervalsFromHolds converts unexpired slot holds into busy intervals.
// A hold whose token equals excludeToken belongs to the caller and does not
// block them.
func IntervalsFromHolds(holds []*domain.SlotHold, now time.Time, excludeToken string) []Interval {
	busy := make([]Interval, 0, len(holds))
	for _, h := range holds {
		if h.IsExpired(now) {
			continue
		}
		if excludeToken != "" && h.HolderToken == excludeToken {
			continue
		}
		end, err := h.EndTime()
		if err != nil {
			continue
		}
		busy = append(busy, Interval{Start: h.StartTime, End: end})
	}
	return busy
}
