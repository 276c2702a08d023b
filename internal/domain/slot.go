package domain

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// BookableSlot represents a free time slot derived from the consultant's
// schedule. Slots are never persisted: they are recomputed on every request,
// so schedule or settings changes take effect immediately.
type BookableSlot struct {
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// SlotHold is a time-bounded server-side reservation of a slot made while a
// client completes checkout. An unexpired hold blocks the interval for
// everyone except the holder presenting its token.
type SlotHold struct {
	ID              int64
	ConsultantID    int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	HolderToken     string
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// IsExpired reports whether the hold no longer blocks its interval.
func (h *SlotHold) IsExpired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// EndTime returns the exclusive end of the held interval.
func (h *SlotHold) EndTime() (types.TimeString, error) {
	return h.StartTime.AddMinutes(h.DurationMinutes)
}
