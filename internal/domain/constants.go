package domain

// Default session parameters applied when a consultant has not saved
// settings yet.
const (
	DefaultSessionDurationMinutes = 60
	DefaultBufferMinutes          = 0
	DefaultMaxSessionsPerDay      = 8
)

// Business validation bounds
const (
	MaxSessionDurationMinutes = 480 // 8 hours
	MaxBufferMinutes          = 240 // 4 hours
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих временной интервал
var ActiveStatuses = []AppointmentStatus{
	StatusUpcoming,
	StatusConfirmed,
}

// InactiveStatuses список статусов, освобождающих временной интервал
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}
