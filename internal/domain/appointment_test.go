package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_EndTime(t *testing.T) {
	a := &Appointment{StartTime: "10:00", DurationMinutes: 90}

	end, err := a.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "11:30", end.String())
}

func TestAppointment_StateChecks(t *testing.T) {
	tests := []struct {
		status       AppointmentStatus
		active       bool
		terminal     bool
		canConfirm   bool
		canComplete  bool
		canCancel    bool
		canToNewTime bool
	}{
		{StatusUpcoming, true, false, true, false, true, true},
		{StatusConfirmed, true, false, false, true, true, true},
		{StatusCompleted, false, true, false, false, false, false},
		{StatusCancelled, false, true, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.active, a.IsActive())
			assert.Equal(t, tt.terminal, a.IsTerminal())
			assert.Equal(t, tt.canConfirm, a.CanBeConfirmed())
			assert.Equal(t, tt.canComplete, a.CanBeCompleted())
			assert.Equal(t, tt.canCancel, a.CanBeCancelled())
			assert.Equal(t, tt.canToNewTime, a.CanBeRescheduled())
		})
	}
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusUpcoming, StatusConfirmed, true},
		{StatusUpcoming, StatusCompleted, false},
		{StatusUpcoming, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, a.CanTransitionTo(tt.to))
		})
	}
}
