package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	appointmentRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/appointment"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

type fakeAppointmentRepo struct {
	byID         map[int64]*domain.Appointment
	onDate       []*domain.Appointment
	rescheduled  *domain.Appointment
	rescheduleID int64
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeAppointmentRepo) GetByConsultantWithFilter(_ context.Context, _ domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.onDate, nil
}

func (f *fakeAppointmentRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime types.TimeString, durationMinutes int) (*domain.Appointment, error) {
	base := *f.byID[id]
	base.Date = date
	base.StartTime = startTime
	base.DurationMinutes = durationMinutes
	base.Status = domain.StatusUpcoming
	base.UpdatedAt = time.Now()
	f.rescheduled = &base
	f.rescheduleID = id
	return &base, nil
}

type fakeScheduleRepo struct {
	schedule *domain.ConsultantSchedule
}

func (f *fakeScheduleRepo) GetByConsultantID(_ context.Context, _ int64) (*domain.ConsultantSchedule, error) {
	return f.schedule, nil
}

type fakeHoldRepo struct {
	holds []*domain.SlotHold
}

func (f *fakeHoldRepo) GetActiveByConsultantAndDate(_ context.Context, _ int64, _ time.Time, _ time.Time) ([]*domain.SlotHold, error) {
	return f.holds, nil
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-16 - понедельник, 2026-03-18 - среда
var (
	oldDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	newDate = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
)

func weekSchedule() *domain.ConsultantSchedule {
	workDay := domain.DaySchedule{
		Enabled: true,
		Ranges:  []domain.TimeRange{{Start: "09:00", End: "13:00"}},
	}
	return &domain.ConsultantSchedule{
		ConsultantID: 7,
		Week:         domain.WeekSchedule{Monday: workDay, Wednesday: workDay},
		Settings:     domain.SessionSettings{DefaultDurationMinutes: 60, BufferMinutes: 0, MaxSessionsPerDay: 8},
	}
}

func confirmedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              55,
		ConsultantID:    7,
		ClientID:        42,
		Date:            oldDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(appointments *fakeAppointmentRepo, schedules *fakeScheduleRepo, holds *fakeHoldRepo) *UseCase {
	return NewUseCase(appointments, schedules, holds, inlineTxManager{}, nopLogger{})
}

func TestExecute_SuccessResetsStatusToUpcoming(t *testing.T) {
	appointment := confirmedAppointment()
	appointments := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{55: appointment}}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: weekSchedule()}, &fakeHoldRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 55,
		UserID:        42,
		NewDate:       newDate,
		NewStartTime:  "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(55), resp.ID)
	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, types.TimeString("11:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.EndTime)
	// Подтверждённая встреча после переноса снова ждёт подтверждения
	assert.Equal(t, string(domain.StatusUpcoming), resp.Status)
	assert.Equal(t, int64(55), appointments.rescheduleID)
}

func TestExecute_ConsultantCanReschedule(t *testing.T) {
	appointments := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{55: confirmedAppointment()}}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: weekSchedule()}, &fakeHoldRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 55,
		UserID:        7, // консультант встречи
		NewDate:       newDate,
		NewStartTime:  "09:00",
	})
	assert.NoError(t, err)
}

func TestExecute_TerminalStatusRefusedWithoutMutation(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			appointment := confirmedAppointment()
			appointment.Status = status
			appointments := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{55: appointment}}
			uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: weekSchedule()}, &fakeHoldRepo{})

			_, err := uc.Execute(context.Background(), &Request{
				AppointmentID: 55,
				UserID:        42,
				NewDate:       newDate,
				NewStartTime:  "11:00",
			})
			assert.ErrorIs(t, err, ErrInvalidState)
			assert.Nil(t, appointments.rescheduled)
			assert.Equal(t, status, appointment.Status)
		})
	}
}

func TestExecute_NewSlotTakenByAnotherAppointment(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{55: confirmedAppointment()},
		onDate: []*domain.Appointment{
			{ID: 77, ConsultantID: 7, Date: newDate, StartTime: "11:00", DurationMinutes: 60, Status: domain.StatusUpcoming},
		},
	}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: weekSchedule()}, &fakeHoldRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 55,
		UserID:        42,
		NewDate:       newDate,
		NewStartTime:  "11:00",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, appointments.rescheduled)
}

func TestExecute_OwnIntervalDoesNotConflict(t *testing.T) {
	// Перенос на тот же день: собственный интервал встречи не считается занятым
	appointment := confirmedAppointment()
	appointments := &fakeAppointmentRepo{
		byID:   map[int64]*domain.Appointment{55: appointment},
		onDate: []*domain.Appointment{appointment},
	}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: weekSchedule()}, &fakeHoldRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 55,
		UserID:        42,
		NewDate:       oldDate,
		NewStartTime:  "10:00",
	})
	assert.NoError(t, err)
}

func TestExecute_NotAParticipant(t *testing.T) {
	appointments := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{55: confirmedAppointment()}}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: weekSchedule()}, &fakeHoldRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 55,
		UserID:        999,
		NewDate:       newDate,
		NewStartTime:  "11:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	appointments := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{}}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: weekSchedule()}, &fakeHoldRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 404,
		UserID:        42,
		NewDate:       newDate,
		NewStartTime:  "11:00",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_NewTimeOutsideGrid(t *testing.T) {
	appointments := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{55: confirmedAppointment()}}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: weekSchedule()}, &fakeHoldRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 55,
		UserID:        42,
		NewDate:       newDate,
		NewStartTime:  "11:30",
	})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}
