package create_slot_hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

type fakeHoldRepo struct {
	holds   []*domain.SlotHold
	created *domain.SlotHold
}

func (f *fakeHoldRepo) Create(_ context.Context, h *domain.SlotHold) (*domain.SlotHold, error) {
	created := *h
	created.ID = 11
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeHoldRepo) GetActiveByConsultantAndDate(_ context.Context, _ int64, _ time.Time, _ time.Time) ([]*domain.SlotHold, error) {
	return f.holds, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByConsultantWithFilter(_ context.Context, _ domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	schedule *domain.ConsultantSchedule
}

func (f *fakeScheduleRepo) GetByConsultantID(_ context.Context, _ int64) (*domain.ConsultantSchedule, error) {
	return f.schedule, nil
}

type fakeDirectoryClient struct {
	consultant *directory.Consultant
	err        error
}

func (f *fakeDirectoryClient) GetConsultant(_ context.Context, _ int64) (*directory.Consultant, error) {
	return f.consultant, f.err
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type fixedToken struct{ token string }

func (f *fixedToken) NewToken() string { return f.token }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-16 - понедельник
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func mondaySchedule() *domain.ConsultantSchedule {
	return &domain.ConsultantSchedule{
		ConsultantID: 7,
		Week: domain.WeekSchedule{
			Monday: domain.DaySchedule{
				Enabled: true,
				Ranges:  []domain.TimeRange{{Start: "09:00", End: "13:00"}},
			},
		},
		Settings: domain.SessionSettings{DefaultDurationMinutes: 60, BufferMinutes: 0, MaxSessionsPerDay: 8},
	}
}

func newTestUseCase(
	holds *fakeHoldRepo,
	appointments *fakeAppointmentRepo,
	schedules *fakeScheduleRepo,
	dir *fakeDirectoryClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(holds, appointments, schedules, dir, inlineTxManager{}, 5*time.Minute, nopLogger{})
	uc.timeProvider = &fixedTime{t: now}
	uc.tokenGenerator = &fixedToken{token: "generated-token"}
	return uc
}

func TestExecute_Success(t *testing.T) {
	now := testDate.Add(8 * time.Hour)
	holds := &fakeHoldRepo{}
	uc := newTestUseCase(
		holds,
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{schedule: mondaySchedule()},
		&fakeDirectoryClient{consultant: &directory.Consultant{ID: 7}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate, StartTime: "10:00"})
	require.NoError(t, err)

	assert.Equal(t, "generated-token", resp.HolderToken)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, now.Add(5*time.Minute), resp.ExpiresAt)

	require.NotNil(t, holds.created)
	assert.Equal(t, "generated-token", holds.created.HolderToken)
}

func TestExecute_SlotTakenByAppointment(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ConsultantID: 7, Date: testDate, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusUpcoming},
	}}
	holds := &fakeHoldRepo{}
	uc := newTestUseCase(
		holds,
		appointments,
		&fakeScheduleRepo{schedule: mondaySchedule()},
		&fakeDirectoryClient{consultant: &directory.Consultant{ID: 7}},
		testDate.Add(8*time.Hour),
	)

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, holds.created)
}

func TestExecute_SlotTakenByOtherHold(t *testing.T) {
	now := testDate.Add(8 * time.Hour)
	holds := &fakeHoldRepo{holds: []*domain.SlotHold{
		{
			ConsultantID:    7,
			Date:            testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			HolderToken:     "first-client",
			ExpiresAt:       now.Add(3 * time.Minute),
		},
	}}
	uc := newTestUseCase(
		holds,
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{schedule: mondaySchedule()},
		&fakeDirectoryClient{consultant: &directory.Consultant{ID: 7}},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ExpiredHoldDoesNotBlock(t *testing.T) {
	now := testDate.Add(8 * time.Hour)
	holds := &fakeHoldRepo{holds: []*domain.SlotHold{
		{
			ConsultantID:    7,
			Date:            testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			HolderToken:     "stale-client",
			ExpiresAt:       now.Add(-time.Second),
		},
	}}
	uc := newTestUseCase(
		holds,
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{schedule: mondaySchedule()},
		&fakeDirectoryClient{consultant: &directory.Consultant{ID: 7}},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate, StartTime: "10:00"})
	assert.NoError(t, err)
}

func TestExecute_TimeOutsideGridRejected(t *testing.T) {
	uc := newTestUseCase(
		&fakeHoldRepo{},
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{schedule: mondaySchedule()},
		&fakeDirectoryClient{consultant: &directory.Consultant{ID: 7}},
		testDate.Add(8*time.Hour),
	)

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 7, Date: testDate, StartTime: "10:45"})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_ConsultantNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeHoldRepo{},
		&fakeAppointmentRepo{},
		&fakeScheduleRepo{schedule: mondaySchedule()},
		&fakeDirectoryClient{err: directory.ErrConsultantNotFound},
		testDate,
	)

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 99, Date: testDate, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrConsultantNotFound)
}
