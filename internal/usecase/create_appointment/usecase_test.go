package create_appointment

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

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	created := *a
	created.ID = 101
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByConsultantWithFilter(_ context.Context, _ domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	schedule *domain.ConsultantSchedule
	err      error
}

func (f *fakeScheduleRepo) GetByConsultantID(_ context.Context, _ int64) (*domain.ConsultantSchedule, error) {
	return f.schedule, f.err
}

type fakeHoldRepo struct {
	holds        []*domain.SlotHold
	deletedToken string
}

func (f *fakeHoldRepo) GetActiveByConsultantAndDate(_ context.Context, _ int64, _ time.Time, _ time.Time) ([]*domain.SlotHold, error) {
	return f.holds, nil
}

func (f *fakeHoldRepo) DeleteByToken(_ context.Context, token string) error {
	f.deletedToken = token
	return nil
}

type fakeDirectoryClient struct {
	consultant    *directory.Consultant
	client        *directory.ClientProfile
	consultantErr error
	clientErr     error
}

func (f *fakeDirectoryClient) GetConsultant(_ context.Context, _ int64) (*directory.Consultant, error) {
	return f.consultant, f.consultantErr
}

func (f *fakeDirectoryClient) GetClientProfile(_ context.Context, _ int64) (*directory.ClientProfile, error) {
	return f.client, f.clientErr
}

// inlineTxManager выполняет fn без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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

func testDirectory() *fakeDirectoryClient {
	return &fakeDirectoryClient{
		consultant: &directory.Consultant{ID: 7, DisplayName: "Анна Петрова", Timezone: "Europe/Moscow"},
		client:     &directory.ClientProfile{ID: 42, DisplayName: "Иван Сидоров"},
	}
}

func newTestUseCase(
	appointments *fakeAppointmentRepo,
	schedules *fakeScheduleRepo,
	holds *fakeHoldRepo,
	dir *fakeDirectoryClient,
) *UseCase {
	return NewUseCase(appointments, schedules, holds, dir, inlineTxManager{}, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeHoldRepo{}, testDirectory())

	resp, err := uc.Execute(context.Background(), &Request{
		ConsultantID: 7,
		ClientID:     42,
		Date:         testDate,
		StartTime:    "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusUpcoming), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)

	// Имена денормализуются из справочника
	require.NotNil(t, appointments.created)
	assert.Equal(t, "Анна Петрова", appointments.created.ConsultantName)
	assert.Equal(t, "Иван Сидоров", appointments.created.ClientName)
}

func TestExecute_SlotTakenByActiveAppointment(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ConsultantID: 7, Date: testDate, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusUpcoming},
	}}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeHoldRepo{}, testDirectory())

	_, err := uc.Execute(context.Background(), &Request{
		ConsultantID: 7,
		ClientID:     42,
		Date:         testDate,
		StartTime:    "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, appointments.created)
}

func TestExecute_SlotTakenByForeignHold(t *testing.T) {
	holds := &fakeHoldRepo{holds: []*domain.SlotHold{
		{
			ConsultantID:    7,
			Date:            testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			HolderToken:     "someone-else",
			ExpiresAt:       time.Now().Add(5 * time.Minute),
		},
	}}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, holds, testDirectory())

	_, err := uc.Execute(context.Background(), &Request{
		ConsultantID: 7,
		ClientID:     42,
		Date:         testDate,
		StartTime:    "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_OwnHoldDoesNotBlockAndIsConsumed(t *testing.T) {
	holds := &fakeHoldRepo{holds: []*domain.SlotHold{
		{
			ConsultantID:    7,
			Date:            testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			HolderToken:     "my-token",
			ExpiresAt:       time.Now().Add(5 * time.Minute),
		},
	}}
	appointments := &fakeAppointmentRepo{}
	uc := newTestUseCase(appointments, &fakeScheduleRepo{schedule: mondaySchedule()}, holds, testDirectory())

	resp, err := uc.Execute(context.Background(), &Request{
		ConsultantID: 7,
		ClientID:     42,
		Date:         testDate,
		StartTime:    "10:00",
		HolderToken:  "my-token",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "my-token", holds.deletedToken)
}

func TestExecute_TimeOutsideGridRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeHoldRepo{}, testDirectory())

	// 10:30 не совпадает ни с одним началом слота сетки 09:00/10:00/11:00/12:00
	_, err := uc.Execute(context.Background(), &Request{
		ConsultantID: 7,
		ClientID:     42,
		Date:         testDate,
		StartTime:    "10:30",
	})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_ConsultantNotFound(t *testing.T) {
	dir := testDirectory()
	dir.consultant = nil
	dir.consultantErr = directory.ErrConsultantNotFound

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeHoldRepo{}, dir)

	_, err := uc.Execute(context.Background(), &Request{
		ConsultantID: 99,
		ClientID:     42,
		Date:         testDate,
		StartTime:    "10:00",
	})
	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{schedule: mondaySchedule()}, &fakeHoldRepo{}, testDirectory())

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero consultant", &Request{ClientID: 42, Date: testDate, StartTime: "10:00"}},
		{"zero client", &Request{ConsultantID: 7, Date: testDate, StartTime: "10:00"}},
		{"no date", &Request{ConsultantID: 7, ClientID: 42, StartTime: "10:00"}},
		{"no start time", &Request{ConsultantID: 7, ClientID: 42, Date: testDate}},
		{"bad start time", &Request{ConsultantID: 7, ClientID: 42, Date: testDate, StartTime: "25:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
