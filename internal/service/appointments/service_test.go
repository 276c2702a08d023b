package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	appointmentRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/appointment"
	"github.com/vkarpovs/CBP-BookingService/internal/service/appointments/models"
)

type fakeRepo struct {
	byID          map[int64]*domain.Appointment
	updatedStatus *domain.AppointmentStatus
	cancelledID   int64
	cancelReason  string
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetByClientID(_ context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.byID {
		if a.ClientID != clientID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) GetByConsultantWithFilter(_ context.Context, filter domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.byID {
		if a.ConsultantID == filter.ConsultantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	f.byID[id].Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelledID = id
	f.cancelReason = reason
	f.byID[id].Status = domain.StatusCancelled
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              55,
		ConsultantID:    7,
		ClientID:        42,
		Date:            time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
	}
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, nopLogger{})
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(domain.StatusUpcoming)}}
	svc := newTestService(repo)

	// Клиент и консультант видят встречу
	for _, userID := range []int64{42, 7} {
		resp, err := svc.GetByID(context.Background(), &models.GetAppointmentRequest{UserID: userID, AppointmentID: 55})
		require.NoError(t, err)
		assert.Equal(t, int64(55), resp.ID)
		assert.Equal(t, "11:00", resp.EndTime.String())
	}

	// Посторонний - нет
	_, err := svc.GetByID(context.Background(), &models.GetAppointmentRequest{UserID: 999, AppointmentID: 55})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), &models.GetAppointmentRequest{UserID: 42, AppointmentID: 404})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{"confirm upcoming", domain.StatusUpcoming, "confirmed", nil},
		{"complete confirmed", domain.StatusConfirmed, "completed", nil},
		{"complete upcoming skips confirmation", domain.StatusUpcoming, "completed", ErrInvalidState},
		{"confirm twice", domain.StatusConfirmed, "confirmed", ErrInvalidState},
		{"confirm completed", domain.StatusCompleted, "confirmed", ErrInvalidState},
		{"confirm cancelled", domain.StatusCancelled, "confirmed", ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(tt.from)}}
			svc := newTestService(repo)

			resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
				UserID:        7,
				AppointmentID: 55,
				Status:        tt.to,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.updatedStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
		})
	}
}

func TestUpdateStatus_OnlyConsultant(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(domain.StatusUpcoming)}}
	svc := newTestService(repo)

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		UserID:        42, // клиент
		AppointmentID: 55,
		Status:        "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_RejectsNonForwardTargets(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(domain.StatusUpcoming)}}
	svc := newTestService(repo)

	for _, target := range []string{"upcoming", "cancelled", "nonsense"} {
		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			UserID:        7,
			AppointmentID: 55,
			Status:        target,
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "target=%s", target)
	}
}

func TestCancel(t *testing.T) {
	t.Run("client cancels upcoming", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(domain.StatusUpcoming)}}
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), &models.CancelRequest{
			UserID:        42,
			AppointmentID: 55,
			Reason:        "не смогу прийти",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(55), repo.cancelledID)
		assert.Equal(t, "не смогу прийти", repo.cancelReason)
	})

	t.Run("consultant cancels confirmed", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(domain.StatusConfirmed)}}
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), &models.CancelRequest{UserID: 7, AppointmentID: 55})
		assert.NoError(t, err)
	})

	t.Run("terminal statuses refuse cancellation", func(t *testing.T) {
		for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled} {
			repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(status)}}
			svc := newTestService(repo)

			err := svc.Cancel(context.Background(), &models.CancelRequest{UserID: 42, AppointmentID: 55})
			assert.ErrorIs(t, err, ErrInvalidState)
			assert.Zero(t, repo.cancelledID)
		}
	})

	t.Run("stranger denied", func(t *testing.T) {
		repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(domain.StatusUpcoming)}}
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), &models.CancelRequest{UserID: 999, AppointmentID: 55})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetClientAppointments_OwnOnly(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{55: testAppointment(domain.StatusUpcoming)}}
	svc := newTestService(repo)

	resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		UserID:   42,
		ClientID: 42,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		UserID:   42,
		ClientID: 43,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetConsultantAppointments_InvalidPeriod(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{}}
	svc := newTestService(repo)

	start := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -5)

	_, err := svc.GetConsultantAppointments(context.Background(), &models.GetConsultantAppointmentsRequest{
		UserID:       7,
		ConsultantID: 7,
		StartDate:    &start,
		EndDate:      &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
