package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	scheduleRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/schedule"
	"github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
	"github.com/vkarpovs/CBP-BookingService/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	stored   *domain.ConsultantSchedule
	upserted *domain.ConsultantSchedule
	deleted  int64
}

func (f *fakeScheduleRepo) GetByConsultantID(_ context.Context, _ int64) (*domain.ConsultantSchedule, error) {
	if f.stored == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.stored, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, s *domain.ConsultantSchedule) (*domain.ConsultantSchedule, error) {
	f.upserted = s
	return s, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, consultantID int64) error {
	if f.stored == nil {
		return scheduleRepo.ErrScheduleNotFound
	}
	f.deleted = consultantID
	return nil
}

type fakeDirectoryClient struct {
	err error
}

func (f *fakeDirectoryClient) GetConsultant(_ context.Context, id int64) (*directory.Consultant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &directory.Consultant{ID: id}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validWeek() domain.WeekSchedule {
	return domain.WeekSchedule{
		Monday: domain.DaySchedule{
			Enabled: true,
			Ranges:  []domain.TimeRange{{Start: "09:00", End: "17:00"}},
		},
	}
}

func validSettings() domain.SessionSettings {
	return domain.SessionSettings{DefaultDurationMinutes: 60, BufferMinutes: 10, MaxSessionsPerDay: 8}
}

func TestReplace_Success(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, &fakeDirectoryClient{}, nopLogger{})

	resp, err := svc.Replace(context.Background(), &models.ReplaceScheduleRequest{
		UserID:       7,
		ConsultantID: 7,
		Week:         validWeek(),
		Settings:     validSettings(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ConsultantID)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, 60, repo.upserted.Settings.DefaultDurationMinutes)
}

func TestReplace_InvalidConfigurationRejectedWhole(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, &fakeDirectoryClient{}, nopLogger{})

	week := validWeek()
	week.Monday.Ranges = append(week.Monday.Ranges, domain.TimeRange{Start: "16:00", End: "18:00"})

	_, err := svc.Replace(context.Background(), &models.ReplaceScheduleRequest{
		UserID:       7,
		ConsultantID: 7,
		Week:         week,
		Settings:     validSettings(),
	})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	// Сохранённое расписание не тронуто
	assert.Nil(t, repo.upserted)
}

func TestReplace_InvalidSettings(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeDirectoryClient{}, nopLogger{})

	settings := validSettings()
	settings.DefaultDurationMinutes = 0

	_, err := svc.Replace(context.Background(), &models.ReplaceScheduleRequest{
		UserID:       7,
		ConsultantID: 7,
		Week:         validWeek(),
		Settings:     settings,
	})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestReplace_AccessDenied(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeDirectoryClient{}, nopLogger{})

	_, err := svc.Replace(context.Background(), &models.ReplaceScheduleRequest{
		UserID:       8,
		ConsultantID: 7,
		Week:         validWeek(),
		Settings:     validSettings(),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReplace_ConsultantNotFound(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeDirectoryClient{err: directory.ErrConsultantNotFound}, nopLogger{})

	_, err := svc.Replace(context.Background(), &models.ReplaceScheduleRequest{
		UserID:       7,
		ConsultantID: 7,
		Week:         validWeek(),
		Settings:     validSettings(),
	})
	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestGet(t *testing.T) {
	stored := &domain.ConsultantSchedule{ConsultantID: 7, Week: validWeek(), Settings: validSettings()}
	svc := NewService(&fakeScheduleRepo{stored: stored}, &fakeDirectoryClient{}, nopLogger{})

	resp, err := svc.Get(context.Background(), &models.GetScheduleRequest{ConsultantID: 7})
	require.NoError(t, err)
	assert.True(t, resp.Week.Monday.Enabled)

	svc = NewService(&fakeScheduleRepo{}, &fakeDirectoryClient{}, nopLogger{})
	_, err = svc.Get(context.Background(), &models.GetScheduleRequest{ConsultantID: 7})
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestDelete(t *testing.T) {
	stored := &domain.ConsultantSchedule{ConsultantID: 7, Week: validWeek(), Settings: validSettings()}
	repo := &fakeScheduleRepo{stored: stored}
	svc := NewService(repo, &fakeDirectoryClient{}, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), &models.DeleteScheduleRequest{UserID: 7, ConsultantID: 7}))
	assert.Equal(t, int64(7), repo.deleted)

	err := svc.Delete(context.Background(), &models.DeleteScheduleRequest{UserID: 8, ConsultantID: 7})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
