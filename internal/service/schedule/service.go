package schedule

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/schedule"
	directoryClient "github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
	"github.com/vkarpovs/CBP-BookingService/internal/service/schedule/models"
)

// Service сервис для работы с расписаниями консультантов
type Service struct {
	scheduleRepo    ScheduleRepository
	directoryClient DirectoryClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	directoryClient DirectoryClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:    scheduleRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// Get получает расписание консультанта
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, req *models.GetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: getting schedule for consultant=%d", req.ConsultantID)

	if req.ConsultantID <= 0 {
		return nil, fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	schedule, err := s.scheduleRepo.GetByConsultantID(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule for consultant id=%d not found", req.ConsultantID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// Replace полностью заменяет расписание консультанта
// Доступно только самому консультанту. Невалидная конфигурация отклоняется
// целиком, сохранённое расписание при этом не изменяется
func (s *Service) Replace(ctx context.Context, req *models.ReplaceScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Replace: replacing schedule for consultant=%d by user=%d", req.ConsultantID, req.UserID)

	if req.ConsultantID <= 0 {
		return nil, fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.UserID != req.ConsultantID {
		s.logger.Warn("Replace: user=%d has no access to consultant=%d schedule", req.UserID, req.ConsultantID)
		return nil, ErrAccessDenied
	}

	// 1. Проверяем существование консультанта
	if _, err := s.directoryClient.GetConsultant(ctx, req.ConsultantID); err != nil {
		if errors.Is(err, directoryClient.ErrConsultantNotFound) {
			s.logger.Warn("Replace: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		s.logger.Error("Replace: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	// 2. Валидируем конфигурацию: интервалы, пересечения, параметры сессий
	schedule := req.ToDomainSchedule()
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("Replace: invalid configuration for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	// 3. Сохраняем (insert или полная замена существующего)
	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("Replace: repository error: %v", err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Replace: successfully replaced schedule for consultant=%d", req.ConsultantID)
	return models.FromDomainSchedule(saved), nil
}

// Delete удаляет расписание консультанта
// Доступно только самому консультанту
func (s *Service) Delete(ctx context.Context, req *models.DeleteScheduleRequest) error {
	s.logger.Info("Delete: deleting schedule for consultant=%d by user=%d", req.ConsultantID, req.UserID)

	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.UserID != req.ConsultantID {
		s.logger.Warn("Delete: user=%d has no access to consultant=%d schedule", req.UserID, req.ConsultantID)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.Delete(ctx, req.ConsultantID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Delete: schedule for consultant id=%d not found", req.ConsultantID)
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: schedule for consultant=%d deleted", req.ConsultantID)
	return nil
}
