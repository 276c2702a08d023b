package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	appointmentRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/appointment"
	"github.com/vkarpovs/CBP-BookingService/internal/service/appointments/models"
)

// MaxCancellationReasonLength максимальная длина причины отмены
const MaxCancellationReasonLength = 500

// Service сервис для работы со встречами
// Переходы статусов подчиняются машине состояний:
// upcoming -> confirmed -> completed, отмена возможна из upcoming и confirmed.
// Терминальные статусы (completed, cancelled) не изменяются.
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает встречу по ID
// Доступно только участникам встречи (клиенту и консультанту)
func (s *Service) GetByID(ctx context.Context, req *models.GetAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: getting appointment id=%d by user=%d", req.AppointmentID, req.UserID)

	appointment, err := s.getOwned(ctx, req.AppointmentID, req.UserID, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetClientAppointments получает встречи клиента с опциональным фильтром по статусу
// Клиент видит только собственные встречи
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: client=%d, status=%v by user=%d", req.ClientID, req.Status, req.UserID)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientAppointments: user=%d has no access to client=%d appointments", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		parsed, err := parseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status filter %q", *req.Status)
			return nil, err
		}
		status = &parsed
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// GetConsultantAppointments получает встречи консультанта за период
// Доступно только самому консультанту
func (s *Service) GetConsultantAppointments(ctx context.Context, req *models.GetConsultantAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetConsultantAppointments: consultant=%d by user=%d", req.ConsultantID, req.UserID)

	if req.UserID != req.ConsultantID {
		s.logger.Warn("GetConsultantAppointments: user=%d has no access to consultant=%d appointments", req.UserID, req.ConsultantID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	filter := domain.ConsultantAppointmentsFilter{
		ConsultantID:    req.ConsultantID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeInactive: req.IncludeInactive,
	}

	appointments, err := s.appointmentRepo.GetByConsultantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultantAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConsultantAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus переводит встречу в новый статус (confirm / complete)
// Подтверждать и завершать встречу может только консультант
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment=%d -> %s by user=%d", req.AppointmentID, req.Status, req.UserID)

	target, err := parseStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid target status %q", req.Status)
		return nil, err
	}

	if target != domain.StatusConfirmed && target != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: status must be %s or %s", ErrInvalidInput, domain.StatusConfirmed, domain.StatusCompleted)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if req.UserID != appointment.ConsultantID {
		s.logger.Warn("UpdateStatus: user=%d is not the consultant of appointment=%d", req.UserID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	if !appointment.CanTransitionTo(target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment=%d",
			appointment.Status, target, req.AppointmentID)
		return nil, ErrInvalidState
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, req.AppointmentID, target); err != nil {
		s.logger.Error("UpdateStatus: failed to update status: %v", err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	appointment.Status = target

	s.logger.Info("UpdateStatus: appointment id=%d moved to %s", req.AppointmentID, target)
	return models.FromDomainAppointment(appointment), nil
}

// Cancel отменяет встречу с указанием причины
// Отменять могут оба участника; освобождённый интервал сразу возвращается в выдачу
func (s *Service) Cancel(ctx context.Context, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", req.AppointmentID, req.UserID)

	if len(req.Reason) > MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, MaxCancellationReasonLength)
	}

	appointment, err := s.getOwned(ctx, req.AppointmentID, req.UserID, "Cancel")
	if err != nil {
		return err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d in status=%s cannot be cancelled",
			req.AppointmentID, appointment.Status)
		return ErrInvalidState
	}

	if err := s.appointmentRepo.Cancel(ctx, req.AppointmentID, req.Reason); err != nil {
		s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", req.AppointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", req.AppointmentID)
	return nil
}

// getOwned получает встречу и проверяет, что пользователь - её участник
func (s *Service) getOwned(ctx context.Context, appointmentID, userID int64, op string) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: failed to get appointment id=%d: %v", op, appointmentID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if userID != appointment.ClientID && userID != appointment.ConsultantID {
		s.logger.Warn("%s: user=%d has no access to appointment=%d", op, userID, appointmentID)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}

// parseStatus парсит строковый статус в domain модель
func parseStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	switch status {
	case domain.StatusUpcoming, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}
