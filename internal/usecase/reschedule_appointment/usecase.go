package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkarpovs/CBP-BookingService/internal/availability"
	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	appointmentRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/appointment"
	scheduleRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/schedule"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// UseCase use case переноса встречи
// Перенос разрешён только из статусов upcoming и confirmed. Подтверждённая
// встреча после переноса возвращается в upcoming - консультант подтверждает
// новое время заново. Проверка нового слота выполняется в той же
// сериализуемой транзакции, что и запись; собственный интервал встречи
// конфликтом не считается.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	holdRepo        HoldRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	holdRepo HoldRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		holdRepo:        holdRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса встречи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, newDate=%s, newTime=%s",
		req.AppointmentID, req.UserID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем встречу
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Проверяем права доступа: переносить могут только участники встречи
		if req.UserID != appointment.ClientID && req.UserID != appointment.ConsultantID {
			uc.logger.Warn("RescheduleAppointment: user id=%d has no access to appointment id=%d",
				req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 2.3. Проверяем статус: из терминальных статусов перенос запрещён,
		// встреча при отказе не изменяется
		if !appointment.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d in status=%s cannot be rescheduled",
				appointment.ID, appointment.Status)
			return ErrInvalidState
		}

		// 2.4. Получаем расписание консультанта
		schedule, err := uc.scheduleRepo.GetByConsultantID(txCtx, appointment.ConsultantID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("RescheduleAppointment: schedule for consultant id=%d not found", appointment.ConsultantID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 2.5. Проверяем, что новое время - валидный слот расписания
		day := schedule.Week.DayFor(req.NewDate)
		slots, err := availability.GenerateSlots(day, schedule.Settings, req.NewDate)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		requested, ok := findSlot(slots, req.NewStartTime)
		if !ok {
			uc.logger.Warn("RescheduleAppointment: time=%s is not a valid slot for consultant=%d on %s",
				req.NewStartTime, appointment.ConsultantID, req.NewDate.Format(domain.DateFormat))
			return ErrInvalidSlot
		}

		// 2.6. Получаем активные встречи на новую дату с блокировкой (FOR UPDATE)
		filter := domain.ConsultantAppointmentsFilter{
			ConsultantID:    appointment.ConsultantID,
			StartDate:       &req.NewDate,
			EndDate:         &req.NewDate,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByConsultantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 2.7. Исключаем переносимую встречу из списка занятых интервалов:
		// встреча не конфликтует со своим собственным старым временем
		others := appointments[:0:0]
		for _, a := range appointments {
			if a.ID != appointment.ID {
				others = append(others, a)
			}
		}

		// 2.8. Получаем неистёкшие временные брони
		holds, err := uc.holdRepo.GetActiveByConsultantAndDate(txCtx, appointment.ConsultantID, req.NewDate, now)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}

		// 2.9. Проверяем доступность нового слота
		busy := availability.IntervalsFromAppointments(others)
		busy = append(busy, availability.IntervalsFromHolds(holds, now, "")...)

		if len(availability.FilterAvailable([]domain.BookableSlot{requested}, busy)) == 0 {
			uc.logger.Warn("RescheduleAppointment: slot %s-%s already taken for consultant=%d",
				requested.StartTime, requested.EndTime, appointment.ConsultantID)
			return ErrSlotConflict
		}

		// 2.10. Переносим встречу, статус сбрасывается в upcoming
		updated, err := uc.appointmentRepo.Reschedule(txCtx, appointment.ID, req.NewDate, requested.StartTime, requested.DurationMinutes)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to reschedule appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d to %s %s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime)

	endTime, err := result.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		ConsultantID:    result.ConsultantID,
		ClientID:        result.ClientID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// findSlot ищет в сгенерированных слотах слот с указанным временем начала
func findSlot(slots []domain.BookableSlot, startTime types.TimeString) (domain.BookableSlot, bool) {
	for _, s := range slots {
		if s.StartTime == startTime {
			return s, true
		}
	}
	return domain.BookableSlot{}, false
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
	}

	return nil
}
