package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkarpovs/CBP-BookingService/internal/availability"
	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	scheduleRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/schedule"
	directoryClient "github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
)

// UseCase use case получения доступных слотов для бронирования
// Слоты каждый раз выводятся заново из расписания консультанта, поэтому
// изменения расписания и параметров сессий действуют немедленно.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	holdRepo        HoldRepository
	directoryClient DirectoryClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	holdRepo HoldRepository,
	directoryClient DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		holdRepo:        holdRepo,
		directoryClient: directoryClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: consultant=%d, date=%s",
		req.ConsultantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем существование консультанта и берём его таймзону
	consultant, err := uc.directoryClient.GetConsultant(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrConsultantNotFound) {
			uc.logger.Warn("GetAvailableSlots: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	// 3. Получаем расписание консультанта
	schedule, err := uc.scheduleRepo.GetByConsultantID(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule for consultant id=%d not found", req.ConsultantID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Генерируем все слоты дня из рабочих диапазонов
	// Выключенный день даёт пустой список, это не ошибка
	day := schedule.Week.DayFor(req.Date)
	slots, err := availability.GenerateSlots(day, schedule.Settings, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: no working ranges for consultant=%d on %s",
			req.ConsultantID, req.Date.Format(domain.DateFormat))
		return &Response{
			ConsultantID: req.ConsultantID,
			Date:         req.Date,
			Timezone:     consultant.Timezone,
			Slots:        []Slot{},
		}, nil
	}

	// 5. Получаем активные встречи на эту дату
	filter := domain.ConsultantAppointmentsFilter{
		ConsultantID:    req.ConsultantID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только занимающие интервал встречи
	}

	appointments, err := uc.appointmentRepo.GetByConsultantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Получаем неистёкшие временные брони на эту дату
	holds, err := uc.holdRepo.GetActiveByConsultantAndDate(ctx, req.ConsultantID, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get holds: %v", err)
		return nil, fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
	}

	// 7. Вычитаем занятые интервалы
	// Собственная бронь клиента (по токену) не скрывает от него слот
	busy := availability.IntervalsFromAppointments(appointments)
	busy = append(busy, availability.IntervalsFromHolds(holds, now, req.HolderToken)...)

	free := availability.FilterAvailable(slots, busy)

	result := make([]Slot, len(free))
	for i, s := range free {
		result[i] = Slot{
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes,
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots free for consultant=%d on %s",
		len(result), len(slots), req.ConsultantID, req.Date.Format(domain.DateFormat))

	return &Response{
		ConsultantID: req.ConsultantID,
		Date:         req.Date,
		Timezone:     consultant.Timezone,
		Slots:        result,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
