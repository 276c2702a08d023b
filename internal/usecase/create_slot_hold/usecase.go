package create_slot_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vkarpovs/CBP-BookingService/internal/availability"
	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	scheduleRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/schedule"
	directoryClient "github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// UUIDTokenGenerator генератор токенов держателя на основе UUID v4
type UUIDTokenGenerator struct{}

// NewToken возвращает новый случайный токен
func (g *UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}

// UseCase use case временной брони слота
// Бронь - мягкая блокировка: слот исчезает из выдачи для остальных клиентов
// на время ttl, но собственный токен держателя не мешает ему подтвердить
// встречу. Проверка конфликтов и запись выполняются в одной сериализуемой
// транзакции по тем же правилам, что и создание встречи.
type UseCase struct {
	holdRepo        HoldRepository
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directoryClient DirectoryClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	tokenGenerator  TokenGenerator
	ttl             time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	holdRepo HoldRepository,
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	directoryClient DirectoryClient,
	txManager TransactionManager,
	ttl time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		holdRepo:        holdRepo,
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		tokenGenerator:  &UUIDTokenGenerator{},
		ttl:             ttl,
		logger:          logger,
	}
}

// Execute выполняет use case временной брони слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSlotHold: consultant=%d, date=%s, time=%s",
		req.ConsultantID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSlotHold: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем существование консультанта
	if _, err := uc.directoryClient.GetConsultant(ctx, req.ConsultantID); err != nil {
		if errors.Is(err, directoryClient.ErrConsultantNotFound) {
			uc.logger.Warn("CreateSlotHold: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("CreateSlotHold: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	var result *domain.SlotHold

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем расписание консультанта
		schedule, err := uc.scheduleRepo.GetByConsultantID(txCtx, req.ConsultantID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateSlotHold: schedule for consultant id=%d not found", req.ConsultantID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CreateSlotHold: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 3.2. Проверяем, что запрошенное время - валидный слот расписания
		day := schedule.Week.DayFor(req.Date)
		slots, err := availability.GenerateSlots(day, schedule.Settings, req.Date)
		if err != nil {
			uc.logger.Error("CreateSlotHold: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		requested, ok := findSlot(slots, req.StartTime)
		if !ok {
			uc.logger.Warn("CreateSlotHold: time=%s is not a valid slot for consultant=%d on %s",
				req.StartTime, req.ConsultantID, req.Date.Format(domain.DateFormat))
			return ErrInvalidSlot
		}

		// 3.3. Получаем активные встречи на дату с блокировкой (FOR UPDATE)
		filter := domain.ConsultantAppointmentsFilter{
			ConsultantID:    req.ConsultantID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByConsultantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateSlotHold: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.4. Получаем чужие неистёкшие брони
		holds, err := uc.holdRepo.GetActiveByConsultantAndDate(txCtx, req.ConsultantID, req.Date, now)
		if err != nil {
			uc.logger.Error("CreateSlotHold: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}

		// 3.5. Проверяем, что слот свободен от встреч и чужих броней
		busy := availability.IntervalsFromAppointments(appointments)
		busy = append(busy, availability.IntervalsFromHolds(holds, now, "")...)

		if len(availability.FilterAvailable([]domain.BookableSlot{requested}, busy)) == 0 {
			uc.logger.Warn("CreateSlotHold: slot %s-%s already taken for consultant=%d",
				requested.StartTime, requested.EndTime, req.ConsultantID)
			return ErrSlotConflict
		}

		// 3.6. Создаем бронь с новым токеном держателя
		hold := &domain.SlotHold{
			ConsultantID:    req.ConsultantID,
			Date:            req.Date,
			StartTime:       requested.StartTime,
			DurationMinutes: requested.DurationMinutes,
			HolderToken:     uc.tokenGenerator.NewToken(),
			ExpiresAt:       now.Add(uc.ttl),
		}

		created, err := uc.holdRepo.Create(txCtx, hold)
		if err != nil {
			uc.logger.Error("CreateSlotHold: failed to create hold: %v", err)
			return fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSlotHold: successfully created hold id=%d, expires at %s",
		result.ID, result.ExpiresAt.Format(time.RFC3339))

	endTime, err := result.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		HolderToken:     result.HolderToken,
		ConsultantID:    result.ConsultantID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		ExpiresAt:       result.ExpiresAt,
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
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}
