package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkarpovs/CBP-BookingService/internal/availability"
	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	scheduleRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/schedule"
	directoryClient "github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// UseCase use case создания встречи
// Проверка доступности и запись выполняются в одной сериализуемой
// транзакции: из двух одновременных подтверждений одного интервала ровно
// одно получает ErrSlotConflict. Повторных попыток нет - клиент заново
// запрашивает свободные слоты.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	holdRepo        HoldRepository
	directoryClient DirectoryClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	holdRepo HoldRepository,
	directoryClient DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		holdRepo:        holdRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания встречи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: consultant=%d, client=%d, date=%s, time=%s",
		req.ConsultantID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем существование консультанта
	consultant, err := uc.directoryClient.GetConsultant(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrConsultantNotFound) {
			uc.logger.Warn("CreateAppointment: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	// 3. Получаем профиль клиента для денормализации имени
	client, err := uc.directoryClient.GetClientProfile(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем расписание консультанта
		schedule, err := uc.scheduleRepo.GetByConsultantID(txCtx, req.ConsultantID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateAppointment: schedule for consultant id=%d not found", req.ConsultantID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 4.2. Проверяем, что запрошенное время - валидный слот расписания
		day := schedule.Week.DayFor(req.Date)
		slots, err := availability.GenerateSlots(day, schedule.Settings, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		requested, ok := findSlot(slots, req.StartTime)
		if !ok {
			uc.logger.Warn("CreateAppointment: time=%s is not a valid slot for consultant=%d on %s",
				req.StartTime, req.ConsultantID, req.Date.Format(domain.DateFormat))
			return ErrInvalidSlot
		}

		// 4.3. Получаем активные встречи на дату с блокировкой (FOR UPDATE)
		filter := domain.ConsultantAppointmentsFilter{
			ConsultantID:    req.ConsultantID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByConsultantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 4.4. Получаем неистёкшие временные брони
		holds, err := uc.holdRepo.GetActiveByConsultantAndDate(txCtx, req.ConsultantID, req.Date, now)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}

		// 4.5. Повторно проверяем доступность слота на момент записи
		// Собственная бронь клиента (по токену) не блокирует подтверждение
		busy := availability.IntervalsFromAppointments(appointments)
		busy = append(busy, availability.IntervalsFromHolds(holds, now, req.HolderToken)...)

		if len(availability.FilterAvailable([]domain.BookableSlot{requested}, busy)) == 0 {
			uc.logger.Warn("CreateAppointment: slot %s-%s already taken for consultant=%d",
				requested.StartTime, requested.EndTime, req.ConsultantID)
			return ErrSlotConflict
		}

		// 4.6. Создаем встречу со статусом upcoming
		appointment := &domain.Appointment{
			ConsultantID:    req.ConsultantID,
			ClientID:        req.ClientID,
			Date:            req.Date,
			StartTime:       requested.StartTime,
			DurationMinutes: requested.DurationMinutes,
			Status:          domain.StatusUpcoming,
			// Денормализация отображаемых имён для истории
			ConsultantName: consultant.DisplayName,
			ClientName:     client.DisplayName,
			Notes:          req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 4.7. Поглощаем временную бронь клиента, если она была
		if req.HolderToken != "" {
			if err := uc.holdRepo.DeleteByToken(txCtx, req.HolderToken); err != nil {
				uc.logger.Error("CreateAppointment: failed to consume hold: %v", err)
				return fmt.Errorf("%w: failed to consume hold: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

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
		ConsultantName:  result.ConsultantName,
		ClientName:      result.ClientName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
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
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
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

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
