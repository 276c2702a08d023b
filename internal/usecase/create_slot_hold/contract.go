package create_slot_hold

import (
	"context"
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	directoryClient "github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
)

// HoldRepository интерфейс репозитория временных броней
type HoldRepository interface {
	Create(ctx context.Context, h *domain.SlotHold) (*domain.SlotHold, error)
	GetActiveByConsultantAndDate(ctx context.Context, consultantID int64, date time.Time, now time.Time) ([]*domain.SlotHold, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByConsultantID(ctx context.Context, consultantID int64) (*domain.ConsultantSchedule, error)
}

// DirectoryClient интерфейс клиента сервиса справочника
type DirectoryClient interface {
	GetConsultant(ctx context.Context, id int64) (*directoryClient.Consultant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// TokenGenerator интерфейс генерации токенов держателя брони
type TokenGenerator interface {
	NewToken() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
