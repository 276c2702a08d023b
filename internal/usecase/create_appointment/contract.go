package create_appointment

import (
	"context"
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByConsultantID(ctx context.Context, consultantID int64) (*domain.ConsultantSchedule, error)
}

// HoldRepository интерфейс репозитория временных броней
type HoldRepository interface {
	GetActiveByConsultantAndDate(ctx context.Context, consultantID int64, date time.Time, now time.Time) ([]*domain.SlotHold, error)
	DeleteByToken(ctx context.Context, holderToken string) error
}

// DirectoryClient интерфейс клиента каталога
type DirectoryClient interface {
	GetConsultant(ctx context.Context, consultantID int64) (*directory.Consultant, error)
	GetClientProfile(ctx context.Context, clientID int64) (*directory.ClientProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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
