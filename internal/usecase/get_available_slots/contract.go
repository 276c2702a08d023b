package get_available_slots

import (
	"context"
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	// GetByConsultantWithFilter получает встречи консультанта на дату
	GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByConsultantID(ctx context.Context, consultantID int64) (*domain.ConsultantSchedule, error)
}

// HoldRepository интерфейс репозитория временных броней
type HoldRepository interface {
	GetActiveByConsultantAndDate(ctx context.Context, consultantID int64, date time.Time, now time.Time) ([]*domain.SlotHold, error)
}

// DirectoryClient интерфейс клиента каталога консультантов
type DirectoryClient interface {
	GetConsultant(ctx context.Context, consultantID int64) (*directory.Consultant, error)
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
