package schedule

import (
	"context"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	directoryClient "github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByConsultantID(ctx context.Context, consultantID int64) (*domain.ConsultantSchedule, error)
	Upsert(ctx context.Context, schedule *domain.ConsultantSchedule) (*domain.ConsultantSchedule, error)
	Delete(ctx context.Context, consultantID int64) error
}

// DirectoryClient интерфейс клиента сервиса справочника
type DirectoryClient interface {
	GetConsultant(ctx context.Context, id int64) (*directoryClient.Consultant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
