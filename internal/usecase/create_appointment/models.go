package create_appointment

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// Request модель запроса на создание встречи
type Request struct {
	ConsultantID int64            // ID консультанта
	ClientID     int64            // ID клиента
	Date         time.Time        // Дата встречи (без времени)
	StartTime    types.TimeString // Время начала слота (например, "10:00")
	HolderToken  string           // Токен временной брони (опционально)
	Notes        *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной встречей
type Response struct {
	ID              int64            // ID созданной встречи
	ConsultantID    int64            // ID консультанта
	ClientID        int64            // ID клиента
	Date            time.Time        // Дата встречи
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус встречи

	// Денормализованные данные
	ConsultantName string  // Отображаемое имя консультанта
	ClientName     string  // Отображаемое имя клиента
	Notes          *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
