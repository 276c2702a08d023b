package reschedule_appointment

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// Request модель запроса на перенос встречи
type Request struct {
	AppointmentID int64            // ID переносимой встречи
	UserID        int64            // ID инициатора (клиент или консультант встречи)
	NewDate       time.Time        // Новая дата
	NewStartTime  types.TimeString // Новое время начала
}

// Response модель ответа с перенесённой встречей
type Response struct {
	ID              int64            // ID встречи
	ConsultantID    int64            // ID консультанта
	ClientID        int64            // ID клиента
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	EndTime         types.TimeString // Новое время конца
	DurationMinutes int              // Длительность в минутах
	Status          string           // Всегда upcoming после переноса
	UpdatedAt       time.Time        // Время обновления
}
