package create_slot_hold

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// Request модель запроса на временную бронь слота
type Request struct {
	ConsultantID int64            // ID консультанта
	Date         time.Time        // Дата слота
	StartTime    types.TimeString // Время начала слота
}

// Response модель ответа с созданной бронью
type Response struct {
	HolderToken     string           // Токен держателя брони
	ConsultantID    int64            // ID консультанта
	Date            time.Time        // Дата слота
	StartTime       types.TimeString // Время начала слота
	EndTime         types.TimeString // Время конца слота
	DurationMinutes int              // Длительность в минутах
	ExpiresAt       time.Time        // Момент истечения брони
}
