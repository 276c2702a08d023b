package get_available_slots

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата для получения слотов (без времени)
	HolderToken  string    // Токен временной брони клиента (опционально, собственный холд не скрывает слот)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата, на которую запрашивались слоты
	Timezone     string    // Таймзона консультанта, в которой заданы HH:MM
	Slots        []Slot    // Список доступных слотов
}

// Slot модель свободного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время конца слота
	DurationMinutes int              // Длительность слота в минутах
}
