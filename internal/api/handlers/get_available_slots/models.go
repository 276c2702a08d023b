package get_available_slots

import (
	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	getAvailableSlots "github.com/vkarpovs/CBP-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailableSlotsResponse HTTP модель ответа со списком слотов
type AvailableSlotsResponse struct {
	ConsultantID int64          `json:"consultantId"`
	Date         string         `json:"date"`
	Timezone     string         `json:"timezone"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &AvailableSlotsResponse{
		ConsultantID: resp.ConsultantID,
		Date:         resp.Date.Format(domain.DateFormat),
		Timezone:     resp.Timezone,
		Slots:        slots,
	}
}
