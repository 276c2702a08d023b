package create_slot_hold

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	createSlotHold "github.com/vkarpovs/CBP-BookingService/internal/usecase/create_slot_hold"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// CreateSlotHoldRequest HTTP request model
type CreateSlotHoldRequest struct {
	ConsultantID int64  `json:"consultantId"`
	Date         string `json:"date"`      // "2026-03-15"
	StartTime    string `json:"startTime"` // "10:00"
}

// SlotHoldResponse HTTP response model
type SlotHoldResponse struct {
	HolderToken     string `json:"holderToken"`
	ConsultantID    int64  `json:"consultantId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ExpiresAt       string `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSlotHoldRequest) ToUseCaseRequest() (*createSlotHold.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createSlotHold.Request{
		ConsultantID: r.ConsultantID,
		Date:         date,
		StartTime:    startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createSlotHold.Response) *SlotHoldResponse {
	return &SlotHoldResponse{
		HolderToken:     resp.HolderToken,
		ConsultantID:    resp.ConsultantID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		ExpiresAt:       resp.ExpiresAt.Format(time.RFC3339),
	}
}
