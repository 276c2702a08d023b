package create_appointment

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	createAppointment "github.com/vkarpovs/CBP-BookingService/internal/usecase/create_appointment"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ConsultantID int64   `json:"consultantId"`
	Date         string  `json:"date"`      // "2026-03-15"
	StartTime    string  `json:"startTime"` // "10:00"
	HolderToken  string  `json:"holderToken,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ConsultantID    int64   `json:"consultantId"`
	ClientID        int64   `json:"clientId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ConsultantName  string  `json:"consultantName,omitempty"`
	ClientName      string  `json:"clientName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// ClientID берётся из контекста аутентификации, не из тела запроса
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ConsultantID: r.ConsultantID,
		ClientID:     clientID,
		Date:         date,
		StartTime:    startTime,
		HolderToken:  r.HolderToken,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ConsultantID:    resp.ConsultantID,
		ClientID:        resp.ClientID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ConsultantName:  resp.ConsultantName,
		ClientName:      resp.ClientName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
