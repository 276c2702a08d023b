package reschedule_appointment

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	rescheduleAppointment "github.com/vkarpovs/CBP-BookingService/internal/usecase/reschedule_appointment"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewDate      string `json:"newDate"`      // "2026-03-20"
	NewStartTime string `json:"newStartTime"` // "14:00"
}

// RescheduledAppointmentResponse HTTP response model
type RescheduledAppointmentResponse struct {
	ID              int64  `json:"id"`
	ConsultantID    int64  `json:"consultantId"`
	ClientID        int64  `json:"clientId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, userID int64) (*rescheduleAppointment.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
		NewDate:       newDate,
		NewStartTime:  newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduledAppointmentResponse {
	return &RescheduledAppointmentResponse{
		ID:              resp.ID,
		ConsultantID:    resp.ConsultantID,
		ClientID:        resp.ClientID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
