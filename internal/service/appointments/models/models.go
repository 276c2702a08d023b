package models

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/pkg/types"
)

// Request модели

// GetAppointmentRequest запрос на получение встречи по ID
type GetAppointmentRequest struct {
	UserID        int64 `json:"userId"`
	AppointmentID int64 `json:"appointmentId"`
}

// GetClientAppointmentsRequest запрос на получение встреч клиента
type GetClientAppointmentsRequest struct {
	UserID   int64   `json:"userId"`
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"` // nil = встречи во всех статусах
}

// GetConsultantAppointmentsRequest запрос на получение встреч консультанта
type GetConsultantAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	ConsultantID    int64      `json:"consultantId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	IncludeInactive bool       `json:"includeInactive"` // включать completed и cancelled
}

// UpdateStatusRequest запрос на смену статуса встречи (confirm / complete)
type UpdateStatusRequest struct {
	UserID        int64  `json:"userId"`
	AppointmentID int64  `json:"appointmentId"`
	Status        string `json:"status"`
}

// CancelRequest запрос на отмену встречи
type CancelRequest struct {
	UserID        int64  `json:"userId"`
	AppointmentID int64  `json:"appointmentId"`
	Reason        string `json:"reason"`
}

// Response модели

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID                 int64            `json:"id"`
	ConsultantID       int64            `json:"consultantId"`
	ClientID           int64            `json:"clientId"`
	Date               string           `json:"date"` // YYYY-MM-DD
	StartTime          types.TimeString `json:"startTime"`
	EndTime            types.TimeString `json:"endTime"`
	DurationMinutes    int              `json:"durationMinutes"`
	Status             string           `json:"status"`
	ConsultantName     string           `json:"consultantName,omitempty"`
	ClientName         string           `json:"clientName,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком встреч
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	// Длительность валидируется при создании, переполнение здесь невозможно
	endTime, _ := a.EndTime()

	return &AppointmentResponse{
		ID:                 a.ID,
		ConsultantID:       a.ConsultantID,
		ClientID:           a.ClientID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime,
		EndTime:            endTime,
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ConsultantName:     a.ConsultantName,
		ClientName:         a.ClientName,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}
