package get_consultant_appointments

import (
	"context"

	"github.com/vkarpovs/CBP-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetConsultantAppointments(ctx context.Context, req *models.GetConsultantAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
