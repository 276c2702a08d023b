package update_schedule

import (
	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/internal/service/schedule/models"
)

// ReplaceScheduleRequest HTTP request model
// Расписание заменяется целиком вместе с параметрами сессий
type ReplaceScheduleRequest struct {
	Week     domain.WeekSchedule    `json:"week"`
	Settings domain.SessionSettings `json:"settings"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReplaceScheduleRequest) ToServiceRequest(consultantID, userID int64) *models.ReplaceScheduleRequest {
	return &models.ReplaceScheduleRequest{
		UserID:       userID,
		ConsultantID: consultantID,
		Week:         r.Week,
		Settings:     r.Settings,
	}
}
