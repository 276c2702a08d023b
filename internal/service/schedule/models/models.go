package models

import (
	"time"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
)

// Request модели

// GetScheduleRequest запрос на получение расписания консультанта
type GetScheduleRequest struct {
	ConsultantID int64 `json:"consultantId"`
}

// ReplaceScheduleRequest запрос на полную замену расписания
// Расписание заменяется целиком: частичных обновлений по дням нет
type ReplaceScheduleRequest struct {
	UserID       int64                  `json:"userId"`
	ConsultantID int64                  `json:"consultantId"`
	Week         domain.WeekSchedule    `json:"week"`
	Settings     domain.SessionSettings `json:"settings"`
}

// DeleteScheduleRequest запрос на удаление расписания
type DeleteScheduleRequest struct {
	UserID       int64 `json:"userId"`
	ConsultantID int64 `json:"consultantId"`
}

// Response модели

// ScheduleResponse ответ с расписанием консультанта
type ScheduleResponse struct {
	ConsultantID int64                  `json:"consultantId"`
	Week         domain.WeekSchedule    `json:"week"`
	Settings     domain.SessionSettings `json:"settings"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.ConsultantSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ConsultantID: s.ConsultantID,
		Week:         s.Week,
		Settings:     s.Settings,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToDomainSchedule конвертирует ReplaceScheduleRequest в domain модель
func (r *ReplaceScheduleRequest) ToDomainSchedule() *domain.ConsultantSchedule {
	return &domain.ConsultantSchedule{
		ConsultantID: r.ConsultantID,
		Week:         r.Week,
		Settings:     r.Settings,
	}
}
