package delete_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkarpovs/CBP-BookingService/internal/api/handlers"
	"github.com/vkarpovs/CBP-BookingService/internal/api/middleware"
	scheduleSvc "github.com/vkarpovs/CBP-BookingService/internal/service/schedule"
	"github.com/vkarpovs/CBP-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgNotFound            = "расписание консультанта не найдено"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/consultants/{consultantId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /consultants/{id}/schedule - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /consultants/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteScheduleRequest{
		UserID:       userID,
		ConsultantID: consultantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrScheduleNotFound):
			h.logger.Warn("DELETE /consultants/{id}/schedule - Schedule not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleSvc.ErrAccessDenied):
			h.logger.Warn("DELETE /consultants/{id}/schedule - Access denied: consultant_id=%d, user_id=%d",
				consultantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleSvc.ErrInvalidInput):
			h.logger.Warn("DELETE /consultants/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /consultants/{id}/schedule - Failed to delete schedule: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /consultants/{id}/schedule - Schedule deleted successfully: consultant_id=%d", consultantID)
	handlers.RespondNoContent(w)
}
