package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkarpovs/CBP-BookingService/internal/api/handlers"
	"github.com/vkarpovs/CBP-BookingService/internal/api/middleware"
	scheduleSvc "github.com/vkarpovs/CBP-BookingService/internal/service/schedule"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgConsultantNotFound  = "консультант не найден"
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

// Handle PUT /api/v1/consultants/{consultantId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /consultants/{id}/schedule - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /consultants/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /consultants/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	schedule, err := h.service.Replace(r.Context(), req.ToServiceRequest(consultantID, userID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrConsultantNotFound):
			h.logger.Warn("PUT /consultants/{id}/schedule - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, scheduleSvc.ErrAccessDenied):
			h.logger.Warn("PUT /consultants/{id}/schedule - Access denied: consultant_id=%d, user_id=%d",
				consultantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleSvc.ErrInvalidConfiguration):
			h.logger.Warn("PUT /consultants/{id}/schedule - Invalid configuration: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		case errors.Is(err, scheduleSvc.ErrInvalidInput):
			h.logger.Warn("PUT /consultants/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /consultants/{id}/schedule - Failed to replace schedule: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /consultants/{id}/schedule - Schedule replaced successfully: consultant_id=%d", consultantID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
