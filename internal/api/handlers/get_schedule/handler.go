package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vkarpovs/CBP-BookingService/internal/api/handlers"
	scheduleSvc "github.com/vkarpovs/CBP-BookingService/internal/service/schedule"
	"github.com/vkarpovs/CBP-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgNotFound            = "расписание консультанта не найдено"
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

// Handle GET /api/v1/consultants/{consultantId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/schedule - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	schedule, err := h.service.Get(r.Context(), &models.GetScheduleRequest{ConsultantID: consultantID})
	if err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrScheduleNotFound):
			h.logger.Warn("GET /consultants/{id}/schedule - Schedule not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleSvc.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /consultants/{id}/schedule - Failed to get schedule: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/schedule - Schedule retrieved successfully: consultant_id=%d", consultantID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
