package get_consultant_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vkarpovs/CBP-BookingService/internal/api/handlers"
	"github.com/vkarpovs/CBP-BookingService/internal/api/middleware"
	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/internal/service/appointments"
	"github.com/vkarpovs/CBP-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/appointments?startDate=...&endDate=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/appointments - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /consultants/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetConsultantAppointmentsRequest{
		UserID:       userID,
		ConsultantID: consultantID,
	}

	query := r.URL.Query()

	if rawStart := query.Get("startDate"); rawStart != "" {
		startDate, err := time.Parse(domain.DateFormat, rawStart)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/appointments - Invalid startDate %q: %v", rawStart, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if rawEnd := query.Get("endDate"); rawEnd != "" {
		endDate, err := time.Parse(domain.DateFormat, rawEnd)
		if err != nil {
			h.logger.Warn("GET /consultants/{id}/appointments - Invalid endDate %q: %v", rawEnd, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetConsultantAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /consultants/{id}/appointments - Access denied: consultant_id=%d, user_id=%d",
				consultantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /consultants/{id}/appointments - Failed to get appointments: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/appointments - Retrieved %d appointments: consultant_id=%d",
		len(result.Appointments), consultantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
