package create_appointment

import (
	"errors"
	"net/http"

	"github.com/vkarpovs/CBP-BookingService/internal/api/handlers"
	"github.com/vkarpovs/CBP-BookingService/internal/api/middleware"
	createAppointment "github.com/vkarpovs/CBP-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgConsultantNotFound = "консультант не найден"
	msgClientNotFound     = "клиент не найден"
	msgScheduleNotFound   = "расписание консультанта не найдено"
	msgInvalidSlot        = "запрошенное время не является слотом расписания"
	msgSlotConflict       = "выбранный слот уже занят"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: client_id=%d, consultant_id=%d", clientID, req.ConsultantID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrInvalidSlot):
			h.logger.Warn("POST /appointments - Invalid slot: client_id=%d, consultant_id=%d, time=%s",
				clientID, req.ConsultantID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createAppointment.ErrConsultantNotFound):
			h.logger.Warn("POST /appointments - Consultant not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrScheduleNotFound):
			h.logger.Warn("POST /appointments - Schedule not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, consultant_id=%d, error=%v",
				clientID, req.ConsultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, consultant_id=%d",
		result.ID, clientID, req.ConsultantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
