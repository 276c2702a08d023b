package create_slot_hold

import (
	"errors"
	"net/http"

	"github.com/vkarpovs/CBP-BookingService/internal/api/handlers"
	createSlotHold "github.com/vkarpovs/CBP-BookingService/internal/usecase/create_slot_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgConsultantNotFound = "консультант не найден"
	msgScheduleNotFound   = "расписание консультанта не найдено"
	msgInvalidSlot        = "запрошенное время не является слотом расписания"
	msgSlotConflict       = "выбранный слот уже занят"
)

type Handler struct {
	useCase CreateSlotHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slot-holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slot-holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slot-holds - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlotHold.ErrSlotConflict):
			h.logger.Warn("POST /slot-holds - Slot conflict: consultant_id=%d, time=%s", req.ConsultantID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createSlotHold.ErrInvalidSlot):
			h.logger.Warn("POST /slot-holds - Invalid slot: consultant_id=%d, time=%s", req.ConsultantID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createSlotHold.ErrConsultantNotFound):
			h.logger.Warn("POST /slot-holds - Consultant not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, createSlotHold.ErrScheduleNotFound):
			h.logger.Warn("POST /slot-holds - Schedule not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createSlotHold.ErrInvalidInput):
			h.logger.Warn("POST /slot-holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /slot-holds - Failed to create hold: consultant_id=%d, error=%v", req.ConsultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slot-holds - Hold created successfully: consultant_id=%d, time=%s", req.ConsultantID, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
