package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vkarpovs/CBP-BookingService/internal/api/handlers"
	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	getAvailableSlots "github.com/vkarpovs/CBP-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate         = "отсутствует обязательный параметр date"
	msgConsultantNotFound  = "консультант не найден"
	msgScheduleNotFound    = "расписание консультанта не найдено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-slots - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /consultants/{id}/available-slots - Missing date parameter: consultant_id=%d", consultantID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/available-slots - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Токен собственной временной брони: её слот остаётся в выдаче держателя
	holderToken := r.URL.Query().Get("holderToken")

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ConsultantID: consultantID,
		Date:         date,
		HolderToken:  holderToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrConsultantNotFound):
			h.logger.Warn("GET /consultants/{id}/available-slots - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, getAvailableSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /consultants/{id}/available-slots - Schedule not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /consultants/{id}/available-slots - Failed to get slots: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/available-slots - Retrieved %d slots: consultant_id=%d, date=%s",
		len(result.Slots), consultantID, rawDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
