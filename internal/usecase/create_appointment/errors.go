package create_appointment

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("create_appointment: consultant not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrScheduleNotFound возвращается, когда у консультанта нет расписания
	ErrScheduleNotFound = errors.New("create_appointment: schedule not found")

	// ErrSlotConflict возвращается, когда запрошенный интервал уже занят
	// на момент подтверждения
	ErrSlotConflict = errors.New("create_appointment: slot is no longer available")

	// ErrInvalidSlot возвращается, когда запрошенное время не является
	// валидным слотом расписания консультанта
	ErrInvalidSlot = errors.New("create_appointment: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
