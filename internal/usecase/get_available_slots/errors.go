package get_available_slots

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("get_available_slots: consultant not found")

	// ErrScheduleNotFound возвращается, когда у консультанта нет сохранённого расписания
	ErrScheduleNotFound = errors.New("get_available_slots: schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
