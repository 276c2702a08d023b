package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrScheduleNotFound возвращается, когда у консультанта нет расписания
	ErrScheduleNotFound = errors.New("reschedule_appointment: schedule not found")

	// ErrInvalidState возвращается при попытке перенести завершённую или
	// отменённую встречу; встреча остаётся без изменений
	ErrInvalidState = errors.New("reschedule_appointment: appointment state does not allow reschedule")

	// ErrSlotConflict возвращается, когда целевой интервал уже занят
	ErrSlotConflict = errors.New("reschedule_appointment: target slot is not available")

	// ErrInvalidSlot возвращается, когда целевое время не является валидным
	// слотом расписания консультанта
	ErrInvalidSlot = errors.New("reschedule_appointment: invalid target time slot")

	// ErrAccessDenied возвращается, когда встречу переносит посторонний пользователь
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
