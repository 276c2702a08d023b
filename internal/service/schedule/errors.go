package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedule.service: schedule not found")

	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("schedule.service: consultant not found")

	// ErrInvalidConfiguration возвращается при нарушении инвариантов расписания
	ErrInvalidConfiguration = errors.New("schedule.service: invalid schedule configuration")

	// ErrAccessDenied возвращается при отсутствии прав на операцию
	ErrAccessDenied = errors.New("schedule.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("schedule.service: internal error")
)
