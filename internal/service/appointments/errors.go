package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("appointments.service: appointment not found")

	// ErrInvalidState возвращается при недопустимом переходе статуса
	ErrInvalidState = errors.New("appointments.service: invalid status transition")

	// ErrAccessDenied возвращается при отсутствии прав на операцию
	ErrAccessDenied = errors.New("appointments.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("appointments.service: internal error")
)
