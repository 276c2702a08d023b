package create_slot_hold

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("create_slot_hold.usecase: consultant not found")

	// ErrScheduleNotFound возвращается, когда расписание консультанта не найдено
	ErrScheduleNotFound = errors.New("create_slot_hold.usecase: schedule not found")

	// ErrSlotConflict возвращается, когда слот уже занят встречей или чужой бронью
	ErrSlotConflict = errors.New("create_slot_hold.usecase: slot is already taken")

	// ErrInvalidSlot возвращается, когда запрошенное время не является слотом расписания
	ErrInvalidSlot = errors.New("create_slot_hold.usecase: requested time is not a valid slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_slot_hold.usecase: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_slot_hold.usecase: internal error")
)
