package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание консультанта не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrDecodeWeekConfig возвращается при ошибке разбора JSON недельного расписания
	ErrDecodeWeekConfig = errors.New("schedule.repository: failed to decode week config")

	// ErrEncodeWeekConfig возвращается при ошибке сериализации недельного расписания
	ErrEncodeWeekConfig = errors.New("schedule.repository: failed to encode week config")
)
