package directory

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден в каталоге
	ErrConsultantNotFound = errors.New("directory.client: consultant not found")

	// ErrClientNotFound возвращается, когда клиент не найден в каталоге
	ErrClientNotFound = errors.New("directory.client: client not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса каталога
	ErrInvalidResponse = errors.New("directory.client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory.client: internal error")
)
