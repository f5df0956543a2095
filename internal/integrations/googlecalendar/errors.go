package googlecalendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlecalendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Calendar API
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")

	// ErrEventNotCreated возвращается, когда создание события не удалось.
	// Вызывающая сторона обязана считать подтверждение неуспешным (fail-closed).
	ErrEventNotCreated = errors.New("googlecalendar client: event not created")
)
