package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при пустом токене
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTokenNotFound возвращается, когда токен не соответствует ни одной записи
	ErrTokenNotFound = errors.New("confirmation token not found")

	// ErrAlreadyConfirmed возвращается при повторном подтверждении записи
	ErrAlreadyConfirmed = errors.New("appointment is already confirmed")

	// ErrCalendarUnavailable возвращается, когда событие календаря не создано.
	// Запись остается pending: подтверждение без события календаря запрещено.
	ErrCalendarUnavailable = errors.New("calendar event was not created")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
