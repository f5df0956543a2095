package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при пустом токене
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTokenNotFound возвращается, когда токен не соответствует ни одной записи
	ErrTokenNotFound = errors.New("confirmation token not found")

	// ErrAlreadyConfirmed возвращается при попытке отменить по токену
	// уже подтвержденную запись: этот путь отменяет только pending
	ErrAlreadyConfirmed = errors.New("appointment is already confirmed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
