package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при попытке записи на прошедшее время
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrShopClosed возвращается при попытке записи на выходной день
	ErrShopClosed = errors.New("shop is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда запись не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("booking is outside working hours")

	// ErrStaffNotFound возвращается, когда запрошенный мастер не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffAlreadyBooked возвращается, когда у выбранного мастера время занято
	ErrStaffAlreadyBooked = errors.New("staff member is already booked for this time")

	// ErrNoStaffAvailable возвращается, когда все мастера заняты в выбранное время
	ErrNoStaffAvailable = errors.New("no staff member is available for this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
