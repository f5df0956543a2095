package confirm_booking

import "github.com/pablobarber/booking-service/internal/domain"

// Request модель запроса на подтверждение записи по токену из письма
type Request struct {
	Token string
}

// Response модель ответа с подтвержденной записью
type Response struct {
	Appointment *domain.Appointment
}
