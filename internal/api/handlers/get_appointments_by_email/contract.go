package get_appointments_by_email

import (
	"context"

	"github.com/pablobarber/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	ListByEmail(ctx context.Context, email, requesterEmail string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
