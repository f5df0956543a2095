package cancel_booking

import (
	"context"

	"github.com/pablobarber/booking-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Appointment, error)
	// Delete физически удаляет запись; отмененные строки не хранятся
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
