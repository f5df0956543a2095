package confirm_booking

import (
	"context"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/internal/integrations/googlecalendar"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Appointment, error)
	// Confirm переводит запись в confirmed и сохраняет id события календаря
	Confirm(ctx context.Context, id int64, googleEventID *string) error
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	CreateEvent(ctx context.Context, event googlecalendar.Event) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
