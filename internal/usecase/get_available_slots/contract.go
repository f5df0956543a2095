package get_available_slots

import (
	"context"
	"time"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/internal/integrations/googlecalendar"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListHolding возвращает записи, удерживающие время в диапазоне [from, to):
	// подтвержденные, а также pending с created_at позже pendingSince.
	// staffID = nil означает записи всех мастеров.
	ListHolding(ctx context.Context, from, to time.Time, pendingSince time.Time, staffID *int64) ([]*domain.Appointment, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListReal(ctx context.Context) ([]*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	// ListBusy возвращает занятые интервалы календаря; они блокируют всех мастеров
	ListBusy(ctx context.Context, from, to time.Time) ([]googlecalendar.BusyInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
