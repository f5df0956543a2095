package create_booking

import (
	"context"
	"time"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/internal/integrations/mailer"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// ListHolding возвращает записи, удерживающие время в диапазоне [from, to):
	// подтвержденные, а также pending с created_at позже pendingSince.
	// Внутри транзакции выполняется с блокировкой строк.
	ListHolding(ctx context.Context, from, to time.Time, pendingSince time.Time, staffID *int64) ([]*domain.Appointment, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListReal(ctx context.Context) ([]*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	// GetByNames возвращает услуги в порядке запрошенных имен;
	// отсутствие любого имени считается ошибкой
	GetByNames(ctx context.Context, names []string) ([]*domain.Service, error)
}

// Mailer интерфейс отправки письма подтверждения.
// Отказ отправки не отменяет созданную запись.
type Mailer interface {
	SendBookingConfirmation(data mailer.BookingConfirmation) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в сериализуемой транзакции
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
