package catalog

import (
	"context"

	"github.com/pablobarber/booking-service/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListReal(ctx context.Context) ([]*domain.Staff, error)
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
