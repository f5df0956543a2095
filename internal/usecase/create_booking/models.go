package create_booking

import (
	"time"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerName  string               // Имя клиента
	CustomerEmail string               // Email клиента (для писем и поиска записей)
	Date          time.Time            // Дата записи (без времени)
	StartTime     types.TimeString     // Время начала ("HH:MM")
	Staff         domain.StaffSelector // Конкретный мастер или "любой свободный"
	ServiceNames  []string             // Выбранные услуги из каталога
	Notes         string               // Комментарий клиента (опционально)
	UserID        *int64               // ID пользователя, nil для гостевой записи
}

// Response модель ответа на создание записи
type Response struct {
	Appointment *domain.Appointment // Созданная запись (status=pending)
	StaffName   string              // Имя назначенного мастера
	HoldMinutes int                 // Сколько минут держится неподтвержденная запись
}
