package get_available_slots

import (
	"time"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date  time.Time            // Дата, на которую запрашиваются слоты (без времени)
	Staff domain.StaffSelector // Конкретный мастер или "любой свободный"
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time          // Дата, на которую запрашивались слоты
	Slots []types.TimeString // Времена начала свободных слотов, по возрастанию
}
