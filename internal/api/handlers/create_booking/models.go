package create_booking

import (
	"fmt"
	"time"

	"github.com/pablobarber/booking-service/internal/domain"
	createBooking "github.com/pablobarber/booking-service/internal/usecase/create_booking"
	"github.com/pablobarber/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	Date          string   `json:"date"`      // "2025-10-15"
	StartTime     string   `json:"startTime"` // "10:00"
	StaffID       *int64   `json:"staffId,omitempty"` // nil - любой свободный мастер
	Services      []string `json:"services"`
	Notes         string   `json:"notes,omitempty"`
	UserID        *int64   `json:"userId,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID        int64    `json:"id"`
	Status    string   `json:"status"`
	StaffName string   `json:"staffName"`
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Services  []string `json:"services"`
	Message   string   `json:"message"`
}

// ToUseCaseRequest создает запрос use case из HTTP запроса
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	staff := domain.AnyStaff()
	if r.StaffID != nil {
		staff = domain.SpecificStaff(*r.StaffID)
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Date:          date,
		StartTime:     types.TimeString(r.StartTime),
		Staff:         staff,
		ServiceNames:  r.Services,
		Notes:         r.Notes,
		UserID:        r.UserID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *CreateBookingResponse {
	appt := resp.Appointment
	start := appt.StartTime.In(loc)
	end := appt.EndTime.In(loc)

	return &CreateBookingResponse{
		ID:        appt.ID,
		Status:    string(appt.Status),
		StaffName: resp.StaffName,
		Date:      start.Format(domain.DateFormat),
		StartTime: start.Format(domain.TimeFormat),
		EndTime:   end.Format(domain.TimeFormat),
		Services:  appt.ServiceNames,
		Message: fmt.Sprintf(
			"Te hemos enviado un email. Tienes %d minutos para confirmar la cita, de lo contrario quedará liberada.",
			resp.HoldMinutes),
	}
}
