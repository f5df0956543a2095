package models

import (
	"time"

	"github.com/pablobarber/booking-service/internal/domain"
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            int64    `json:"id"`
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	StaffID       *int64   `json:"staffId,omitempty"`
	StaffName     string   `json:"staffName,omitempty"`
	Date          string   `json:"date"`      // "2025-10-15"
	StartTime     string   `json:"startTime"` // "10:00"
	EndTime       string   `json:"endTime"`   // "10:30"
	Status        string   `json:"status"`
	Services      []string `json:"services"`
	Notes         *string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO.
// Времена форматируются в часовом поясе салона.
func FromDomainAppointment(a *domain.Appointment, staffName string, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}

	start := a.StartTime.In(loc)
	end := a.EndTime.In(loc)

	return &AppointmentResponse{
		ID:            a.ID,
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		StaffID:       a.StaffID,
		StaffName:     staffName,
		Date:          start.Format(domain.DateFormat),
		StartTime:     start.Format(domain.TimeFormat),
		EndTime:       end.Format(domain.TimeFormat),
		Status:        string(a.Status),
		Services:      a.ServiceNames,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
	}
}
