package models

import "github.com/pablobarber/booking-service/internal/domain"

// StaffResponse ответ с данными мастера
type StaffResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// StaffListResponse ответ со списком мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// ServiceResponse ответ с данными услуги каталога
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"` // В евро
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category,omitempty"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainStaffList конвертирует domain модели в DTO
func FromDomainStaffList(staff []*domain.Staff) *StaffListResponse {
	list := make([]StaffResponse, 0, len(staff))
	for _, s := range staff {
		avatarURL := ""
		if s.AvatarURL != nil {
			avatarURL = *s.AvatarURL
		}
		list = append(list, StaffResponse{
			ID:        s.ID,
			Name:      s.Name,
			AvatarURL: avatarURL,
		})
	}
	return &StaffListResponse{Staff: list}
}

// FromDomainServiceList конвертирует domain модели в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	list := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		list = append(list, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Price:           float64(s.PriceCents) / 100,
			DurationMinutes: s.DurationMinutes,
			Category:        s.Category,
		})
	}
	return &ServiceListResponse{Services: list}
}
