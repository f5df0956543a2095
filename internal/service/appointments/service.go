package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pablobarber/booking-service/internal/domain"
	apptRepo "github.com/pablobarber/booking-service/internal/infra/storage/appointment"
	"github.com/pablobarber/booking-service/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями
type Service struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	calendar        CalendarClient
	schedule        domain.Schedule
	adminEmail      string
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей.
// calendar может быть nil, если интеграция с календарем выключена.
func NewService(
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	calendar CalendarClient,
	schedule domain.Schedule,
	adminEmail string,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		calendar:        calendar,
		schedule:        schedule,
		adminEmail:      adminEmail,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видна только её владельцу (по email) или администратору
func (s *Service) GetByID(ctx context.Context, id int64, requesterEmail string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for requester=%s", id, requesterEmail)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(appt, requesterEmail); err != nil {
		s.logger.Warn("GetByID: access denied for requester=%s to appointment id=%d", requesterEmail, id)
		return nil, err
	}

	return models.FromDomainAppointment(appt, s.staffName(ctx, appt.StaffID), s.schedule.Location), nil
}

// ListByEmail получает записи клиента по email, новые первыми
// Клиент видит только свои записи, администратор любые
func (s *Service) ListByEmail(ctx context.Context, email, requesterEmail string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByEmail: fetching appointments for email=%s, requester=%s", email, requesterEmail)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !s.sameEmail(email, requesterEmail) && !s.isAdmin(requesterEmail) {
		s.logger.Warn("ListByEmail: access denied for requester=%s", requesterEmail)
		return nil, ErrAccessDenied
	}

	appts, err := s.appointmentRepo.ListByCustomerEmail(ctx, email)
	if err != nil {
		s.logger.Error("ListByEmail: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: ListByEmail - repository error: %v", ErrInternal, err)
	}

	// Имена мастеров резолвятся один раз на список
	names := make(map[int64]string)
	list := make([]models.AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		name := ""
		if appt.StaffID != nil {
			cached, ok := names[*appt.StaffID]
			if !ok {
				cached = s.staffName(ctx, appt.StaffID)
				names[*appt.StaffID] = cached
			}
			name = cached
		}
		list = append(list, *models.FromDomainAppointment(appt, name, s.schedule.Location))
	}

	s.logger.Info("ListByEmail: fetched %d appointments for email=%s", len(list), email)
	return &models.AppointmentListResponse{Appointments: list}, nil
}

// Cancel отменяет запись: строка удаляется физически.
// Связанное событие календаря удаляется best-effort: отказ календаря
// логируется и не блокирует отмену.
func (s *Service) Cancel(ctx context.Context, id int64, requesterEmail string) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by requester=%s", id, requesterEmail)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(appt, requesterEmail); err != nil {
		s.logger.Warn("Cancel: access denied for requester=%s to appointment id=%d", requesterEmail, id)
		return err
	}

	if s.calendar != nil && appt.GoogleEventID != nil {
		if err := s.calendar.DeleteEvent(ctx, *appt.GoogleEventID); err != nil {
			s.logger.Warn("Cancel: failed to delete calendar event=%s for appointment id=%d: %v",
				*appt.GoogleEventID, id, err)
		}
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: failed to delete appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}

func (s *Service) checkAccess(appt *domain.Appointment, requesterEmail string) error {
	if s.sameEmail(appt.CustomerEmail, requesterEmail) || s.isAdmin(requesterEmail) {
		return nil
	}
	return ErrAccessDenied
}

func (s *Service) sameEmail(a, b string) bool {
	return b != "" && strings.EqualFold(a, b)
}

func (s *Service) isAdmin(email string) bool {
	return s.adminEmail != "" && strings.EqualFold(email, s.adminEmail)
}

func (s *Service) staffName(ctx context.Context, staffID *int64) string {
	if staffID == nil {
		return ""
	}
	staff, err := s.staffRepo.GetByID(ctx, *staffID)
	if err != nil {
		s.logger.Warn("staffName: failed to get staff id=%d: %v", *staffID, err)
		return ""
	}
	return staff.Name
}
