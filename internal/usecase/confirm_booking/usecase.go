package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pablobarber/booking-service/internal/domain"
	apptRepo "github.com/pablobarber/booking-service/internal/infra/storage/appointment"
	"github.com/pablobarber/booking-service/internal/integrations/googlecalendar"
	"github.com/pablobarber/booking-service/pkg/ptr"
)

// UseCase use case для подтверждения записи по токену
type UseCase struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	calendar        CalendarClient
	schedule        domain.Schedule
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// calendar может быть nil, если интеграция с календарем выключена.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	calendar CalendarClient,
	schedule domain.Schedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		calendar:        calendar,
		schedule:        schedule,
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения записи.
// Событие в календаре создается ДО смены статуса: если календарь недоступен,
// запись остается pending и истекает по окну удержания.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	appt, err := uc.appointmentRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apptRepo.ErrTokenNotFound) {
			uc.logger.Warn("ConfirmBooking: token not found")
			return nil, ErrTokenNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get appointment by token: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// Повторный клик по ссылке не создает второе событие
	if appt.IsConfirmed() {
		uc.logger.Info("ConfirmBooking: appointment id=%d already confirmed", appt.ID)
		return nil, ErrAlreadyConfirmed
	}

	var googleEventID *string
	if uc.calendar != nil {
		eventID, err := uc.calendar.CreateEvent(ctx, uc.buildEvent(ctx, appt))
		if err != nil {
			uc.logger.Error("ConfirmBooking: calendar event not created for id=%d: %v", appt.ID, err)
			return nil, ErrCalendarUnavailable
		}
		googleEventID = ptr.Ptr(eventID)
	}

	if err := uc.appointmentRepo.Confirm(ctx, appt.ID, googleEventID); err != nil {
		uc.logger.Error("ConfirmBooking: failed to confirm appointment id=%d: %v", appt.ID, err)
		return nil, fmt.Errorf("%w: failed to confirm appointment: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusConfirmed
	appt.GoogleEventID = googleEventID

	uc.logger.Info("ConfirmBooking: confirmed appointment id=%d", appt.ID)

	return &Response{Appointment: appt}, nil
}

func (uc *UseCase) buildEvent(ctx context.Context, appt *domain.Appointment) googlecalendar.Event {
	staffName := ""
	if appt.StaffID != nil {
		staff, err := uc.staffRepo.GetByID(ctx, *appt.StaffID)
		if err != nil {
			uc.logger.Warn("ConfirmBooking: failed to get staff id=%d for event: %v", *appt.StaffID, err)
		} else {
			staffName = staff.Name
		}
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Cliente: %s (%s)\n", appt.CustomerName, appt.CustomerEmail)
	fmt.Fprintf(&desc, "Servicios: %s\n", strings.Join(appt.ServiceNames, ", "))
	if staffName != "" {
		fmt.Fprintf(&desc, "Profesional: %s\n", staffName)
	}
	if appt.Notes != nil && *appt.Notes != "" {
		fmt.Fprintf(&desc, "Notas: %s\n", *appt.Notes)
	}

	return googlecalendar.Event{
		Summary:     fmt.Sprintf("Cita: %s", appt.CustomerName),
		Description: desc.String(),
		Start:       appt.StartTime,
		End:         appt.EndTime,
		Timezone:    uc.schedule.Location.String(),
	}
}
