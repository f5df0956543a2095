package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pablobarber/booking-service/internal/domain"
	catalogRepo "github.com/pablobarber/booking-service/internal/infra/storage/catalog"
	staffRepo "github.com/pablobarber/booking-service/internal/infra/storage/staff"
	"github.com/pablobarber/booking-service/internal/integrations/mailer"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	catalogRepo     CatalogRepository
	mailer          Mailer
	txManager       TransactionManager
	schedule        domain.Schedule
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// mailer может быть nil, если рассылка писем выключена.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	catalogRepo CatalogRepository,
	mailer Mailer,
	txManager TransactionManager,
	schedule domain.Schedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		catalogRepo:     catalogRepo,
		mailer:          mailer,
		txManager:       txManager,
		schedule:        schedule,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и вставка выполняются в сериализуемой транзакции,
// чтобы два конкурентных запроса не заняли одно и то же время
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, date=%s, time=%s, anyStaff=%t, services=%d",
		req.CustomerEmail, req.Date.Format(domain.DateFormat), req.StartTime, req.Staff.IsAny(), len(req.ServiceNames))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.schedule.Location)
	date := req.Date.In(uc.schedule.Location)

	// 2. Снимок услуг из каталога: длительность фиксируется на момент записи
	services, err := uc.catalogRepo.GetByNames(ctx, req.ServiceNames)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: unknown service in %v", req.ServiceNames)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	durationMinutes := domain.TotalDuration(services, uc.schedule.SlotMinutes)

	start, err := req.StartTime.At(date, uc.schedule.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	// 3. Проверки расписания
	if uc.schedule.IsClosedOn(date) {
		uc.logger.Warn("CreateBooking: shop is closed on %s", date.Format(domain.DateFormat))
		return nil, ErrShopClosed
	}
	if !start.After(now) {
		uc.logger.Warn("CreateBooking: start time %s is in the past", start.Format(time.RFC3339))
		return nil, ErrInvalidDate
	}
	open, close := uc.schedule.DayWindow(date)
	if start.Before(open) || end.After(close) {
		uc.logger.Warn("CreateBooking: %s-%s does not fit working hours", req.StartTime, end.Format(domain.TimeFormat))
		return nil, ErrOutsideWorkingHours
	}

	// 4. Кандидаты на назначение
	candidates, err := uc.resolveCandidates(ctx, req.Staff)
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment
	var assigned *domain.Staff

	// 5. Проверка занятости и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		pendingSince := now.Add(-uc.schedule.HoldWindow)

		var staffID *int64
		if id, ok := req.Staff.StaffID(); ok {
			staffID = &id
		}

		// Выборка с блокировкой строк: записи уже пересекают [start, end)
		holding, err := uc.appointmentRepo.ListHolding(txCtx, start, end, pendingSince, staffID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list holding appointments: %v", err)
			return fmt.Errorf("%w: failed to list holding appointments: %v", ErrInternal, err)
		}

		assigned = pickFreeStaff(candidates, holding)
		if assigned == nil {
			if !req.Staff.IsAny() {
				uc.logger.Warn("CreateBooking: staff id=%d already booked at %s", candidates[0].ID, req.StartTime)
				return ErrStaffAlreadyBooked
			}
			uc.logger.Warn("CreateBooking: no staff available at %s on %s", req.StartTime, date.Format(domain.DateFormat))
			return ErrNoStaffAvailable
		}

		token := uuid.NewString()
		var notes *string
		if req.Notes != "" {
			notes = &req.Notes
		}

		appt := &domain.Appointment{
			UserID:            req.UserID,
			CustomerName:      req.CustomerName,
			CustomerEmail:     req.CustomerEmail,
			StaffID:           &assigned.ID,
			StartTime:         start,
			EndTime:           end,
			Status:            domain.StatusPending,
			ServiceNames:      req.ServiceNames,
			Notes:             notes,
			ConfirmationToken: &token,
		}

		result, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created appointment id=%d staff=%s start=%s",
		result.ID, assigned.Name, start.Format(time.RFC3339))

	// 6. Письмо подтверждения отправляется best-effort: отказ SMTP
	// логируется, запись остается
	uc.sendConfirmationEmail(result, assigned)

	return &Response{
		Appointment: result,
		StaffName:   assigned.Name,
		HoldMinutes: int(uc.schedule.HoldWindow / time.Minute),
	}, nil
}

// resolveCandidates возвращает мастеров-кандидатов по возрастанию id.
// Для конкретного мастера список из одного элемента.
func (uc *UseCase) resolveCandidates(ctx context.Context, selector domain.StaffSelector) ([]*domain.Staff, error) {
	if id, ok := selector.StaffID(); ok {
		staff, err := uc.staffRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateBooking: staff id=%d not found", id)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		return []*domain.Staff{staff}, nil
	}

	staff, err := uc.staffRepo.ListReal(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}
	if len(staff) == 0 {
		uc.logger.Warn("CreateBooking: no real staff configured")
		return nil, ErrNoStaffAvailable
	}

	return staff, nil
}

// pickFreeStaff выбирает первого кандидата без удерживающей записи.
// holding уже пересекает запрашиваемый интервал, достаточно сверить мастера.
func pickFreeStaff(candidates []*domain.Staff, holding []*domain.Appointment) *domain.Staff {
	busy := make(map[int64]struct{}, len(holding))
	for _, appt := range holding {
		if appt.StaffID != nil {
			busy[*appt.StaffID] = struct{}{}
		}
	}

	for _, candidate := range candidates {
		if _, taken := busy[candidate.ID]; !taken {
			return candidate
		}
	}

	return nil
}

func (uc *UseCase) sendConfirmationEmail(appt *domain.Appointment, staff *domain.Staff) {
	if uc.mailer == nil || appt.ConfirmationToken == nil {
		return
	}

	data := mailer.BookingConfirmation{
		To:           appt.CustomerEmail,
		CustomerName: appt.CustomerName,
		StaffName:    staff.Name,
		Services:     appt.ServiceNames,
		Start:        appt.StartTime,
		End:          appt.EndTime,
		Location:     uc.schedule.Location,
		HoldMinutes:  int(uc.schedule.HoldWindow / time.Minute),
		Token:        *appt.ConfirmationToken,
	}

	if err := uc.mailer.SendBookingConfirmation(data); err != nil {
		uc.logger.Warn("CreateBooking: confirmation email failed for id=%d: %v", appt.ID, err)
	}
}
