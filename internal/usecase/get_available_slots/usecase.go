package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pablobarber/booking-service/internal/domain"
	staffRepo "github.com/pablobarber/booking-service/internal/infra/storage/staff"
	"github.com/pablobarber/booking-service/internal/integrations/googlecalendar"
	"github.com/pablobarber/booking-service/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	calendar        CalendarClient
	schedule        domain.Schedule
	timeProvider    TimeProvider
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
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, anyStaff=%t",
		req.Date.Format(domain.DateFormat), req.Staff.IsAny())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.schedule.Location)
	date := req.Date.In(uc.schedule.Location)

	// 2. Выходной день или прошедшая дата → пустой список, без ошибки
	if uc.schedule.IsClosedOn(date) {
		uc.logger.Info("GetAvailableSlots: shop is closed on %s", date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Slots: []types.TimeString{}}, nil
	}
	if isDateInPast(date, now) {
		return &Response{Date: req.Date, Slots: []types.TimeString{}}, nil
	}

	// 3. Генерируем кандидатов: открытие..закрытие с шагом слота
	candidates := generateCandidateSlots(uc.schedule, date)
	if isSameDay(date, now) {
		candidates = filterPastSlots(candidates, now)
	}
	if len(candidates) == 0 {
		return &Response{Date: req.Date, Slots: []types.TimeString{}}, nil
	}

	// 4. Определяем мастера и размер пула
	var staffID *int64
	realStaffCount := 0

	if id, ok := req.Staff.StaffID(); ok {
		if _, err := uc.staffRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%d not found", id)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		staffID = &id
	} else {
		staff, err := uc.staffRepo.ListReal(ctx)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list staff: %v", err)
			return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
		}
		realStaffCount = len(staff)
		if realStaffCount == 0 {
			uc.logger.Warn("GetAvailableSlots: no real staff configured")
			return &Response{Date: req.Date, Slots: []types.TimeString{}}, nil
		}
	}

	from, to := uc.schedule.DayWindow(date)

	// 5. Занятость внешнего календаря; отказ календаря не блокирует выдачу
	var calendarBusy []googlecalendar.BusyInterval
	if uc.calendar != nil {
		busy, err := uc.calendar.ListBusy(ctx, from, to)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: calendar unavailable, treating as free: %v", err)
		} else {
			calendarBusy = busy
		}
	}

	// 6. Внутренние записи, удерживающие время: подтвержденные плюс
	// pending внутри окна удержания
	pendingSince := now.Add(-uc.schedule.HoldWindow)
	appointments, err := uc.appointmentRepo.ListHolding(ctx, from, to, pendingSince, staffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 7. Вычисляем доступность каждого слота
	step := time.Duration(uc.schedule.SlotMinutes) * time.Minute
	slots := make([]types.TimeString, 0, len(candidates))
	for _, start := range candidates {
		end := start.Add(step)
		if slotAvailable(start, end, calendarBusy, appointments, req.Staff, realStaffCount) {
			slots = append(slots, types.NewTimeString(start))
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available on %s",
		len(slots), len(candidates), date.Format(domain.DateFormat))

	return &Response{Date: req.Date, Slots: slots}, nil
}
