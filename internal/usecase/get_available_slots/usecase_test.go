package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablobarber/booking-service/internal/domain"
	staffRepo "github.com/pablobarber/booking-service/internal/infra/storage/staff"
	"github.com/pablobarber/booking-service/internal/integrations/googlecalendar"
	"github.com/pablobarber/booking-service/pkg/ptr"
	"github.com/pablobarber/booking-service/pkg/types"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeApptRepo struct {
	appts []*domain.Appointment
	err   error

	gotPendingSince time.Time
	gotStaffID      *int64
}

// ListHolding повторяет предикат занятости хранилища:
// confirmed OR (pending AND created_at > pendingSince), пересечение строгое.
func (f *fakeApptRepo) ListHolding(_ context.Context, from, to, pendingSince time.Time, staffID *int64) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotPendingSince = pendingSince
	f.gotStaffID = staffID

	var out []*domain.Appointment
	for _, a := range f.appts {
		if staffID != nil && (a.StaffID == nil || *a.StaffID != *staffID) {
			continue
		}
		if !(a.StartTime.Before(to) && a.EndTime.After(from)) {
			continue
		}
		if a.Status == domain.StatusConfirmed || a.CreatedAt.After(pendingSince) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeStaffRepo struct {
	staff []*domain.Staff
	err   error
}

func (f *fakeStaffRepo) ListReal(_ context.Context) ([]*domain.Staff, error) {
	return f.staff, f.err
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, staffRepo.ErrStaffNotFound
}

type fakeCalendar struct {
	busy   []googlecalendar.BusyInterval
	err    error
	called bool
}

func (f *fakeCalendar) ListBusy(_ context.Context, _, _ time.Time) ([]googlecalendar.BusyInterval, error) {
	f.called = true
	return f.busy, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSchedule() domain.Schedule {
	return domain.Schedule{
		OpenHour:      9,
		CloseHour:     20,
		SlotMinutes:   30,
		ClosedWeekday: time.Sunday,
		HoldWindow:    10 * time.Minute,
		Location:      time.UTC,
	}
}

// Понедельник в будущем относительно fakeClock
var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func newTestUseCase(apptRepo *fakeApptRepo, sRepo *fakeStaffRepo, cal *fakeCalendar) *UseCase {
	var calClient CalendarClient
	if cal != nil {
		calClient = cal
	}
	uc := NewUseCase(apptRepo, sRepo, calClient, testSchedule(), nopLogger{})
	uc.timeProvider = &fakeClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func twoBarbers() *fakeStaffRepo {
	return &fakeStaffRepo{staff: []*domain.Staff{
		{ID: 1, Name: "Pablo"},
		{ID: 2, Name: "Marta"},
	}}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 7, hour, min, 0, 0, time.UTC)
}

func confirmedAppt(staffID int64, start, end time.Time) *domain.Appointment {
	return &domain.Appointment{
		StaffID:   ptr.Ptr(staffID),
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusConfirmed,
	}
}

func TestExecute_FullOpenDay(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, twoBarbers(), nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.AnyStaff()})
	require.NoError(t, err)

	// 09:00 .. 19:30 с шагом 30 минут
	require.Len(t, resp.Slots, 22)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("19:30"), resp.Slots[21])
}

func TestExecute_ClosedWeekday(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, twoBarbers(), nil)

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{Date: sunday, Staff: domain.AnyStaff()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, twoBarbers(), nil)

	past := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{Date: past, Staff: domain.AnyStaff()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SpecificStaffBlockedByConfirmed(t *testing.T) {
	apptRepo := &fakeApptRepo{appts: []*domain.Appointment{
		confirmedAppt(1, at(10, 0), at(10, 30)),
	}}
	uc := newTestUseCase(apptRepo, twoBarbers(), nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.SpecificStaff(1)})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.Contains(t, resp.Slots, types.TimeString("10:30"))
	assert.Contains(t, resp.Slots, types.TimeString("09:30"))
	require.NotNil(t, apptRepo.gotStaffID)
	assert.EqualValues(t, 1, *apptRepo.gotStaffID)
}

func TestExecute_TouchingIntervalsDoNotConflict(t *testing.T) {
	// Запись 10:00-11:00: слоты 09:30 и 11:00 остаются свободными
	apptRepo := &fakeApptRepo{appts: []*domain.Appointment{
		confirmedAppt(1, at(10, 0), at(11, 0)),
	}}
	uc := newTestUseCase(apptRepo, twoBarbers(), nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.SpecificStaff(1)})
	require.NoError(t, err)

	assert.Contains(t, resp.Slots, types.TimeString("09:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("10:30"))
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))
}

func TestExecute_PendingHoldDecay(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	fresh := &domain.Appointment{
		StaffID:   ptr.Ptr(int64(1)),
		StartTime: at(10, 0),
		EndTime:   at(10, 30),
		Status:    domain.StatusPending,
		CreatedAt: now.Add(-5 * time.Minute),
	}
	expired := &domain.Appointment{
		StaffID:   ptr.Ptr(int64(1)),
		StartTime: at(12, 0),
		EndTime:   at(12, 30),
		Status:    domain.StatusPending,
		CreatedAt: now.Add(-15 * time.Minute),
	}

	apptRepo := &fakeApptRepo{appts: []*domain.Appointment{fresh, expired}}
	uc := newTestUseCase(apptRepo, twoBarbers(), nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.SpecificStaff(1)})
	require.NoError(t, err)

	// Свежий pending держит слот, просроченный уже нет
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.Contains(t, resp.Slots, types.TimeString("12:00"))
	assert.Equal(t, now.Add(-10*time.Minute), apptRepo.gotPendingSince)
}

func TestExecute_AnyStaffPool(t *testing.T) {
	// В 10:00 заняты оба мастера, в 11:00 только один
	apptRepo := &fakeApptRepo{appts: []*domain.Appointment{
		confirmedAppt(1, at(10, 0), at(10, 30)),
		confirmedAppt(2, at(10, 0), at(10, 30)),
		confirmedAppt(1, at(11, 0), at(11, 30)),
	}}
	uc := newTestUseCase(apptRepo, twoBarbers(), nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.AnyStaff()})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))
	assert.Nil(t, apptRepo.gotStaffID)
}

func TestExecute_CalendarBusyBlocksAllStaff(t *testing.T) {
	cal := &fakeCalendar{busy: []googlecalendar.BusyInterval{
		{Start: at(13, 0), End: at(14, 0)},
	}}
	uc := newTestUseCase(&fakeApptRepo{}, twoBarbers(), cal)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.AnyStaff()})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, types.TimeString("13:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("13:30"))
	assert.Contains(t, resp.Slots, types.TimeString("14:00"))
	assert.True(t, cal.called)
}

func TestExecute_CalendarFailureIsFailOpen(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("calendar down")}
	uc := newTestUseCase(&fakeApptRepo{}, twoBarbers(), cal)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.AnyStaff()})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 22)
}

func TestExecute_StoreFailure(t *testing.T) {
	apptRepo := &fakeApptRepo{err: errors.New("db down")}
	uc := newTestUseCase(apptRepo, twoBarbers(), nil)

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.AnyStaff()})
	require.ErrorIs(t, err, ErrInternal)
}

func TestExecute_StaffNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, twoBarbers(), nil)

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.SpecificStaff(99)})
	require.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_NoStaffConfigured(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, &fakeStaffRepo{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.AnyStaff()})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayFiltersPastSlots(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, twoBarbers(), nil)
	uc.timeProvider = &fakeClock{now: time.Date(2026, 9, 7, 17, 45, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, Staff: domain.AnyStaff()})
	require.NoError(t, err)

	// Остались только 18:00 .. 19:30
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("18:00"), resp.Slots[0])
}
