package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablobarber/booking-service/internal/domain"
	apptRepo "github.com/pablobarber/booking-service/internal/infra/storage/appointment"
	"github.com/pablobarber/booking-service/pkg/ptr"
)

type fakeApptRepo struct {
	byID    map[int64]*domain.Appointment
	byEmail map[string][]*domain.Appointment

	deletedID *int64
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeApptRepo) ListByCustomerEmail(_ context.Context, email string) ([]*domain.Appointment, error) {
	return f.byEmail[email], nil
}

func (f *fakeApptRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = &id
	return nil
}

type fakeStaffRepo struct{}

func (fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	return &domain.Staff{ID: id, Name: "Pablo"}, nil
}

type fakeCalendar struct {
	err     error
	deleted []string
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, eventID)
	return nil
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

func confirmedAppt() *domain.Appointment {
	return &domain.Appointment{
		ID:            5,
		CustomerName:  "Luis García",
		CustomerEmail: "luis@example.com",
		StaffID:       ptr.Ptr(int64(1)),
		StartTime:     time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC),
		Status:        domain.StatusConfirmed,
		ServiceNames:  []string{"Corte"},
		GoogleEventID: ptr.Ptr("evt-1"),
	}
}

func newTestService(repo *fakeApptRepo, cal *fakeCalendar) *Service {
	var calClient CalendarClient
	if cal != nil {
		calClient = cal
	}
	return NewService(repo, fakeStaffRepo{}, calClient, testSchedule(), "admin@example.com", nopLogger{})
}

func TestGetByID_Owner(t *testing.T) {
	repo := &fakeApptRepo{byID: map[int64]*domain.Appointment{5: confirmedAppt()}}
	svc := newTestService(repo, nil)

	resp, err := svc.GetByID(context.Background(), 5, "luis@example.com")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:30", resp.EndTime)
	assert.Equal(t, "Pablo", resp.StaffName)
}

func TestGetByID_AdminSeesAny(t *testing.T) {
	repo := &fakeApptRepo{byID: map[int64]*domain.Appointment{5: confirmedAppt()}}
	svc := newTestService(repo, nil)

	_, err := svc.GetByID(context.Background(), 5, "admin@example.com")
	require.NoError(t, err)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := &fakeApptRepo{byID: map[int64]*domain.Appointment{5: confirmedAppt()}}
	svc := newTestService(repo, nil)

	_, err := svc.GetByID(context.Background(), 5, "otro@example.com")
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 5, "")
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeApptRepo{byID: map[int64]*domain.Appointment{}}, nil)

	_, err := svc.GetByID(context.Background(), 5, "luis@example.com")
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListByEmail_OwnerCaseInsensitive(t *testing.T) {
	repo := &fakeApptRepo{byEmail: map[string][]*domain.Appointment{
		"luis@example.com": {confirmedAppt()},
	}}
	svc := newTestService(repo, nil)

	resp, err := svc.ListByEmail(context.Background(), "luis@example.com", "Luis@Example.com")
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
}

func TestListByEmail_ForeignEmailDenied(t *testing.T) {
	svc := newTestService(&fakeApptRepo{}, nil)

	_, err := svc.ListByEmail(context.Background(), "luis@example.com", "otro@example.com")
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_DeletesRowAndCalendarEvent(t *testing.T) {
	repo := &fakeApptRepo{byID: map[int64]*domain.Appointment{5: confirmedAppt()}}
	cal := &fakeCalendar{}
	svc := newTestService(repo, cal)

	err := svc.Cancel(context.Background(), 5, "luis@example.com")
	require.NoError(t, err)
	require.NotNil(t, repo.deletedID)
	assert.EqualValues(t, 5, *repo.deletedID)
	assert.Equal(t, []string{"evt-1"}, cal.deleted)
}

func TestCancel_CalendarFailureStillDeletesRow(t *testing.T) {
	repo := &fakeApptRepo{byID: map[int64]*domain.Appointment{5: confirmedAppt()}}
	cal := &fakeCalendar{err: errors.New("calendar down")}
	svc := newTestService(repo, cal)

	err := svc.Cancel(context.Background(), 5, "luis@example.com")
	require.NoError(t, err)
	require.NotNil(t, repo.deletedID)
}

func TestCancel_PendingWithoutEventSkipsCalendar(t *testing.T) {
	appt := confirmedAppt()
	appt.Status = domain.StatusPending
	appt.GoogleEventID = nil
	repo := &fakeApptRepo{byID: map[int64]*domain.Appointment{5: appt}}
	cal := &fakeCalendar{}
	svc := newTestService(repo, cal)

	err := svc.Cancel(context.Background(), 5, "admin@example.com")
	require.NoError(t, err)
	assert.Empty(t, cal.deleted)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := &fakeApptRepo{byID: map[int64]*domain.Appointment{5: confirmedAppt()}}
	svc := newTestService(repo, nil)

	err := svc.Cancel(context.Background(), 5, "otro@example.com")
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.deletedID)
}
