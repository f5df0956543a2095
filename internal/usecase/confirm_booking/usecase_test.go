package confirm_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pablobarber/booking-service/internal/domain"
	apptRepo "github.com/pablobarber/booking-service/internal/infra/storage/appointment"
	"github.com/pablobarber/booking-service/internal/integrations/googlecalendar"
	"github.com/pablobarber/booking-service/pkg/ptr"
)

type fakeApptRepo struct {
	byToken    map[string]*domain.Appointment
	confirmErr error

	confirmedID    *int64
	confirmedEvent *string
}

func (f *fakeApptRepo) GetByToken(_ context.Context, token string) (*domain.Appointment, error) {
	appt, ok := f.byToken[token]
	if !ok {
		return nil, apptRepo.ErrTokenNotFound
	}
	return appt, nil
}

func (f *fakeApptRepo) Confirm(_ context.Context, id int64, googleEventID *string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedID = &id
	f.confirmedEvent = googleEventID
	return nil
}

type fakeStaffRepo struct{}

func (fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	return &domain.Staff{ID: id, Name: "Pablo"}, nil
}

type fakeCalendar struct {
	eventID string
	err     error

	created []googlecalendar.Event
}

func (f *fakeCalendar) CreateEvent(_ context.Context, event googlecalendar.Event) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, event)
	return f.eventID, nil
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

func pendingAppt(token string) *domain.Appointment {
	return &domain.Appointment{
		ID:                7,
		CustomerName:      "Luis García",
		CustomerEmail:     "luis@example.com",
		StaffID:           ptr.Ptr(int64(1)),
		StartTime:         time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		EndTime:           time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC),
		Status:            domain.StatusPending,
		ServiceNames:      []string{"Corte"},
		ConfirmationToken: ptr.Ptr(token),
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeApptRepo{byToken: map[string]*domain.Appointment{"tok": pendingAppt("tok")}}
	cal := &fakeCalendar{eventID: "evt-1"}
	uc := NewUseCase(repo, fakeStaffRepo{}, cal, testSchedule(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Token: "tok"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)
	require.NotNil(t, repo.confirmedID)
	assert.EqualValues(t, 7, *repo.confirmedID)
	require.NotNil(t, repo.confirmedEvent)
	assert.Equal(t, "evt-1", *repo.confirmedEvent)

	require.Len(t, cal.created, 1)
	event := cal.created[0]
	assert.Equal(t, "Cita: Luis García", event.Summary)
	assert.Contains(t, event.Description, "Corte")
	assert.Contains(t, event.Description, "Pablo")
	assert.Equal(t, "UTC", event.Timezone)
}

func TestExecute_TokenNotFound(t *testing.T) {
	repo := &fakeApptRepo{byToken: map[string]*domain.Appointment{}}
	uc := NewUseCase(repo, fakeStaffRepo{}, &fakeCalendar{}, testSchedule(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Token: "missing"})
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestExecute_EmptyToken(t *testing.T) {
	uc := NewUseCase(&fakeApptRepo{}, fakeStaffRepo{}, &fakeCalendar{}, testSchedule(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_AlreadyConfirmedIsIdempotent(t *testing.T) {
	appt := pendingAppt("tok")
	appt.Status = domain.StatusConfirmed
	repo := &fakeApptRepo{byToken: map[string]*domain.Appointment{"tok": appt}}
	cal := &fakeCalendar{eventID: "evt-2"}
	uc := NewUseCase(repo, fakeStaffRepo{}, cal, testSchedule(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Token: "tok"})
	require.ErrorIs(t, err, ErrAlreadyConfirmed)

	// Второго события календаря не появилось
	assert.Empty(t, cal.created)
	assert.Nil(t, repo.confirmedID)
}

func TestExecute_CalendarFailureKeepsPending(t *testing.T) {
	repo := &fakeApptRepo{byToken: map[string]*domain.Appointment{"tok": pendingAppt("tok")}}
	cal := &fakeCalendar{err: errors.New("calendar down")}
	uc := NewUseCase(repo, fakeStaffRepo{}, cal, testSchedule(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Token: "tok"})
	require.ErrorIs(t, err, ErrCalendarUnavailable)

	// Статус не менялся: запись остается pending
	assert.Nil(t, repo.confirmedID)
}

func TestExecute_CalendarDisabled(t *testing.T) {
	repo := &fakeApptRepo{byToken: map[string]*domain.Appointment{"tok": pendingAppt("tok")}}
	uc := NewUseCase(repo, fakeStaffRepo{}, nil, testSchedule(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)
	assert.Nil(t, resp.Appointment.GoogleEventID)
}
