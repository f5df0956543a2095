package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldActive(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	hold := 10 * time.Minute

	confirmed := &Appointment{Status: StatusConfirmed, CreatedAt: now.Add(-2 * time.Hour)}
	assert.True(t, confirmed.HoldActive(now, hold))

	fresh := &Appointment{Status: StatusPending, CreatedAt: now.Add(-5 * time.Minute)}
	assert.True(t, fresh.HoldActive(now, hold))

	expired := &Appointment{Status: StatusPending, CreatedAt: now.Add(-15 * time.Minute)}
	assert.False(t, expired.HoldActive(now, hold))
}

func TestOverlaps_StrictInequality(t *testing.T) {
	appt := &Appointment{
		StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
	}

	at := func(h, m int) time.Time { return time.Date(2026, 9, 7, h, m, 0, 0, time.UTC) }

	assert.True(t, appt.Overlaps(at(10, 30), at(11, 30)))
	assert.True(t, appt.Overlaps(at(9, 30), at(10, 30)))
	assert.True(t, appt.Overlaps(at(10, 15), at(10, 45)))

	// Touching intervals do not conflict
	assert.False(t, appt.Overlaps(at(9, 0), at(10, 0)))
	assert.False(t, appt.Overlaps(at(11, 0), at(12, 0)))
}

func TestTotalDuration(t *testing.T) {
	services := []*Service{
		{DurationMinutes: 30},
		{DurationMinutes: 15},
	}
	// 45 minutes rounds up to a whole slot
	assert.Equal(t, 60, TotalDuration(services, 30))

	assert.Equal(t, 30, TotalDuration([]*Service{{DurationMinutes: 30}}, 30))

	// an empty selection still occupies one slot
	assert.Equal(t, 30, TotalDuration(nil, 30))
	assert.Equal(t, 30, TotalDuration([]*Service{{DurationMinutes: 0}}, 30))
}

func TestStaffSelector(t *testing.T) {
	anyStaff := AnyStaff()
	assert.True(t, anyStaff.IsAny())
	_, ok := anyStaff.StaffID()
	assert.False(t, ok)

	specific := SpecificStaff(3)
	assert.False(t, specific.IsAny())
	id, ok := specific.StaffID()
	require.True(t, ok)
	assert.EqualValues(t, 3, id)
}

func TestStaffIsSentinel(t *testing.T) {
	assert.True(t, (&Staff{Name: "cualquiera"}).IsSentinel())
	assert.True(t, (&Staff{Name: "Any"}).IsSentinel())
	assert.False(t, (&Staff{Name: "Pablo"}).IsSentinel())
}

func TestScheduleIsClosedOn(t *testing.T) {
	s := Schedule{ClosedWeekday: time.Sunday, Location: time.UTC}

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	assert.True(t, s.IsClosedOn(sunday))
	assert.False(t, s.IsClosedOn(monday))
}

func TestScheduleDayWindow(t *testing.T) {
	s := Schedule{OpenHour: 9, CloseHour: 20, Location: time.UTC}

	date := time.Date(2026, 9, 7, 15, 42, 0, 0, time.UTC)
	open, close := s.DayWindow(date)

	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2026, 9, 7, 20, 0, 0, 0, time.UTC), close)
}
