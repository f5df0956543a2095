package domain

import "time"

// Schedule describes the shop working calendar: daily opening window,
// slot granularity, the weekly closing day and the pending-hold window.
type Schedule struct {
	OpenHour      int
	CloseHour     int
	SlotMinutes   int
	ClosedWeekday time.Weekday
	HoldWindow    time.Duration
	Location      *time.Location
}

// DefaultSchedule returns the observed salon configuration.
func DefaultSchedule() Schedule {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		loc = time.UTC
	}
	return Schedule{
		OpenHour:      DefaultOpenHour,
		CloseHour:     DefaultCloseHour,
		SlotMinutes:   DefaultSlotMinutes,
		ClosedWeekday: time.Weekday(DefaultClosedWeekday),
		HoldWindow:    DefaultHoldMinutes * time.Minute,
		Location:      loc,
	}
}

// IsClosedOn reports whether the shop is closed on the given date.
func (s Schedule) IsClosedOn(date time.Time) bool {
	return date.In(s.Location).Weekday() == s.ClosedWeekday
}

// DayWindow returns the opening and closing instants for the given date
// in the shop timezone.
func (s Schedule) DayWindow(date time.Time) (time.Time, time.Time) {
	d := date.In(s.Location)
	open := time.Date(d.Year(), d.Month(), d.Day(), s.OpenHour, 0, 0, 0, s.Location)
	close := time.Date(d.Year(), d.Month(), d.Day(), s.CloseHour, 0, 0, 0, s.Location)
	return open, close
}
