package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
)

// Appointment represents one reservation attempt or confirmed booking.
// Cancellation is a physical delete, so a loaded row is always pending or confirmed.
type Appointment struct {
	ID            int64
	UserID        *int64 // nil for guest bookings
	CustomerName  string
	CustomerEmail string
	StaffID       *int64 // nil only before allocation
	StartTime     time.Time
	EndTime       time.Time
	Status        AppointmentStatus

	// Snapshot of the selected services at booking time; later catalog
	// edits must not change historical appointments.
	ServiceNames []string
	Notes        *string

	// ConfirmationToken is issued at booking time and kept after
	// confirmation so repeated clicks on the email links stay idempotent.
	ConfirmationToken *string
	// GoogleEventID is set once the appointment is mirrored to the calendar.
	GoogleEventID *string

	CreatedAt time.Time
}

// IsPending returns true if the appointment is an unconfirmed hold
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

// IsConfirmed returns true if the appointment has been confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// HoldActive reports whether the appointment still counts as busy at the
// given instant: confirmed always, pending only within the hold window
// after creation. An expired pending row is ignored, not deleted.
func (a *Appointment) HoldActive(now time.Time, holdWindow time.Duration) bool {
	if a.Status == StatusConfirmed {
		return true
	}
	return a.Status == StatusPending && now.Sub(a.CreatedAt) < holdWindow
}

// Overlaps reports whether [from, to) really intersects the appointment.
// Touching intervals (end == start) do not overlap.
func (a *Appointment) Overlaps(from, to time.Time) bool {
	return a.StartTime.Before(to) && a.EndTime.After(from)
}
