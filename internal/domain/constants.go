package domain

// Default schedule values (observed salon configuration)
const (
	DefaultOpenHour      = 9
	DefaultCloseHour     = 20
	DefaultSlotMinutes   = 30
	DefaultHoldMinutes   = 10
	DefaultClosedWeekday = 0 // Sunday
)

// Business validation constants
const (
	MaxNotesLength        = 500
	MaxCustomerNameLength = 120
	MaxServicesPerBooking = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
