package domain

// Service is a catalog entry the customer can select when booking
type Service struct {
	ID              int64
	Name            string
	PriceCents      int64
	DurationMinutes int
	Category        string
}

// TotalDuration sums the durations of the given services and rounds the
// result up to the slot granularity. A zero sum still occupies one slot.
func TotalDuration(services []*Service, slotMinutes int) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	if total <= 0 {
		return slotMinutes
	}
	if rem := total % slotMinutes; rem != 0 {
		total += slotMinutes - rem
	}
	return total
}
