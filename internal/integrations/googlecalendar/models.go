package googlecalendar

import "time"

// BusyInterval занятый интервал внешнего календаря.
// Любое событие календаря блокирует весь салон, а не одного сотрудника.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет реальное пересечение с [from, to):
// граничащие интервалы пересечением не считаются
func (b BusyInterval) Overlaps(from, to time.Time) bool {
	return b.Start.Before(to) && b.End.After(from)
}

// Event событие для создания в календаре
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
}

// eventResource тело запроса/ответа Calendar API v3
type eventResource struct {
	ID      string `json:"id,omitempty"`
	Summary string `json:"summary"`
	// Status отличает реальные события от отменённых в ответах list
	Status      string        `json:"status,omitempty"`
	Description string        `json:"description,omitempty"`
	Start       eventDateTime `json:"start"`
	End         eventDateTime `json:"end"`
}

type eventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type eventList struct {
	Items []eventResource `json:"items"`
}
