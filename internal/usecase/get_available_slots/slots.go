package get_available_slots

import (
	"time"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/internal/integrations/googlecalendar"
)

// generateCandidateSlots генерирует все возможные начала слотов на день:
// от открытия до закрытия с фиксированным шагом, конец слота не выходит
// за время закрытия.
func generateCandidateSlots(schedule domain.Schedule, date time.Time) []time.Time {
	open, close := schedule.DayWindow(date)
	step := time.Duration(schedule.SlotMinutes) * time.Minute

	slots := make([]time.Time, 0)
	for start := open; !start.Add(step).After(close); start = start.Add(step) {
		slots = append(slots, start)
	}

	return slots
}

// filterPastSlots убирает слоты, уже начавшиеся к текущему моменту.
// Для будущих дат список не меняется.
func filterPastSlots(slots []time.Time, now time.Time) []time.Time {
	filtered := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		if slot.After(now) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// intervalsOverlap проверяет РЕАЛЬНОЕ пересечение временных интервалов.
// Используются строгие неравенства: если один интервал заканчивается ровно
// там, где начинается другой, пересечения НЕТ.
//
// Примеры:
// - Слот 11:30-12:00, занятость 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, занятость 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, занятость 12:00-12:30 → НЕТ пересечения (граничат)
func intervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// slotAvailable вычисляет доступность одного слота.
// Интервалы внешнего календаря блокируют всех мастеров сразу.
// Внутренние записи: для конкретного мастера достаточно одного пересечения,
// для "любого" слот занят, только когда заняты ВСЕ реальные мастера.
func slotAvailable(
	start, end time.Time,
	calendarBusy []googlecalendar.BusyInterval,
	appointments []*domain.Appointment,
	staff domain.StaffSelector,
	realStaffCount int,
) bool {
	for _, busy := range calendarBusy {
		if intervalsOverlap(start, end, busy.Start, busy.End) {
			return false
		}
	}

	if !staff.IsAny() {
		// Записи уже отфильтрованы по мастеру на уровне репозитория
		for _, appt := range appointments {
			if appt.Overlaps(start, end) {
				return false
			}
		}
		return true
	}

	busyStaff := make(map[int64]struct{})
	for _, appt := range appointments {
		if appt.StaffID == nil {
			continue
		}
		if appt.Overlaps(start, end) {
			busyStaff[*appt.StaffID] = struct{}{}
		}
	}

	return len(busyStaff) < realStaffCount
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
