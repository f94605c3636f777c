package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// DaySummary статус дня клинера с занятостью
type DaySummary struct {
	Status      domain.DayStatus
	BusyMinutes int
	Utilisation float64 // доля рабочего дня 08:00-18:00, не больше 1
}

// GridCell ячейка почасовой сетки дня
// Бронирование на несколько часов занимает одну ячейку со Span > 1
type GridCell struct {
	Hour      int
	Span      int
	Status    domain.HourStatus
	Source    *domain.SlotSource
	BookingID *int64
	Title     *string
}

// interval полуоткрытый интервал в минутах от начала суток
type interval struct {
	start int
	end   int
}

func newInterval(start, end types.TimeString) interval {
	return interval{start: start.Minutes(), end: end.Minutes()}
}

func (i interval) intersects(other interval) bool {
	return i.start < other.end && other.start < i.end
}

// BusyMinutes длительность объединения занятых интервалов, пересечения не считаются дважды
func BusyMinutes(slots []domain.AvailabilitySlot) int {
	busy := make([]interval, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAvailable {
			continue
		}
		busy = append(busy, newInterval(slot.StartTime, slot.EndTime))
	}
	if len(busy) == 0 {
		return 0
	}

	sort.Slice(busy, func(i, j int) bool {
		return busy[i].start < busy[j].start
	})

	total := 0
	current := busy[0]
	for _, next := range busy[1:] {
		if next.start <= current.end {
			if next.end > current.end {
				current.end = next.end
			}
			continue
		}
		total += current.end - current.start
		current = next
	}
	total += current.end - current.start

	return total
}

// DayStatus статус дня клинера
// Для клинеров без подключённого календаря всегда NOT_SYNCED
func DayStatus(availability *domain.MemberAvailability, date time.Time) domain.DayStatus {
	return Summarize(availability, date).Status
}

// Summarize считает статус дня и занятость
// Занятость вне рабочего дня тоже учитывается
func Summarize(availability *domain.MemberAvailability, date time.Time) DaySummary {
	busy := BusyMinutes(availability.SlotsOn(date))

	utilisation := float64(busy) / float64(domain.WorkingDayMinutes)
	if utilisation > 1 {
		utilisation = 1
	}
	summary := DaySummary{BusyMinutes: busy, Utilisation: utilisation}

	switch {
	case !availability.CalendarSyncStatus.IsConnected():
		summary.Status = domain.DayNotSynced
	case busy >= domain.BusyDayThresholdMinutes:
		summary.Status = domain.DayBusy
	case busy > 0:
		summary.Status = domain.DayPartial
	default:
		summary.Status = domain.DayAvailable
	}

	return summary
}

// HourlyStatus статус клинера в час [hour:00, hour+1:00)
// Час занят, если с ним пересекается любой занятый слот
func HourlyStatus(availability *domain.MemberAvailability, date time.Time, hour int) domain.HourStatus {
	if !availability.CalendarSyncStatus.IsConnected() {
		return domain.HourNotSynced
	}

	window := interval{start: hour * 60, end: (hour + 1) * 60}
	for _, slot := range availability.SlotsOn(date) {
		if slot.IsAvailable {
			continue
		}
		if newInterval(slot.StartTime, slot.EndTime).intersects(window) {
			return domain.HourBusy
		}
	}

	return domain.HourAvailable
}

// DayGrid почасовая сетка [fromHour, toHour) для отображения дня
// Ячейка бронирования тянется до часа, в котором начинается следующее бронирование
func DayGrid(availability *domain.MemberAvailability, date time.Time, fromHour, toHour int) []GridCell {
	slots := availability.SlotsOn(date)
	cells := make([]GridCell, 0, toHour-fromHour)

	for hour := fromHour; hour < toHour; {
		cell := GridCell{
			Hour:   hour,
			Span:   1,
			Status: HourlyStatus(availability, date, hour),
		}

		if booking, ok := bookingAt(slots, hour); ok {
			endHour := (booking.EndTime.Minutes() + 59) / 60
			if endHour > toHour {
				endHour = toHour
			}
			for next := hour + 1; next < endHour; next++ {
				if _, ok := bookingStartingAt(slots, next); ok {
					endHour = next
					break
				}
			}
			if endHour-hour > 1 {
				cell.Span = endHour - hour
			}

			source := booking.Source
			cell.Source = &source
			cell.BookingID = booking.BookingID
			cell.Title = booking.Title
		}

		cells = append(cells, cell)
		hour += cell.Span
	}

	return cells
}

// bookingAt слот бронирования для ячейки часа
// Бронирование, начинающееся в этом часе, важнее продолжающегося с предыдущих часов
func bookingAt(slots []domain.AvailabilitySlot, hour int) (domain.AvailabilitySlot, bool) {
	if slot, ok := bookingStartingAt(slots, hour); ok {
		return slot, true
	}

	window := interval{start: hour * 60, end: (hour + 1) * 60}
	for _, slot := range slots {
		if !isBookingSlot(slot) {
			continue
		}
		if newInterval(slot.StartTime, slot.EndTime).intersects(window) {
			return slot, true
		}
	}
	return domain.AvailabilitySlot{}, false
}

// bookingStartingAt первый слот бронирования, начинающийся внутри часа
func bookingStartingAt(slots []domain.AvailabilitySlot, hour int) (domain.AvailabilitySlot, bool) {
	for _, slot := range slots {
		if !isBookingSlot(slot) {
			continue
		}
		if start := slot.StartTime.Minutes(); start >= hour*60 && start < (hour+1)*60 {
			return slot, true
		}
	}
	return domain.AvailabilitySlot{}, false
}

func isBookingSlot(slot domain.AvailabilitySlot) bool {
	return slot.Source == domain.SourceBooking && !slot.IsAvailable
}

// TeamCoverageDay число клинеров со статусом дня AVAILABLE или PARTIAL
// Total включает всех переданных клинеров, в том числе NOT_SYNCED
func TeamCoverageDay(members []*domain.MemberAvailability, date time.Time) domain.Coverage {
	coverage := domain.Coverage{Total: len(members)}
	for _, member := range members {
		if DayStatus(member, date).CountsAsAvailable() {
			coverage.Available++
		}
	}
	return coverage
}

// TeamCoverageHour число клинеров, свободных в указанный час
func TeamCoverageHour(members []*domain.MemberAvailability, date time.Time, hour int) domain.Coverage {
	coverage := domain.Coverage{Total: len(members)}
	for _, member := range members {
		if HourlyStatus(member, date, hour) == domain.HourAvailable {
			coverage.Available++
		}
	}
	return coverage
}
