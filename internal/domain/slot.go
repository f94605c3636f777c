package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// SlotSource tells where a slot came from
// Sources carry different authority: a booking is authoritative, calendar data may be stale
type SlotSource int

const (
	SourceGoogleCalendar SlotSource = iota + 1
	SourceBooking
	SourceManual
)

func (s SlotSource) String() string {
	switch s {
	case SourceGoogleCalendar:
		return "GOOGLE_CALENDAR"
	case SourceBooking:
		return "BOOKING"
	case SourceManual:
		return "MANUAL"
	}
	return fmt.Sprintf("SlotSource(%d)", int(s))
}

// MarshalText encodes the source by name for JSON responses
func (s SlotSource) MarshalText() ([]byte, error) {
	switch s {
	case SourceGoogleCalendar, SourceBooking, SourceManual:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("unknown slot source %d", int(s))
}

// IsHardConflict returns true if an overlapping busy slot of this source blocks a booking
func (s SlotSource) IsHardConflict() bool {
	switch s {
	case SourceBooking:
		return true
	case SourceGoogleCalendar, SourceManual:
		return false
	}
	return false
}

// AvailabilitySlot is a same-day half-open interval [StartTime, EndTime)
type AvailabilitySlot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	Source      SlotSource
	BookingID   *int64
	Title       *string
}

// DurationMinutes returns the slot length
func (s AvailabilitySlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// Overlaps returns true if the slot intersects [start, end)
// Touching intervals (one ends where the other starts) do not overlap
func (s AvailabilitySlot) Overlaps(start, end types.TimeString) bool {
	return s.StartTime.IsBefore(end) && s.EndTime.IsAfter(start)
}

// Validate checks the slot invariant start < end
func (s AvailabilitySlot) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("slot start %s must be before end %s", s.StartTime, s.EndTime)
	}
	return nil
}

// SortSlots orders slots by start time, then end time, then source
func SortSlots(slots []AvailabilitySlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.IsBefore(b.StartTime)
		}
		if !a.EndTime.Equal(b.EndTime) {
			return a.EndTime.IsBefore(b.EndTime)
		}
		return a.Source < b.Source
	})
}

// DateKey formats a date as the key of MemberAvailability.Slots
func DateKey(date time.Time) string {
	return date.Format(DateFormat)
}

// MemberAvailability is the merged read model of one member over a date range
type MemberAvailability struct {
	MemberID           int64
	DisplayName        string
	CalendarSyncStatus CalendarSyncStatus
	LastSynced         *time.Time
	PartialData        bool
	SyncErr            error // wraps ErrSyncFailed when calendar data could not be refreshed
	Slots              map[string][]AvailabilitySlot // DateKey -> slots sorted by start
}

// SlotsOn returns the slots for a date
func (a *MemberAvailability) SlotsOn(date time.Time) []AvailabilitySlot {
	if a == nil || a.Slots == nil {
		return nil
	}
	return a.Slots[DateKey(date)]
}

// DateRange inclusive range of calendar dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns every date of the range
func (r DateRange) Days() []time.Time {
	start := TruncateDate(r.Start)
	end := TruncateDate(r.End)

	days := make([]time.Time, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains returns true if the date falls within the range
func (r DateRange) Contains(date time.Time) bool {
	d := TruncateDate(date)
	return !d.Before(TruncateDate(r.Start)) && !d.After(TruncateDate(r.End))
}

// TruncateDate drops the time of day keeping the location
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CalendarBlock is a busy interval returned by the calendar sync adapter
type CalendarBlock struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Title     *string
}

// ManualBlock is a block entered by a cleaner or admin
type ManualBlock struct {
	ID          int64
	MemberID    int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	Title       *string
	CreatedAt   time.Time
}

// CalendarFetch is the result of one successful calendar sync adapter call
type CalendarFetch struct {
	Blocks    []CalendarBlock
	FetchedAt time.Time
}
