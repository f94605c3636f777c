package domain

// Working day reference used by day-level coverage
const (
	WorkingDayStartHour = 8
	WorkingDayEndHour   = 18
	WorkingDayMinutes   = (WorkingDayEndHour - WorkingDayStartHour) * 60

	// BusyDayThresholdMinutes busy time at or above this makes a day BUSY
	BusyDayThresholdMinutes = 8 * 60
)

// Business validation constants
const (
	MaxAvailabilityRangeDays = 62
	MaxSlotTitleLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, которые превращаются в BOOKING слоты
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
