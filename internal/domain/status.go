package domain

// DayStatus day-level availability of a member
type DayStatus string

const (
	DayAvailable DayStatus = "AVAILABLE"
	DayPartial   DayStatus = "PARTIAL"
	DayBusy      DayStatus = "BUSY"
	DayNotSynced DayStatus = "NOT_SYNCED"
)

// CountsAsAvailable returns true if the member contributes to team coverage
func (s DayStatus) CountsAsAvailable() bool {
	return s == DayAvailable || s == DayPartial
}

// HourStatus hour-level availability of a member
type HourStatus string

const (
	HourAvailable HourStatus = "AVAILABLE"
	HourBusy      HourStatus = "BUSY"
	HourNotSynced HourStatus = "NOT_SYNCED"
)

// Coverage number of available members out of the total
type Coverage struct {
	Available int
	Total     int
}
