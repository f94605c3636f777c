package domain

import (
	"slices"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a villa cleaning job
type Booking struct {
	ID              int64
	Status          BookingStatus
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Price           float64

	CleanerID  int64
	OwnerID    int64
	PropertyID int64
	TeamID     *int64 // set when the assigned cleaner belongs to a team

	// Denormalized data for display
	ServiceName  string
	PropertyName string

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies the cleaner's time
func (b *Booking) IsActive() bool {
	return slices.Contains(ActiveStatuses, b.Status)
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// Hours returns the booking duration in hours
func (b *Booking) Hours() float64 {
	return float64(b.DurationMinutes) / 60
}

// EndTime returns the end of the booking interval (exclusive)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsTerminal returns true for COMPLETED and CANCELLED
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// BookingPatch fields changed by a lifecycle transition
type BookingPatch struct {
	Status    BookingStatus
	CleanerID int64
	TeamID    *int64
}

// MemberBookingsFilter фильтр бронирований клинера за период
type MemberBookingsFilter struct {
	CleanerID       int64
	StartDate       time.Time
	EndDate         time.Time
	IncludeInactive bool
	ExcludeIDs      []int64
}
