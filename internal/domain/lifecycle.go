package domain

import "fmt"

// BookingAction is an operation requested on a booking
type BookingAction string

const (
	ActionAccept   BookingAction = "accept"
	ActionDecline  BookingAction = "decline"
	ActionAssign   BookingAction = "assign"
	ActionComplete BookingAction = "complete"
	ActionCancel   BookingAction = "cancel"
)

// transition is one row of the lifecycle table
type transition struct {
	from   BookingStatus
	action BookingAction
}

// lifecycle maps (status, action) to the resulting status
// assign keeps the booking PENDING and only changes the assignee
var lifecycle = map[transition]BookingStatus{
	{StatusPending, ActionAccept}:     StatusConfirmed,
	{StatusPending, ActionDecline}:    StatusCancelled,
	{StatusPending, ActionAssign}:     StatusPending,
	{StatusConfirmed, ActionComplete}: StatusCompleted,
	{StatusPending, ActionCancel}:     StatusCancelled,
	{StatusConfirmed, ActionCancel}:   StatusCancelled,
}

// NextStatus returns the status a booking moves to, or ErrInvalidTransition
func NextStatus(from BookingStatus, action BookingAction) (BookingStatus, error) {
	to, ok := lifecycle[transition{from: from, action: action}]
	if !ok {
		return "", fmt.Errorf("%w: %s is not allowed from %s", ErrInvalidTransition, action, from)
	}
	return to, nil
}

// IsValid returns true for known actions
func (a BookingAction) IsValid() bool {
	switch a {
	case ActionAccept, ActionDecline, ActionAssign, ActionComplete, ActionCancel:
		return true
	}
	return false
}

// NeedsSlotCheck returns true if the action must pass the conflict guard
func (a BookingAction) NeedsSlotCheck() bool {
	return a == ActionAccept || a == ActionAssign
}
