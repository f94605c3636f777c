package domain

import "errors"

// Scheduling core error taxonomy
var (
	// ErrSyncFailed calendar data could not be refreshed, cached data was used
	ErrSyncFailed = errors.New("SYNC_FAILED")

	// ErrSlotConflict the cleaner already holds a booking overlapping the requested time
	ErrSlotConflict = errors.New("SLOT_CONFLICT")

	// ErrAlreadyTaken the booking changed concurrently, caller must refetch
	ErrAlreadyTaken = errors.New("ALREADY_TAKEN")

	// ErrInvalidTransition the action is not allowed from the booking's current status
	ErrInvalidTransition = errors.New("INVALID_TRANSITION")

	// ErrUnauthorized the actor lacks the role required for the action
	ErrUnauthorized = errors.New("UNAUTHORIZED")
)
