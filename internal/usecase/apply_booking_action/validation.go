package apply_booking_action

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor userID must be positive", ErrInvalidInput)
	}

	if !req.Action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if req.Action == domain.ActionAssign {
		if req.NewAssigneeID == nil || *req.NewAssigneeID <= 0 {
			return fmt.Errorf("%w: newAssigneeId is required for assign", ErrInvalidInput)
		}
	} else if req.NewAssigneeID != nil {
		return fmt.Errorf("%w: newAssigneeId is only allowed for assign", ErrInvalidInput)
	}

	return nil
}

// validateCompletionDate проверяет, что день бронирования уже наступил
// Даты сравниваются в локации сервиса
func validateCompletionDate(booking *domain.Booking, now time.Time, location *time.Location) error {
	today := domain.DateKey(now.In(location))
	if today < domain.DateKey(booking.BookingDate) {
		return fmt.Errorf("%w: booking id=%d cannot be completed before %s",
			domain.ErrInvalidTransition, booking.ID, domain.DateKey(booking.BookingDate))
	}
	return nil
}
