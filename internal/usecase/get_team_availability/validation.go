package get_team_availability

import (
	"fmt"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TeamID <= 0 {
		return fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	start := domain.TruncateDate(req.StartDate)
	end := domain.TruncateDate(req.EndDate)
	if end.Before(start) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	days := len(domain.DateRange{Start: start, End: end}.Days())
	if days > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days, domain.MaxAvailabilityRangeDays)
	}

	return nil
}
