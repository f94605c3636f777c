package get_day_status

import (
	"fmt"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// validateRequest валидирует входные данные и возвращает границы сетки
func validateRequest(req *Request) (fromHour, toHour int, err error) {
	if req.MemberID <= 0 {
		return 0, 0, fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return 0, 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	fromHour, toHour = domain.WorkingDayStartHour, domain.WorkingDayEndHour
	if req.FromHour != nil {
		fromHour = *req.FromHour
	}
	if req.ToHour != nil {
		toHour = *req.ToHour
	}

	if fromHour < 0 || toHour > 24 || fromHour >= toHour {
		return 0, 0, fmt.Errorf("%w: invalid hour range %d-%d", ErrInvalidInput, fromHour, toHour)
	}

	return fromHour, toHour, nil
}
