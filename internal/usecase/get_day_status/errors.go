package get_day_status

import "errors"

var (
	// ErrMemberNotFound возвращается, когда клинер не найден
	ErrMemberNotFound = errors.New("get_day_status: member not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_status: internal error")
)
