package availability

import "errors"

var (
	// ErrInvalidInterval возвращается, когда запрошенный интервал пуст или выходит за пределы суток
	ErrInvalidInterval = errors.New("availability: invalid interval")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
