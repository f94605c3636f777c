package apply_booking_action

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("apply_booking_action: booking not found")

	// ErrMemberNotFound возвращается, когда новый исполнитель не найден
	ErrMemberNotFound = errors.New("apply_booking_action: member not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_booking_action: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_booking_action: internal error")
)
