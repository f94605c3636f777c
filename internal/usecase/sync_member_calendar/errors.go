package sync_member_calendar

import "errors"

var (
	// ErrMemberNotFound возвращается, когда клинер не найден
	ErrMemberNotFound = errors.New("sync_member_calendar: member not found")

	// ErrNotConnected возвращается, когда календарь клинера не подключён
	ErrNotConnected = errors.New("sync_member_calendar: calendar is not connected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sync_member_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sync_member_calendar: internal error")
)
