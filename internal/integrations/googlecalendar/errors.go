package googlecalendar

import "errors"

var (
	// ErrNotConnected возвращается, когда у клинера не подключён календарь
	ErrNotConnected = errors.New("googlecalendar client: calendar is not connected")

	// ErrCalendarNotFound возвращается, когда календарь не найден или нет доступа
	ErrCalendarNotFound = errors.New("googlecalendar client: calendar not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlecalendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Google Calendar
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")
)
