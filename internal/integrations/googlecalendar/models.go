package googlecalendar

import "time"

// Config параметры подключения к Google Calendar
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// Endpoint переопределяет адрес API (для тестов и прокси)
	Endpoint string

	Timeout  time.Duration
	Location *time.Location
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
