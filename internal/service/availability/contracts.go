package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// CalendarSyncAdapter получает занятость клинера из внешнего календаря
type CalendarSyncAdapter interface {
	Fetch(ctx context.Context, member *domain.Member, dateRange domain.DateRange) (*domain.CalendarFetch, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByMember(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error)
}

// ManualBlockRepository интерфейс репозитория ручных блокировок
type ManualBlockRepository interface {
	ListByMember(ctx context.Context, memberID int64, startDate, endDate time.Time) ([]*domain.ManualBlock, error)
}

// CalendarCache хранилище последней успешной выборки календаря
type CalendarCache interface {
	Load(ctx context.Context, memberID int64, dateRange domain.DateRange) ([]domain.CalendarBlock, error)
	Store(ctx context.Context, memberID int64, dateRange domain.DateRange, blocks []domain.CalendarBlock, fetchedAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotMerger строит объединённое представление занятости клинера
type SlotMerger interface {
	Merge(ctx context.Context, member *domain.Member, dateRange domain.DateRange) (*domain.MemberAvailability, error)
}

// Metrics метрики синхронизации календарей
type Metrics interface {
	ObserveCalendarFetch(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
