package apply_booking_action

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ConditionalUpdate(
		ctx context.Context,
		id int64,
		expectedStatus domain.BookingStatus,
		expectedCleanerID *int64,
		patch domain.BookingPatch,
	) (*domain.Booking, error)
}

// MemberRepository интерфейс репозитория клинеров и команд
type MemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetTeam(ctx context.Context, teamID int64) (*domain.Team, error)
}

// ConflictGuard проверка пересечений по объединённой занятости клинера
type ConflictGuard interface {
	Check(
		ctx context.Context,
		member *domain.Member,
		date time.Time,
		start types.TimeString,
		minutes int,
		excludeBookingID int64,
	) ([]domain.AvailabilitySlot, error)
	CheckBookings(
		ctx context.Context,
		cleanerID int64,
		date time.Time,
		start types.TimeString,
		minutes int,
		excludeBookingID int64,
	) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики переходов бронирований
type Metrics interface {
	ObserveBookingTransition(action, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
