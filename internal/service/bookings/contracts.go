package bookings

import (
	"context"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// MemberRepository интерфейс репозитория клинеров
type MemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetTeam(ctx context.Context, teamID int64) (*domain.Team, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
