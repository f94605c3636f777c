package get_day_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// MemberRepository интерфейс репозитория клинеров
type MemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
}

// DayMerger строит занятость клинера за день
type DayMerger interface {
	MergeDay(ctx context.Context, member *domain.Member, date time.Time) (*domain.MemberAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
