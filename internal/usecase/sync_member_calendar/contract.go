package sync_member_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// MemberRepository интерфейс репозитория клинеров
type MemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetTeam(ctx context.Context, teamID int64) (*domain.Team, error)
	UpdateSyncStatus(ctx context.Context, memberID int64, status domain.CalendarSyncStatus, lastSynced *time.Time) error
}

// SlotMerger строит занятость клинера, обновляя кэш календаря
type SlotMerger interface {
	Merge(ctx context.Context, member *domain.Member, dateRange domain.DateRange) (*domain.MemberAvailability, error)
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
