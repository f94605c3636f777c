package get_team_coverage

import (
	"context"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// MemberRepository интерфейс репозитория клинеров и команд
type MemberRepository interface {
	GetTeam(ctx context.Context, teamID int64) (*domain.Team, error)
	ListByTeam(ctx context.Context, teamID int64) ([]*domain.Member, error)
}

// TeamMerger строит занятость клинеров команды
type TeamMerger interface {
	MergeTeam(ctx context.Context, members []*domain.Member, dateRange domain.DateRange, limit int) ([]*domain.MemberAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
