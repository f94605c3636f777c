package blocks

import (
	"context"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// BlockRepository интерфейс репозитория ручных блокировок
type BlockRepository interface {
	Create(ctx context.Context, block *domain.ManualBlock) (*domain.ManualBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.ManualBlock, error)
	Delete(ctx context.Context, id int64) error
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
