package delete_block

import (
	"context"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

type BlockService interface {
	Delete(ctx context.Context, memberID, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
