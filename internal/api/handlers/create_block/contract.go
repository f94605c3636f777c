package create_block

import (
	"context"

	"github.com/m04kA/SMC-TeamScheduling/internal/service/blocks/models"
)

type BlockService interface {
	Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
