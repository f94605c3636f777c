package get_day_status

import (
	"context"

	getDayStatus "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_day_status"
)

type GetDayStatusUseCase interface {
	Execute(ctx context.Context, req *getDayStatus.Request) (*getDayStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
