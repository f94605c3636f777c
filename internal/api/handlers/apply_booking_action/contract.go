package apply_booking_action

import (
	"context"

	applyBookingAction "github.com/m04kA/SMC-TeamScheduling/internal/usecase/apply_booking_action"
)

type ApplyBookingActionUseCase interface {
	Execute(ctx context.Context, req *applyBookingAction.Request) (*applyBookingAction.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
