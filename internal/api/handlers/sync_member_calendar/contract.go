package sync_member_calendar

import (
	"context"

	syncMemberCalendar "github.com/m04kA/SMC-TeamScheduling/internal/usecase/sync_member_calendar"
)

type SyncMemberCalendarUseCase interface {
	Execute(ctx context.Context, req *syncMemberCalendar.Request) (*syncMemberCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
