package sync_member_calendar

import (
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
)

// Request модель запроса синхронизации календаря клинера
type Request struct {
	MemberID int64
	Actor    domain.Actor
}

// Response модель ответа
type Response struct {
	MemberID           int64
	CalendarSyncStatus domain.CalendarSyncStatus
	LastSynced         *time.Time
	PartialData        bool // календарь недоступен, использован кэш
	StartDate          time.Time
	EndDate            time.Time
}
