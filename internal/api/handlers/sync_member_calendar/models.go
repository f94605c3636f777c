package sync_member_calendar

import (
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	syncMemberCalendar "github.com/m04kA/SMC-TeamScheduling/internal/usecase/sync_member_calendar"
)

// SyncResponse HTTP response model
type SyncResponse struct {
	MemberID           int64      `json:"memberId"`
	CalendarSyncStatus string     `json:"calendarSyncStatus"`
	LastSynced         *time.Time `json:"lastSynced,omitempty"`
	PartialData        bool       `json:"partialData"`
	StartDate          string     `json:"startDate"`
	EndDate            string     `json:"endDate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *syncMemberCalendar.Response) *SyncResponse {
	return &SyncResponse{
		MemberID:           resp.MemberID,
		CalendarSyncStatus: string(resp.CalendarSyncStatus),
		LastSynced:         resp.LastSynced,
		PartialData:        resp.PartialData,
		StartDate:          resp.StartDate.Format(domain.DateFormat),
		EndDate:            resp.EndDate.Format(domain.DateFormat),
	}
}
