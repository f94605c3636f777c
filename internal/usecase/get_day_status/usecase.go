package get_day_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/availability"
)

// UseCase use case для получения статуса дня клинера и почасовой сетки
type UseCase struct {
	memberRepo MemberRepository
	merger     DayMerger
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(memberRepo MemberRepository, merger DayMerger, logger Logger) *UseCase {
	return &UseCase{
		memberRepo: memberRepo,
		merger:     merger,
		logger:     logger,
	}
}

// Execute выполняет use case получения статуса дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayStatus: member=%d, date=%s", req.MemberID, req.Date.Format(domain.DateFormat))

	fromHour, toHour, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetDayStatus: validation failed: %v", err)
		return nil, err
	}

	member, err := uc.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrMemberNotFound) {
			uc.logger.Warn("GetDayStatus: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("GetDayStatus: failed to get member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	day := domain.TruncateDate(req.Date)
	merged, err := uc.merger.MergeDay(ctx, member, day)
	if err != nil {
		uc.logger.Error("GetDayStatus: failed to merge availability for member id=%d: %v", member.ID, err)
		return nil, fmt.Errorf("%w: failed to merge availability: %v", ErrInternal, err)
	}

	summary := availability.Summarize(merged, day)

	uc.logger.Info("GetDayStatus: member id=%d, date=%s, status=%s, busy=%d",
		member.ID, domain.DateKey(day), summary.Status, summary.BusyMinutes)

	return &Response{
		MemberID:           merged.MemberID,
		DisplayName:        merged.DisplayName,
		Date:               day,
		Status:             summary.Status,
		BusyMinutes:        summary.BusyMinutes,
		Utilisation:        summary.Utilisation,
		CalendarSyncStatus: merged.CalendarSyncStatus,
		LastSynced:         merged.LastSynced,
		PartialData:        merged.PartialData,
		Slots:              merged.SlotsOn(day),
		Grid:               availability.DayGrid(merged, day, fromHour, toHour),
	}, nil
}
