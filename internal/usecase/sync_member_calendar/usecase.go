package sync_member_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
)

// UseCase use case для принудительной синхронизации календаря клинера
type UseCase struct {
	memberRepo   MemberRepository
	merger       SlotMerger
	horizonDays  int
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// horizonDays - сколько дней вперёд от сегодняшнего обновляется кэш
func NewUseCase(memberRepo MemberRepository, merger SlotMerger, horizonDays int, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		memberRepo:   memberRepo,
		merger:       merger,
		horizonDays:  horizonDays,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute синхронизирует календарь клинера и сохраняет статус синхронизации
// Ошибка календаря не возвращается: статус становится SYNC_FAILED, кэш остаётся прежним
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SyncMemberCalendar: member=%d, actor=%d", req.MemberID, req.Actor.UserID)

	if req.MemberID <= 0 || req.Actor.UserID <= 0 {
		return nil, fmt.Errorf("%w: memberID and actor are required", ErrInvalidInput)
	}

	member, err := uc.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrMemberNotFound) {
			uc.logger.Warn("SyncMemberCalendar: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("SyncMemberCalendar: failed to get member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	if err := uc.authorize(ctx, member, req.Actor); err != nil {
		uc.logger.Warn("SyncMemberCalendar: actor=%d not allowed to sync member id=%d", req.Actor.UserID, member.ID)
		return nil, err
	}

	if !member.CalendarSyncStatus.IsConnected() {
		uc.logger.Warn("SyncMemberCalendar: member id=%d calendar status=%s", member.ID, member.CalendarSyncStatus)
		return nil, ErrNotConnected
	}

	today := domain.TruncateDate(uc.timeProvider.Now().In(uc.location))
	dateRange := domain.DateRange{Start: today, End: today.AddDate(0, 0, uc.horizonDays)}

	// Отмена запроса не прерывает синхронизацию, время ограничено таймаутом выборки в Merger
	ctx = context.WithoutCancel(ctx)

	merged, err := uc.merger.Merge(ctx, member, dateRange)
	if err != nil {
		uc.logger.Error("SyncMemberCalendar: failed to merge availability for member id=%d: %v", member.ID, err)
		return nil, fmt.Errorf("%w: failed to merge availability: %v", ErrInternal, err)
	}

	if merged.SyncErr != nil {
		uc.logger.Warn("SyncMemberCalendar: %v", merged.SyncErr)
	}

	// lastSynced меняется только при успешной выборке
	var lastSynced *time.Time
	if !merged.PartialData {
		lastSynced = merged.LastSynced
	}

	if err := uc.memberRepo.UpdateSyncStatus(ctx, member.ID, merged.CalendarSyncStatus, lastSynced); err != nil {
		uc.logger.Error("SyncMemberCalendar: failed to update sync status for member id=%d: %v", member.ID, err)
		return nil, fmt.Errorf("%w: failed to update sync status: %v", ErrInternal, err)
	}

	uc.logger.Info("SyncMemberCalendar: member id=%d status=%s partial=%t",
		member.ID, merged.CalendarSyncStatus, merged.PartialData)

	return &Response{
		MemberID:           member.ID,
		CalendarSyncStatus: merged.CalendarSyncStatus,
		LastSynced:         merged.LastSynced,
		PartialData:        merged.PartialData,
		StartDate:          dateRange.Start,
		EndDate:            dateRange.End,
	}, nil
}

// authorize синхронизировать может сам клинер, лидер его команды или администратор
func (uc *UseCase) authorize(ctx context.Context, member *domain.Member, actor domain.Actor) error {
	if actor.IsAdmin() || actor.UserID == member.ID {
		return nil
	}

	if member.TeamID != nil {
		team, err := uc.memberRepo.GetTeam(ctx, *member.TeamID)
		if err != nil && !errors.Is(err, memberRepo.ErrTeamNotFound) {
			return fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
		}
		if team != nil && team.IsLeader(actor.UserID) {
			return nil
		}
	}

	return fmt.Errorf("%w: actor=%d cannot sync member id=%d", domain.ErrUnauthorized, actor.UserID, member.ID)
}
