package get_team_coverage

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/availability"
)

// UseCase use case для подсчёта покрытия команды
type UseCase struct {
	memberRepo MemberRepository
	merger     TeamMerger
	fanOut     int
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(memberRepo MemberRepository, merger TeamMerger, fanOut int, logger Logger) *UseCase {
	return &UseCase{
		memberRepo: memberRepo,
		merger:     merger,
		fanOut:     fanOut,
		logger:     logger,
	}
}

// Execute выполняет use case подсчёта покрытия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTeamCoverage: team=%d, date=%s, hour=%v", req.TeamID, req.Date.Format(domain.DateFormat), req.Hour)

	if req.TeamID <= 0 {
		return nil, fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Hour != nil && (*req.Hour < 0 || *req.Hour > 23) {
		return nil, fmt.Errorf("%w: hour must be within 0-23", ErrInvalidInput)
	}

	if _, err := uc.memberRepo.GetTeam(ctx, req.TeamID); err != nil {
		if errors.Is(err, memberRepo.ErrTeamNotFound) {
			uc.logger.Warn("GetTeamCoverage: team id=%d not found", req.TeamID)
			return nil, ErrTeamNotFound
		}
		uc.logger.Error("GetTeamCoverage: failed to get team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}

	members, err := uc.memberRepo.ListByTeam(ctx, req.TeamID)
	if err != nil {
		uc.logger.Error("GetTeamCoverage: failed to list members of team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to list members: %v", ErrInternal, err)
	}

	day := domain.TruncateDate(req.Date)
	merged, err := uc.merger.MergeTeam(ctx, members, domain.DateRange{Start: day, End: day}, uc.fanOut)
	if err != nil {
		uc.logger.Error("GetTeamCoverage: failed to merge availability for team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to merge availability: %v", ErrInternal, err)
	}

	var coverage domain.Coverage
	if req.Hour != nil {
		coverage = availability.TeamCoverageHour(merged, day, *req.Hour)
	} else {
		coverage = availability.TeamCoverageDay(merged, day)
	}

	partial := false
	for _, member := range merged {
		partial = partial || member.PartialData
	}

	return &Response{
		TeamID:      req.TeamID,
		Date:        day,
		Hour:        req.Hour,
		Available:   coverage.Available,
		Total:       coverage.Total,
		PartialData: partial,
	}, nil
}
