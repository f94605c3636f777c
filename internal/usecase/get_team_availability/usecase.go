package get_team_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/availability"
)

// UseCase use case для получения занятости команды за период
type UseCase struct {
	memberRepo MemberRepository
	merger     TeamMerger
	fanOut     int
	metrics    Metrics
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
// fanOut ограничивает число одновременных запросов к календарям
func NewUseCase(memberRepo MemberRepository, merger TeamMerger, fanOut int, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		memberRepo: memberRepo,
		merger:     merger,
		fanOut:     fanOut,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute выполняет use case получения занятости команды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTeamAvailability: team=%d, start=%s, end=%s",
		req.TeamID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetTeamAvailability: validation failed: %v", err)
		return nil, err
	}

	dateRange := domain.DateRange{
		Start: domain.TruncateDate(req.StartDate),
		End:   domain.TruncateDate(req.EndDate),
	}

	// 2. Проверяем существование команды
	if _, err := uc.memberRepo.GetTeam(ctx, req.TeamID); err != nil {
		if errors.Is(err, memberRepo.ErrTeamNotFound) {
			uc.logger.Warn("GetTeamAvailability: team id=%d not found", req.TeamID)
			return nil, ErrTeamNotFound
		}
		uc.logger.Error("GetTeamAvailability: failed to get team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}

	// 3. Получаем клинеров команды
	members, err := uc.memberRepo.ListByTeam(ctx, req.TeamID)
	if err != nil {
		uc.logger.Error("GetTeamAvailability: failed to list members of team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to list members: %v", ErrInternal, err)
	}

	// 4. Собираем занятость клинеров параллельно
	merged, err := uc.merger.MergeTeam(ctx, members, dateRange, uc.fanOut)
	if err != nil {
		uc.logger.Error("GetTeamAvailability: failed to merge availability for team id=%d: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: failed to merge availability: %v", ErrInternal, err)
	}

	response := &Response{
		TeamID:    req.TeamID,
		StartDate: dateRange.Start,
		EndDate:   dateRange.End,
		Members:   make([]MemberResult, 0, len(merged)),
	}

	for _, member := range merged {
		if member.PartialData {
			response.PartialData = true
		}

		days := make(map[string]availability.DaySummary, len(member.Slots))
		for _, day := range dateRange.Days() {
			days[domain.DateKey(day)] = availability.Summarize(member, day)
		}

		response.Members = append(response.Members, MemberResult{
			Availability: member,
			Days:         days,
		})
	}

	uc.metrics.ObserveTeamAggregation(response.PartialData)
	if response.PartialData {
		uc.logger.Warn("GetTeamAvailability: team id=%d returned partial data", req.TeamID)
	}

	uc.logger.Info("GetTeamAvailability: team id=%d, members=%d, partial=%t",
		req.TeamID, len(response.Members), response.PartialData)

	return response, nil
}
