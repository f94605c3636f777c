package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	blockRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/manualblock"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/blocks/models"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// Service сервис для работы с ручными блокировками времени
type Service struct {
	blockRepo  BlockRepository
	memberRepo MemberRepository
	location   *time.Location
	logger     Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockRepo BlockRepository,
	memberRepo MemberRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		blockRepo:  blockRepo,
		memberRepo: memberRepo,
		location:   location,
		logger:     logger,
	}
}

// Create создает ручную блокировку в расписании клинера
// Доступно самому клинеру, лидеру его команды и администратору
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: creating block for member=%d on %s %s-%s by user=%d",
		req.MemberID, req.Date, req.StartTime, req.EndTime, req.Actor.UserID)

	// 1. Валидируем входные данные
	date, start, end, err := s.validateBlock(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if err := s.checkMemberAccess(ctx, req.MemberID, req.Actor); err != nil {
		s.logger.Warn("Create: user=%d cannot manage blocks of member=%d: %v", req.Actor.UserID, req.MemberID, err)
		return nil, err
	}

	// 3. Сохраняем блокировку
	created, err := s.blockRepo.Create(ctx, req.ToDomainBlock(date, start, end))
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created block id=%d", created.ID)
	return models.FromDomainBlock(created), nil
}

// Delete удаляет ручную блокировку клинера
// Блокировка другого клинера считается ненайденной
func (s *Service) Delete(ctx context.Context, memberID, id int64, actor domain.Actor) error {
	s.logger.Info("Delete: deleting block id=%d of member=%d by user=%d", id, memberID, actor.UserID)

	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	if block.MemberID != memberID {
		s.logger.Warn("Delete: block id=%d belongs to member=%d, not %d", id, block.MemberID, memberID)
		return ErrBlockNotFound
	}

	if err := s.checkMemberAccess(ctx, block.MemberID, actor); err != nil {
		s.logger.Warn("Delete: user=%d cannot delete block id=%d: %v", actor.UserID, id, err)
		return err
	}

	if err := s.blockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted block id=%d", id)
	return nil
}

// validateBlock разбирает дату и интервал блокировки
func (s *Service) validateBlock(req *models.CreateBlockRequest) (time.Time, types.TimeString, types.TimeString, error) {
	if req.MemberID <= 0 {
		return time.Time{}, "", "", fmt.Errorf("%w: memberId is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, s.location)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return time.Time{}, "", "", fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Title != nil && utf8.RuneCountInString(*req.Title) > domain.MaxSlotTitleLength {
		return time.Time{}, "", "", fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, domain.MaxSlotTitleLength)
	}

	return date, start, end, nil
}

// checkMemberAccess проверяет, что пользователь может менять расписание клинера
func (s *Service) checkMemberAccess(ctx context.Context, memberID int64, actor domain.Actor) error {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrMemberNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	if actor.IsAdmin() || actor.UserID == member.ID {
		return nil
	}

	if member.TeamID != nil {
		team, err := s.memberRepo.GetTeam(ctx, *member.TeamID)
		if err != nil && !errors.Is(err, memberRepo.ErrTeamNotFound) {
			return fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
		}
		if team != nil && team.IsLeader(actor.UserID) {
			return nil
		}
	}

	return ErrAccessDenied
}
