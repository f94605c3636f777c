package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/booking"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	memberRepo  MemberRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	memberRepo MemberRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		memberRepo:  memberRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут исполнитель, владелец виллы, лидер команды и администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// checkUserAccess проверяет права пользователя на просмотр бронирования
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	if actor.IsAdmin() || actor.UserID == booking.CleanerID || actor.UserID == booking.OwnerID {
		return nil
	}

	teamID := booking.TeamID
	if teamID == nil {
		cleaner, err := s.memberRepo.GetByID(ctx, booking.CleanerID)
		if err != nil && !errors.Is(err, memberRepo.ErrMemberNotFound) {
			return fmt.Errorf("%w: failed to get cleaner: %v", ErrInternal, err)
		}
		if cleaner != nil {
			teamID = cleaner.TeamID
		}
	}
	if teamID == nil {
		return ErrAccessDenied
	}

	team, err := s.memberRepo.GetTeam(ctx, *teamID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrTeamNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}
	if !team.IsLeader(actor.UserID) {
		return ErrAccessDenied
	}

	return nil
}
