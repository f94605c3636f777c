package apply_booking_action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/booking"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
	"github.com/m04kA/SMC-TeamScheduling/pkg/txmanager"
)

// Результаты перехода для метрик
const (
	resultSuccess           = "success"
	resultSlotConflict      = "slot_conflict"
	resultAlreadyTaken      = "already_taken"
	resultInvalidTransition = "invalid_transition"
	resultUnauthorized      = "unauthorized"
	resultInvalidInput      = "invalid_input"
	resultNotFound          = "not_found"
	resultError             = "error"
)

// UseCase use case для применения действия к бронированию
type UseCase struct {
	bookingRepo  BookingRepository
	memberRepo   MemberRepository
	guard        ConflictGuard
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	memberRepo MemberRepository,
	guard ConflictGuard,
	txManager TransactionManager,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		memberRepo:   memberRepo,
		guard:        guard,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет действие над бронированием
// Порядок проверок: допустимость перехода, права, дата завершения, пересечения, конкурентное изменение
// Условное обновление выполняется в сериализуемой транзакции вместе с повторной проверкой пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	response, err := uc.execute(ctx, req)
	uc.metrics.ObserveBookingTransition(string(req.Action), resultOf(err))
	return response, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyBookingAction: booking=%d, action=%s, actor=%d, role=%s",
		req.BookingID, req.Action, req.Actor.UserID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyBookingAction: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ApplyBookingAction: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ApplyBookingAction: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Допустим ли переход из текущего статуса
	nextStatus, err := domain.NextStatus(booking.Status, req.Action)
	if err != nil {
		uc.logger.Warn("ApplyBookingAction: booking id=%d: %v", booking.ID, err)
		return nil, err
	}

	// 4. Права исполнителя действия
	if err := uc.authorize(ctx, booking, req); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			uc.logger.Warn("ApplyBookingAction: actor=%d not allowed to %s booking id=%d",
				req.Actor.UserID, req.Action, booking.ID)
		}
		return nil, err
	}

	// 5. Завершить можно только в день бронирования или позже
	if req.Action == domain.ActionComplete {
		if err := validateCompletionDate(booking, uc.timeProvider.Now(), uc.location); err != nil {
			uc.logger.Warn("ApplyBookingAction: %v", err)
			return nil, err
		}
	}

	patch := domain.BookingPatch{
		Status:    nextStatus,
		CleanerID: booking.CleanerID,
		TeamID:    booking.TeamID,
	}

	// 6. Проверка пересечений для клинера, который займёт время
	var warnings []domain.AvailabilitySlot
	if req.Action.NeedsSlotCheck() {
		targetID := booking.CleanerID
		if req.Action == domain.ActionAssign {
			targetID = *req.NewAssigneeID
		}

		target, err := uc.memberRepo.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, memberRepo.ErrMemberNotFound) {
				uc.logger.Warn("ApplyBookingAction: member id=%d not found", targetID)
				return nil, ErrMemberNotFound
			}
			uc.logger.Error("ApplyBookingAction: failed to get member id=%d: %v", targetID, err)
			return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
		}

		warnings, err = uc.guard.Check(ctx, target, booking.BookingDate, booking.StartTime, booking.DurationMinutes, booking.ID)
		if err != nil {
			if errors.Is(err, domain.ErrSlotConflict) {
				uc.logger.Warn("ApplyBookingAction: booking id=%d: %v", booking.ID, err)
				return nil, err
			}
			uc.logger.Error("ApplyBookingAction: conflict check failed for booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
		}

		if req.Action == domain.ActionAssign {
			patch.CleanerID = target.ID
			patch.TeamID = target.TeamID
		}
	}

	// Исполнитель фиксируется для всех действий, кроме отмены администратором
	var expectedCleanerID *int64
	if req.Action != domain.ActionCancel {
		cleanerID := booking.CleanerID
		expectedCleanerID = &cleanerID
	}

	// 7. Повторная проверка и условное обновление в сериализуемой транзакции
	var updated *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.Action.NeedsSlotCheck() {
			if err := uc.guard.CheckBookings(txCtx, patch.CleanerID, booking.BookingDate, booking.StartTime, booking.DurationMinutes, booking.ID); err != nil {
				return err
			}
		}

		result, err := uc.bookingRepo.ConditionalUpdate(txCtx, booking.ID, booking.Status, expectedCleanerID, patch)
		if err != nil {
			return err
		}

		updated = result
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotConflict):
			uc.logger.Warn("ApplyBookingAction: booking id=%d: %v", booking.ID, err)
			return nil, err
		case errors.Is(err, bookingRepo.ErrConditionNotMet), errors.Is(err, txmanager.ErrSerialization):
			uc.logger.Warn("ApplyBookingAction: booking id=%d changed concurrently: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: booking id=%d", domain.ErrAlreadyTaken, booking.ID)
		default:
			uc.logger.Error("ApplyBookingAction: failed to update booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ApplyBookingAction: booking id=%d %s -> %s, cleaner=%d, warnings=%d",
		updated.ID, booking.Status, updated.Status, updated.CleanerID, len(warnings))

	return newResponse(updated, warnings), nil
}

// authorize проверяет, что актор может выполнить действие
func (uc *UseCase) authorize(ctx context.Context, booking *domain.Booking, req *Request) error {
	actor := req.Actor

	switch req.Action {
	case domain.ActionCancel:
		if actor.IsAdmin() {
			return nil
		}

	case domain.ActionComplete:
		if actor.UserID == booking.CleanerID {
			return nil
		}

	case domain.ActionAccept, domain.ActionDecline:
		if actor.UserID == booking.CleanerID {
			return nil
		}
		team, err := uc.teamOf(ctx, booking)
		if err != nil {
			return err
		}
		if team != nil && team.IsLeader(actor.UserID) {
			return nil
		}

	case domain.ActionAssign:
		team, err := uc.teamOf(ctx, booking)
		if err != nil {
			return err
		}
		if team != nil && team.IsLeader(actor.UserID) && team.HasMember(*req.NewAssigneeID) {
			return nil
		}
	}

	return fmt.Errorf("%w: actor=%d role=%s action=%s", domain.ErrUnauthorized, actor.UserID, actor.Role, req.Action)
}

// teamOf возвращает команду бронирования или текущего исполнителя
// nil - исполнитель не состоит в команде
func (uc *UseCase) teamOf(ctx context.Context, booking *domain.Booking) (*domain.Team, error) {
	teamID := booking.TeamID
	if teamID == nil {
		cleaner, err := uc.memberRepo.GetByID(ctx, booking.CleanerID)
		if err != nil {
			if errors.Is(err, memberRepo.ErrMemberNotFound) {
				return nil, nil
			}
			uc.logger.Error("ApplyBookingAction: failed to get member id=%d: %v", booking.CleanerID, err)
			return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
		}
		teamID = cleaner.TeamID
	}
	if teamID == nil {
		return nil, nil
	}

	team, err := uc.memberRepo.GetTeam(ctx, *teamID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrTeamNotFound) {
			return nil, nil
		}
		uc.logger.Error("ApplyBookingAction: failed to get team id=%d: %v", *teamID, err)
		return nil, fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}

	return team, nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, domain.ErrSlotConflict):
		return resultSlotConflict
	case errors.Is(err, domain.ErrAlreadyTaken):
		return resultAlreadyTaken
	case errors.Is(err, domain.ErrInvalidTransition):
		return resultInvalidTransition
	case errors.Is(err, domain.ErrUnauthorized):
		return resultUnauthorized
	case errors.Is(err, ErrInvalidInput):
		return resultInvalidInput
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrMemberNotFound):
		return resultNotFound
	default:
		return resultError
	}
}
