package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// ConflictGuard проверяет, что клинер свободен на интервал бронирования
type ConflictGuard struct {
	merger      SlotMerger
	bookingRepo BookingRepository
	logger      Logger
}

// NewConflictGuard создает новый экземпляр ConflictGuard
func NewConflictGuard(merger SlotMerger, bookingRepo BookingRepository, logger Logger) *ConflictGuard {
	return &ConflictGuard{
		merger:      merger,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Check проверяет интервал [start, start+minutes) по объединённой занятости клинера за дату
// Пересечение с другим бронированием возвращает domain.ErrSlotConflict
// Пересечения с календарём и ручными блокировками не блокируют и возвращаются как предупреждения
// excludeBookingID исключает из проверки само переводимое бронирование
func (g *ConflictGuard) Check(
	ctx context.Context,
	member *domain.Member,
	date time.Time,
	start types.TimeString,
	minutes int,
	excludeBookingID int64,
) ([]domain.AvailabilitySlot, error) {
	end, err := requestedEnd(start, minutes)
	if err != nil {
		return nil, err
	}

	day := domain.TruncateDate(date)
	merged, err := g.merger.Merge(ctx, member, domain.DateRange{Start: day, End: day})
	if err != nil {
		return nil, err
	}

	hard, soft := FindConflicts(merged.SlotsOn(day), start, end, excludeBookingID)
	if len(hard) > 0 {
		g.logger.Warn("Check: slot conflict for member_id=%d date=%s %s-%s with booking_id=%d",
			member.ID, domain.DateKey(day), start, end, derefID(hard[0].BookingID))
		return nil, conflictError(hard[0])
	}

	return soft, nil
}

// CheckBookings повторно проверяет жёсткие конфликты по бронированиям клинера
// Вызывается внутри транзакции: строки бронирований блокируются до фиксации
func (g *ConflictGuard) CheckBookings(
	ctx context.Context,
	cleanerID int64,
	date time.Time,
	start types.TimeString,
	minutes int,
	excludeBookingID int64,
) error {
	end, err := requestedEnd(start, minutes)
	if err != nil {
		return err
	}

	day := domain.TruncateDate(date)
	bookings, err := g.bookingRepo.ListByMember(ctx, domain.MemberBookingsFilter{
		CleanerID:  cleanerID,
		StartDate:  day,
		EndDate:    day,
		ExcludeIDs: []int64{excludeBookingID},
	})
	if err != nil {
		return fmt.Errorf("%w: CheckBookings - list bookings: %w", ErrInternal, err)
	}

	slots := make([]domain.AvailabilitySlot, 0, len(bookings))
	for _, booking := range bookings {
		if slot, ok := BookingSlot(booking); ok {
			slots = append(slots, slot)
		}
	}

	hard, _ := FindConflicts(slots, start, end, excludeBookingID)
	if len(hard) > 0 {
		g.logger.Warn("CheckBookings: slot conflict for member_id=%d date=%s %s-%s with booking_id=%d",
			cleanerID, domain.DateKey(day), start, end, derefID(hard[0].BookingID))
		return conflictError(hard[0])
	}

	return nil
}

// FindConflicts делит занятые слоты, пересекающие [start, end), на жёсткие и мягкие
// Касающиеся интервалы не пересекаются
func FindConflicts(slots []domain.AvailabilitySlot, start, end types.TimeString, excludeBookingID int64) (hard, soft []domain.AvailabilitySlot) {
	for _, slot := range slots {
		if slot.IsAvailable || !slot.Overlaps(start, end) {
			continue
		}
		if slot.BookingID != nil && *slot.BookingID == excludeBookingID {
			continue
		}

		if slot.Source.IsHardConflict() {
			hard = append(hard, slot)
		} else {
			soft = append(soft, slot)
		}
	}
	return hard, soft
}

func requestedEnd(start types.TimeString, minutes int) (types.TimeString, error) {
	if err := start.Validate(); err != nil {
		return "", fmt.Errorf("%w: start %q: %v", ErrInvalidInterval, start, err)
	}
	if minutes <= 0 {
		return "", fmt.Errorf("%w: duration %d minutes", ErrInvalidInterval, minutes)
	}
	end, err := start.AddMinutes(minutes)
	if err != nil {
		return "", fmt.Errorf("%w: %s + %d minutes: %v", ErrInvalidInterval, start, minutes, err)
	}
	return end, nil
}

func conflictError(slot domain.AvailabilitySlot) error {
	return fmt.Errorf("%w: booking_id=%d occupies %s-%s",
		domain.ErrSlotConflict, derefID(slot.BookingID), slot.StartTime, slot.EndTime)
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
