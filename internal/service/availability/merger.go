package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/calendarcache"
)

// Результаты обращения к календарю для метрик
const (
	FetchResultSuccess = "success"
	FetchResultFailure = "failure"
	FetchResultCached  = "cached"
	FetchResultSkipped = "skipped"
)

// titleSeparator разделитель названия услуги и объекта в заголовке слота
const titleSeparator = " · "

// Merger объединяет занятость из календаря, бронирований и ручных блокировок
type Merger struct {
	calendar     CalendarSyncAdapter
	bookingRepo  BookingRepository
	blockRepo    ManualBlockRepository
	cache        CalendarCache
	txManager    TransactionManager
	fetchTimeout time.Duration
	metrics      Metrics
	logger       Logger
}

// NewMerger создает новый экземпляр Merger
func NewMerger(
	calendar CalendarSyncAdapter,
	bookingRepo BookingRepository,
	blockRepo ManualBlockRepository,
	cache CalendarCache,
	txManager TransactionManager,
	fetchTimeout time.Duration,
	metrics Metrics,
	logger Logger,
) *Merger {
	return &Merger{
		calendar:     calendar,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		cache:        cache,
		txManager:    txManager,
		fetchTimeout: fetchTimeout,
		metrics:      metrics,
		logger:       logger,
	}
}

// Merge строит занятость клинера за период
// Ошибка календаря не прерывает сборку: используются закэшированные данные, выставляется PartialData
// Ошибки чтения бронирований и ручных блокировок возвращаются вызывающему
func (m *Merger) Merge(ctx context.Context, member *domain.Member, dateRange domain.DateRange) (*domain.MemberAvailability, error) {
	result := &domain.MemberAvailability{
		MemberID:           member.ID,
		DisplayName:        member.DisplayName,
		CalendarSyncStatus: member.CalendarSyncStatus,
		LastSynced:         member.LastSynced,
		Slots:              make(map[string][]domain.AvailabilitySlot),
	}
	for _, day := range dateRange.Days() {
		result.Slots[domain.DateKey(day)] = make([]domain.AvailabilitySlot, 0)
	}

	if member.CalendarSyncStatus.IsConnected() {
		blocks := m.calendarBlocks(ctx, member, dateRange, result)
		for _, block := range blocks {
			addSlot(result, block.Date, domain.AvailabilitySlot{
				StartTime:   block.StartTime,
				EndTime:     block.EndTime,
				IsAvailable: false,
				Source:      domain.SourceGoogleCalendar,
				Title:       block.Title,
			})
		}
	} else {
		m.metrics.ObserveCalendarFetch(FetchResultSkipped)
	}

	bookings, err := m.bookingRepo.ListByMember(ctx, domain.MemberBookingsFilter{
		CleanerID: member.ID,
		StartDate: dateRange.Start,
		EndDate:   dateRange.End,
	})
	if err != nil {
		m.logger.Error("Merge: failed to list bookings for member_id=%d: %v", member.ID, err)
		return nil, fmt.Errorf("%w: Merge - list bookings: %v", ErrInternal, err)
	}
	for _, booking := range bookings {
		slot, ok := BookingSlot(booking)
		if !ok {
			m.logger.Warn("Merge: skipping booking id=%d with invalid interval", booking.ID)
			continue
		}
		addSlot(result, booking.BookingDate, slot)
	}

	blocks, err := m.blockRepo.ListByMember(ctx, member.ID, dateRange.Start, dateRange.End)
	if err != nil {
		m.logger.Error("Merge: failed to list manual blocks for member_id=%d: %v", member.ID, err)
		return nil, fmt.Errorf("%w: Merge - list manual blocks: %v", ErrInternal, err)
	}
	for _, block := range blocks {
		addSlot(result, block.Date, domain.AvailabilitySlot{
			StartTime:   block.StartTime,
			EndTime:     block.EndTime,
			IsAvailable: block.IsAvailable,
			Source:      domain.SourceManual,
			Title:       block.Title,
		})
	}

	for key := range result.Slots {
		domain.SortSlots(result.Slots[key])
	}

	return result, nil
}

// MergeDay строит занятость клинера за один день
func (m *Merger) MergeDay(ctx context.Context, member *domain.Member, date time.Time) (*domain.MemberAvailability, error) {
	day := domain.TruncateDate(date)
	return m.Merge(ctx, member, domain.DateRange{Start: day, End: day})
}

// MergeTeam строит занятость клинеров параллельно, не больше limit одновременно
// Сбой календаря одного клинера не влияет на остальных, результат в порядке members
func (m *Merger) MergeTeam(ctx context.Context, members []*domain.Member, dateRange domain.DateRange, limit int) ([]*domain.MemberAvailability, error) {
	results := make([]*domain.MemberAvailability, len(members))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, member := range members {
		g.Go(func() error {
			merged, err := m.Merge(gctx, member, dateRange)
			if err != nil {
				return err
			}
			results[i] = merged
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// calendarBlocks получает блоки календаря, при ошибке подставляет кэш и помечает результат как частичный
func (m *Merger) calendarBlocks(ctx context.Context, member *domain.Member, dateRange domain.DateRange, result *domain.MemberAvailability) []domain.CalendarBlock {
	fetchCtx, cancel := context.WithTimeout(ctx, m.fetchTimeout)
	defer cancel()

	fetched, err := m.calendar.Fetch(fetchCtx, member, dateRange)
	if err == nil {
		m.metrics.ObserveCalendarFetch(FetchResultSuccess)

		fetchedAt := fetched.FetchedAt
		result.CalendarSyncStatus = domain.SyncSynced
		result.LastSynced = &fetchedAt

		err := m.txManager.Do(ctx, func(ctx context.Context) error {
			return m.cache.Store(ctx, member.ID, dateRange, fetched.Blocks, fetchedAt)
		})
		if err != nil {
			// Кэш вспомогательный, ответ строим из свежих данных
			m.logger.Warn("Merge: failed to store calendar cache for member_id=%d: %v", member.ID, err)
		}

		return fetched.Blocks
	}

	result.SyncErr = fmt.Errorf("%w: member_id=%d: %w", domain.ErrSyncFailed, member.ID, err)
	m.logger.Warn("Merge: falling back to cache: %v", result.SyncErr)

	result.CalendarSyncStatus = domain.SyncFailed
	result.PartialData = true

	cached, cacheErr := m.cache.Load(ctx, member.ID, dateRange)
	if cacheErr != nil {
		if !errors.Is(cacheErr, calendarcache.ErrCacheMiss) {
			m.logger.Error("Merge: failed to load calendar cache for member_id=%d: %v", member.ID, cacheErr)
		}
		m.metrics.ObserveCalendarFetch(FetchResultFailure)
		return nil
	}

	m.metrics.ObserveCalendarFetch(FetchResultCached)
	return cached
}

// BookingSlot превращает бронирование в занятый слот [start, start+duration)
// ok = false, если бронирование не занимает время или интервал некорректен
func BookingSlot(booking *domain.Booking) (domain.AvailabilitySlot, bool) {
	if !booking.IsActive() || booking.DurationMinutes <= 0 {
		return domain.AvailabilitySlot{}, false
	}

	endTime, err := booking.EndTime()
	if err != nil {
		return domain.AvailabilitySlot{}, false
	}

	bookingID := booking.ID
	title := bookingTitle(booking)

	return domain.AvailabilitySlot{
		StartTime:   booking.StartTime,
		EndTime:     endTime,
		IsAvailable: false,
		Source:      domain.SourceBooking,
		BookingID:   &bookingID,
		Title:       &title,
	}, true
}

func bookingTitle(booking *domain.Booking) string {
	switch {
	case booking.ServiceName != "" && booking.PropertyName != "":
		return booking.ServiceName + titleSeparator + booking.PropertyName
	case booking.ServiceName != "":
		return booking.ServiceName
	default:
		return booking.PropertyName
	}
}

func addSlot(result *domain.MemberAvailability, date time.Time, slot domain.AvailabilitySlot) {
	if slot.Validate() != nil {
		return
	}
	key := domain.DateKey(date)
	if _, ok := result.Slots[key]; !ok {
		return
	}
	result.Slots[key] = append(result.Slots[key], slot)
}

