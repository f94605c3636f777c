package availability

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/calendarcache"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

var errCalendarDown = errors.New("calendar unavailable")

type fakeCalendar struct {
	mu     sync.Mutex
	blocks map[int64][]domain.CalendarBlock
	fail   map[int64]bool
	calls  int
}

func (f *fakeCalendar) Fetch(_ context.Context, member *domain.Member, dateRange domain.DateRange) (*domain.CalendarFetch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.fail[member.ID] {
		return nil, errCalendarDown
	}

	blocks := make([]domain.CalendarBlock, 0)
	for _, b := range f.blocks[member.ID] {
		if dateRange.Contains(b.Date) {
			blocks = append(blocks, b)
		}
	}
	return &domain.CalendarFetch{Blocks: blocks, FetchedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookings) ListByMember(_ context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	excluded := make(map[int64]bool, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = true
	}

	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.CleanerID != filter.CleanerID || excluded[b.ID] {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		if !(domain.DateRange{Start: filter.StartDate, End: filter.EndDate}).Contains(b.BookingDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeBlocks struct {
	blocks []*domain.ManualBlock
}

func (f *fakeBlocks) ListByMember(_ context.Context, memberID int64, startDate, endDate time.Time) ([]*domain.ManualBlock, error) {
	out := make([]*domain.ManualBlock, 0)
	for _, b := range f.blocks {
		if b.MemberID == memberID && (domain.DateRange{Start: startDate, End: endDate}).Contains(b.Date) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[int64][]domain.CalendarBlock
	stores  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64][]domain.CalendarBlock)}
}

func (f *fakeCache) Load(_ context.Context, memberID int64, _ domain.DateRange) ([]domain.CalendarBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blocks, ok := f.entries[memberID]
	if !ok {
		return nil, calendarcache.ErrCacheMiss
	}
	return blocks, nil
}

func (f *fakeCache) Store(_ context.Context, memberID int64, _ domain.DateRange, blocks []domain.CalendarBlock, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores++
	f.entries[memberID] = blocks
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	mu      sync.Mutex
	results map[string]int
}

func (f *fakeMetrics) ObserveCalendarFetch(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.results == nil {
		f.results = make(map[string]int)
	}
	f.results[result]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDay = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func booking(id, cleanerID int64, status domain.BookingStatus, start string, minutes int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Status:          status,
		BookingDate:     testDay,
		StartTime:       ts(start),
		DurationMinutes: minutes,
		CleanerID:       cleanerID,
		ServiceName:     "Deep clean",
		PropertyName:    "Villa Sunset",
	}
}

func syncedMember(id int64) *domain.Member {
	return &domain.Member{ID: id, DisplayName: "Cleaner", CalendarSyncStatus: domain.SyncSynced}
}
