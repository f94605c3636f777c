package apply_booking_action

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/calendarcache"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/availability"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

// memoryBookings хранилище бронирований в памяти с условной записью
type memoryBookings struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

func newMemoryBookings(bookings ...*domain.Booking) *memoryBookings {
	store := &memoryBookings{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		if b.Version == 0 {
			b.Version = 1
		}
		store.bookings[b.ID] = b
	}
	return store
}

func (m *memoryBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memoryBookings) ListByMember(_ context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	excluded := make(map[int64]bool)
	for _, id := range filter.ExcludeIDs {
		excluded[id] = true
	}
	dateRange := domain.DateRange{Start: filter.StartDate, End: filter.EndDate}

	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.CleanerID != filter.CleanerID || excluded[b.ID] || !dateRange.Contains(b.BookingDate) {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memoryBookings) ConditionalUpdate(
	_ context.Context,
	id int64,
	expectedStatus domain.BookingStatus,
	expectedCleanerID *int64,
	patch domain.BookingPatch,
) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok || b.Status != expectedStatus {
		return nil, bookingRepo.ErrConditionNotMet
	}
	if expectedCleanerID != nil && b.CleanerID != *expectedCleanerID {
		return nil, bookingRepo.ErrConditionNotMet
	}

	b.Status = patch.Status
	b.CleanerID = patch.CleanerID
	b.TeamID = patch.TeamID
	b.Version++

	copied := *b
	return &copied, nil
}

func (m *memoryBookings) status(id int64) domain.BookingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].Status
}

func (m *memoryBookings) cleaner(id int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].CleanerID
}

type memoryMembers struct {
	members map[int64]*domain.Member
	teams   map[int64]*domain.Team
}

func (m *memoryMembers) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, memberRepo.ErrMemberNotFound
	}
	return member, nil
}

func (m *memoryMembers) GetTeam(_ context.Context, teamID int64) (*domain.Team, error) {
	team, ok := m.teams[teamID]
	if !ok {
		return nil, memberRepo.ErrTeamNotFound
	}
	return team, nil
}

type fakeCalendar struct {
	blocks map[int64][]domain.CalendarBlock
}

func (f *fakeCalendar) Fetch(_ context.Context, member *domain.Member, _ domain.DateRange) (*domain.CalendarFetch, error) {
	return &domain.CalendarFetch{Blocks: f.blocks[member.ID], FetchedAt: time.Now()}, nil
}

type noBlocks struct{}

func (noBlocks) ListByMember(context.Context, int64, time.Time, time.Time) ([]*domain.ManualBlock, error) {
	return nil, nil
}

type noCache struct{}

func (noCache) Load(context.Context, int64, domain.DateRange) ([]domain.CalendarBlock, error) {
	return nil, calendarcache.ErrCacheMiss
}

func (noCache) Store(context.Context, int64, domain.DateRange, []domain.CalendarBlock, time.Time) error {
	return nil
}

// serialTx выполняет транзакции по одной
// barrier задерживает транзакции, пока все участники гонки не прочитают данные
type serialTx struct {
	mu      sync.Mutex
	barrier *sync.WaitGroup
}

func (s *serialTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.barrier != nil {
		s.barrier.Done()
		s.barrier.Wait()
	}
	return s.Do(ctx, fn)
}

type fakeMetrics struct {
	mu          sync.Mutex
	transitions map[string]int
}

func (f *fakeMetrics) ObserveCalendarFetch(string) {}

func (f *fakeMetrics) ObserveBookingTransition(action, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transitions == nil {
		f.transitions = make(map[string]int)
	}
	f.transitions[action+":"+result]++
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Команда 1: лидер 100, клинеры 1, 2. Клинер 3 в команде 2 (лидер 200). Клинер 4 без команды
const (
	teamID     int64 = 1
	leaderID   int64 = 100
	cleanerM1  int64 = 1
	cleanerM2  int64 = 2
	otherTeam  int64 = 3
	solo       int64 = 4
	adminID    int64 = 900
	ownerID    int64 = 500
	propertyID int64 = 300
)

var bookingDay = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	bookings *memoryBookings
	calendar *fakeCalendar
	tx       *serialTx
	metrics  *fakeMetrics
}

func newFixture(bookings ...*domain.Booking) *fixture {
	team1, team2 := teamID, int64(2)
	members := &memoryMembers{
		members: map[int64]*domain.Member{
			cleanerM1: {ID: cleanerM1, TeamID: &team1, CalendarSyncStatus: domain.SyncSynced},
			cleanerM2: {ID: cleanerM2, TeamID: &team1, CalendarSyncStatus: domain.SyncSynced},
			otherTeam: {ID: otherTeam, TeamID: &team2, CalendarSyncStatus: domain.SyncSynced},
			solo:      {ID: solo, CalendarSyncStatus: domain.SyncNotConnected},
		},
		teams: map[int64]*domain.Team{
			team1: {ID: team1, LeaderID: leaderID, MemberIDs: []int64{cleanerM1, cleanerM2}},
			team2: {ID: team2, LeaderID: 200, MemberIDs: []int64{otherTeam}},
		},
	}

	store := newMemoryBookings(bookings...)
	calendar := &fakeCalendar{blocks: map[int64][]domain.CalendarBlock{}}
	tx := &serialTx{}
	metrics := &fakeMetrics{}

	merger := availability.NewMerger(calendar, store, noBlocks{}, noCache{}, tx, time.Second, metrics, nopLogger{})
	guard := availability.NewConflictGuard(merger, store, nopLogger{})

	uc := NewUseCase(store, members, guard, tx, time.UTC, metrics, nopLogger{})
	uc.timeProvider = fixedTime{now: bookingDay.Add(20 * time.Hour)}

	return &fixture{uc: uc, bookings: store, calendar: calendar, tx: tx, metrics: metrics}
}

func newBooking(id, cleanerID int64, status domain.BookingStatus, start string, minutes int) *domain.Booking {
	team := teamID
	b := &domain.Booking{
		ID:              id,
		Status:          status,
		BookingDate:     bookingDay,
		StartTime:       types.MustTimeString(start),
		DurationMinutes: minutes,
		Price:           150,
		CleanerID:       cleanerID,
		OwnerID:         ownerID,
		PropertyID:      propertyID,
		ServiceName:     "Deep clean",
		PropertyName:    "Villa Sunset",
	}
	if cleanerID == cleanerM1 || cleanerID == cleanerM2 {
		b.TeamID = &team
	}
	return b
}

func actor(id int64, role domain.ActorRole) domain.Actor {
	return domain.Actor{UserID: id, Role: role}
}
