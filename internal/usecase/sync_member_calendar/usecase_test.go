package sync_member_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
)

type statusUpdate struct {
	status     domain.CalendarSyncStatus
	lastSynced *time.Time
}

type fakeMembers struct {
	members map[int64]*domain.Member
	teams   map[int64]*domain.Team
	updates map[int64]statusUpdate
}

func (f *fakeMembers) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, memberRepo.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeMembers) GetTeam(_ context.Context, teamID int64) (*domain.Team, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return nil, memberRepo.ErrTeamNotFound
	}
	return t, nil
}

func (f *fakeMembers) UpdateSyncStatus(ctx context.Context, memberID int64, status domain.CalendarSyncStatus, lastSynced *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.updates[memberID] = statusUpdate{status: status, lastSynced: lastSynced}
	return nil
}

type fakeMerger struct {
	fail      bool
	fetchedAt time.Time
	dateRange domain.DateRange
}

// Merge отменённый контекст приводит к сбою выборки календаря, как в настоящем Merger
func (f *fakeMerger) Merge(ctx context.Context, member *domain.Member, dateRange domain.DateRange) (*domain.MemberAvailability, error) {
	f.dateRange = dateRange
	if f.fail || ctx.Err() != nil {
		return &domain.MemberAvailability{
			MemberID:           member.ID,
			CalendarSyncStatus: domain.SyncFailed,
			LastSynced:         member.LastSynced,
			PartialData:        true,
		}, nil
	}
	return &domain.MemberAvailability{
		MemberID:           member.ID,
		CalendarSyncStatus: domain.SyncSynced,
		LastSynced:         &f.fetchedAt,
	}, nil
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFakeMembers() *fakeMembers {
	team := int64(1)
	return &fakeMembers{
		members: map[int64]*domain.Member{
			1: {ID: 1, TeamID: &team, CalendarSyncStatus: domain.SyncSynced},
			2: {ID: 2, TeamID: &team, CalendarSyncStatus: domain.SyncPendingSetup},
		},
		teams:   map[int64]*domain.Team{1: {ID: 1, LeaderID: 100, MemberIDs: []int64{1, 2}}},
		updates: make(map[int64]statusUpdate),
	}
}

var now = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func TestUseCase_Execute_Success(t *testing.T) {
	members := newFakeMembers()
	merger := &fakeMerger{fetchedAt: now}
	uc := NewUseCase(members, merger, 14, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime(now)

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 1, Actor: domain.Actor{UserID: 100, Role: domain.RoleCleaner}})
	require.NoError(t, err)

	assert.Equal(t, domain.SyncSynced, resp.CalendarSyncStatus)
	assert.False(t, resp.PartialData)
	assert.Equal(t, "2025-06-10", domain.DateKey(merger.dateRange.Start))
	assert.Equal(t, "2025-06-24", domain.DateKey(merger.dateRange.End))

	update := members.updates[1]
	assert.Equal(t, domain.SyncSynced, update.status)
	require.NotNil(t, update.lastSynced)
	assert.Equal(t, now, *update.lastSynced)
}

func TestUseCase_Execute_ClientGoneStillSyncs(t *testing.T) {
	members := newFakeMembers()
	uc := NewUseCase(members, &fakeMerger{fetchedAt: now}, 14, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime(now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := uc.Execute(ctx, &Request{MemberID: 1, Actor: domain.Actor{UserID: 1, Role: domain.RoleCleaner}})
	require.NoError(t, err)

	assert.False(t, resp.PartialData)
	assert.Equal(t, domain.SyncSynced, resp.CalendarSyncStatus)
	require.Contains(t, members.updates, int64(1))
	assert.Equal(t, domain.SyncSynced, members.updates[1].status)
}

func TestUseCase_Execute_FetchFailure(t *testing.T) {
	members := newFakeMembers()
	uc := NewUseCase(members, &fakeMerger{fail: true}, 14, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime(now)

	resp, err := uc.Execute(context.Background(), &Request{MemberID: 1, Actor: domain.Actor{UserID: 1, Role: domain.RoleCleaner}})
	require.NoError(t, err)

	assert.True(t, resp.PartialData)
	assert.Equal(t, domain.SyncFailed, members.updates[1].status)
	assert.Nil(t, members.updates[1].lastSynced)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := NewUseCase(newFakeMembers(), &fakeMerger{}, 14, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{MemberID: 1, Actor: domain.Actor{UserID: 2, Role: domain.RoleCleaner}})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Execute(context.Background(), &Request{MemberID: 2, Actor: domain.Actor{UserID: 900, Role: domain.RoleAdmin}})
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = uc.Execute(context.Background(), &Request{MemberID: 7, Actor: domain.Actor{UserID: 900, Role: domain.RoleAdmin}})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
