//go:build integration

package booking

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/pgtest"
	"github.com/m04kA/SMC-TeamScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeamScheduling/pkg/ptr"
	"github.com/m04kA/SMC-TeamScheduling/pkg/txmanager"
	"github.com/m04kA/SMC-TeamScheduling/pkg/types"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	db, stop, err := pgtest.Start(context.Background())
	if err != nil {
		log.Fatalf("Failed to start postgres: %s", err)
	}
	testDB = db

	code := m.Run()

	stop()
	os.Exit(code)
}

func setup(t *testing.T) (*Repository, *txmanager.TransactionManager) {
	t.Helper()
	require.NoError(t, pgtest.Truncate(testDB))

	db := dbmetrics.Wrap(testDB, nil)
	return NewRepository(db), txmanager.NewTransactionManager(db)
}

func newBooking(cleanerID int64, date time.Time, start string, minutes int) *domain.Booking {
	return &domain.Booking{
		Status:          domain.StatusPending,
		BookingDate:     date,
		StartTime:       types.MustTimeString(start),
		DurationMinutes: minutes,
		Price:           120,
		CleanerID:       cleanerID,
		OwnerID:         900,
		PropertyID:      300,
		ServiceName:     "Deep clean",
		PropertyName:    "Villa Sunset",
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, newBooking(1, date, "10:00", 180))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(1), created.Version)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	assert.Equal(t, 180, got.DurationMinutes)
	assert.Nil(t, got.TeamID)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ListByMember(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, newBooking(1, date, "13:00", 60))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newBooking(1, date, "09:00", 60))
	require.NoError(t, err)

	cancelled := newBooking(1, date, "15:00", 60)
	cancelled.Status = domain.StatusCancelled
	_, err = repo.Create(ctx, cancelled)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking(2, date, "09:00", 60))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(1, date.AddDate(0, 0, 5), "09:00", 60))
	require.NoError(t, err)

	filter := domain.MemberBookingsFilter{CleanerID: 1, StartDate: date, EndDate: date}

	bookings, err := repo.ListByMember(ctx, filter)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID)
	assert.Equal(t, first.ID, bookings[1].ID)

	filter.ExcludeIDs = []int64{second.ID}
	bookings, err = repo.ListByMember(ctx, filter)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, first.ID, bookings[0].ID)

	filter.ExcludeIDs = nil
	filter.IncludeInactive = true
	bookings, err = repo.ListByMember(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, bookings, 3)
}

func TestRepository_ConditionalUpdate(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, newBooking(1, date, "10:00", 60))
	require.NoError(t, err)

	updated, err := repo.ConditionalUpdate(ctx, created.ID, domain.StatusPending, ptr.Ptr(int64(1)), domain.BookingPatch{
		Status:    domain.StatusConfirmed,
		CleanerID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	assert.Equal(t, int64(2), updated.Version)

	// Повтор с устаревшим ожидаемым статусом
	_, err = repo.ConditionalUpdate(ctx, created.ID, domain.StatusPending, ptr.Ptr(int64(1)), domain.BookingPatch{
		Status:    domain.StatusCancelled,
		CleanerID: 1,
	})
	assert.ErrorIs(t, err, ErrConditionNotMet)

	// Устаревший исполнитель
	_, err = repo.ConditionalUpdate(ctx, created.ID, domain.StatusConfirmed, ptr.Ptr(int64(2)), domain.BookingPatch{
		Status:    domain.StatusCompleted,
		CleanerID: 2,
	})
	assert.ErrorIs(t, err, ErrConditionNotMet)
}

func TestRepository_ConditionalUpdate_ConcurrentAccept(t *testing.T) {
	repo, tx := setup(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, newBooking(1, date, "10:00", 60))
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- tx.DoSerializable(ctx, func(ctx context.Context) error {
				if _, err := repo.ListByMember(ctx, domain.MemberBookingsFilter{
					CleanerID: 1, StartDate: date, EndDate: date, ExcludeIDs: []int64{created.ID},
				}); err != nil {
					return err
				}
				_, err := repo.ConditionalUpdate(ctx, created.ID, domain.StatusPending, ptr.Ptr(int64(1)), domain.BookingPatch{
					Status:    domain.StatusConfirmed,
					CleanerID: 1,
				})
				return err
			})
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t,
			errors.Is(err, ErrConditionNotMet) || errors.Is(err, txmanager.ErrSerialization),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, int64(2), got.Version)
}
