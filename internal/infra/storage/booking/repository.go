package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeamScheduling/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"status",
	"booking_date",
	"start_time",
	"duration_minutes",
	"price",
	"cleaner_id",
	"owner_id",
	"property_id",
	"team_id",
	"service_name",
	"property_name",
	"version",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе из booking.Status (обычно pending)
// Используется потоком создания заявок и тестами
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"status",
			"booking_date",
			"start_time",
			"duration_minutes",
			"price",
			"cleaner_id",
			"owner_id",
			"property_id",
			"team_id",
			"service_name",
			"property_name",
		).
		Values(
			booking.Status,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Price,
			booking.CleanerID,
			booking.OwnerID,
			booking.PropertyID,
			booking.TeamID,
			booking.ServiceName,
			booking.PropertyName,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListByMember получает бронирования клинера за период, отсортированные по дате и времени
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка пересечений
// и последующее условное обновление видели одно и то же состояние
func (r *Repository) ListByMember(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"cleaner_id": filter.CleanerID}).
		Where(squirrel.GtOrEq{"booking_date": filter.StartDate}).
		Where(squirrel.LtOrEq{"booking_date": filter.EndDate}).
		OrderBy("booking_date ASC", "start_time ASC")

	// Если не нужны неактивные - берём только занимающие время статусы
	if !filter.IncludeInactive {
		active := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			active[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": active})
	}

	if len(filter.ExcludeIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": filter.ExcludeIDs})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ConditionalUpdate применяет patch, только если бронирование всё ещё в ожидаемом состоянии
// expectedCleanerID = nil - исполнитель не проверяется
// Если строка изменилась конкурентно (другой статус или исполнитель), возвращает ErrConditionNotMet
// Версия увеличивается при каждом успешном обновлении
func (r *Repository) ConditionalUpdate(
	ctx context.Context,
	id int64,
	expectedStatus domain.BookingStatus,
	expectedCleanerID *int64,
	patch domain.BookingPatch,
) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{
		"id":     id,
		"status": expectedStatus,
	}
	if expectedCleanerID != nil {
		where["cleaner_id"] = *expectedCleanerID
	}

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", patch.Status).
		Set("cleaner_id", patch.CleanerID).
		Set("team_id", patch.TeamID).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ConditionalUpdate - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConditionNotMet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ConditionalUpdate - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Status,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Price,
		&booking.CleanerID,
		&booking.OwnerID,
		&booking.PropertyID,
		&booking.TeamID,
		&booking.ServiceName,
		&booking.PropertyName,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
