package calendarcache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeamScheduling/pkg/psqlbuilder"
)

const tableCalendarCache = "calendar_cache"

// Repository хранит последние успешно полученные блоки внешнего календаря
// Используется как запасной источник, когда календарь недоступен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кэша календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Load получает закэшированные блоки клинера за период
// Если для клинера за период нет ни одной успешной выборки, возвращает ErrCacheMiss
func (r *Repository) Load(ctx context.Context, memberID int64, dateRange domain.DateRange) ([]domain.CalendarBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("block_date", "start_time", "end_time", "title").
		From(tableCalendarCache).
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.GtOrEq{"block_date": dateRange.Start}).
		Where(squirrel.LtOrEq{"block_date": dateRange.End}).
		Where(squirrel.NotEq{"start_time": nil}).
		OrderBy("block_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.CalendarBlock, 0)
	for rows.Next() {
		var block domain.CalendarBlock
		var title sql.NullString
		if err := rows.Scan(&block.Date, &block.StartTime, &block.EndTime, &title); err != nil {
			return nil, fmt.Errorf("%w: Load - scan row: %w", ErrScanRow, err)
		}
		if title.Valid {
			block.Title = &title.String
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Load - rows error: %w", ErrScanRow, err)
	}

	if len(blocks) == 0 {
		fetched, err := r.hasFetch(ctx, executor, memberID, dateRange)
		if err != nil {
			return nil, err
		}
		if !fetched {
			return nil, ErrCacheMiss
		}
	}

	return blocks, nil
}

// Store заменяет закэшированные блоки клинера за период результатом последней выборки
// Пустая выборка сохраняется маркером без времени, чтобы отличать "свободен" от "нет данных"
// Блок хранится один раз: параллельная запись того же блока пропускается по уникальному ключу
func (r *Repository) Store(ctx context.Context, memberID int64, dateRange domain.DateRange, blocks []domain.CalendarBlock, fetchedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableCalendarCache).
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.GtOrEq{"block_date": dateRange.Start}).
		Where(squirrel.LtOrEq{"block_date": dateRange.End}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Store - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Store - execute delete: %w", ErrExecQuery, err)
	}

	insert := psqlbuilder.Insert(tableCalendarCache).
		Columns("member_id", "block_date", "start_time", "end_time", "title", "fetched_at")

	// Маркер успешной выборки на каждый день периода
	for _, day := range dateRange.Days() {
		insert = insert.Values(memberID, day, nil, nil, nil, fetchedAt)
	}
	for _, block := range blocks {
		insert = insert.Values(memberID, block.Date, block.StartTime, block.EndTime, block.Title, fetchedAt)
	}

	query, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: Store - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Store - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) hasFetch(ctx context.Context, executor DBExecutor, memberID int64, dateRange domain.DateRange) (bool, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableCalendarCache).
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.GtOrEq{"block_date": dateRange.Start}).
		Where(squirrel.LtOrEq{"block_date": dateRange.End}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: hasFetch - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: hasFetch - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}
