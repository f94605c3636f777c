package manualblock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TeamScheduling/internal/domain"
	"github.com/m04kA/SMC-TeamScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeamScheduling/pkg/psqlbuilder"
)

const tableManualBlocks = "manual_blocks"

var blockColumns = []string{
	"id",
	"member_id",
	"block_date",
	"start_time",
	"end_time",
	"is_available",
	"title",
	"created_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий ручных блокировок времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ручных блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет ручную блокировку
func (r *Repository) Create(ctx context.Context, block *domain.ManualBlock) (*domain.ManualBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableManualBlocks).
		Columns("member_id", "block_date", "start_time", "end_time", "is_available", "title").
		Values(block.MemberID, block.Date, block.StartTime, block.EndTime, block.IsAvailable, block.Title).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ManualBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From(tableManualBlocks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %w", ErrScanRow, err)
	}

	return block, nil
}

// ListByMember получает блокировки клинера за период [startDate, endDate]
func (r *Repository) ListByMember(ctx context.Context, memberID int64, startDate, endDate time.Time) ([]*domain.ManualBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From(tableManualBlocks).
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.GtOrEq{"block_date": startDate}).
		Where(squirrel.LtOrEq{"block_date": endDate}).
		OrderBy("block_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.ManualBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByMember - scan row: %w", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByMember - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableManualBlocks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

func scanBlock(row rowScanner) (*domain.ManualBlock, error) {
	var block domain.ManualBlock
	var title sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.MemberID,
		&block.Date,
		&block.StartTime,
		&block.EndTime,
		&block.IsAvailable,
		&title,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if title.Valid {
		block.Title = &title.String
	}
	block.CreatedAt = createdAt.Time

	return &block, nil
}
