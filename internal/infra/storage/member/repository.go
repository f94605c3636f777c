package member

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

const (
	tableMembers = "members"
	tableTeams   = "teams"
)

var memberColumns = []string{
	"id",
	"display_name",
	"team_id",
	"calendar_id",
	"calendar_sync_status",
	"last_synced",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий клинеров и команд
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клинеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клинера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(memberColumns...).
		From(tableMembers).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	member, err := scanMember(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan member: %w", ErrScanRow, err)
	}

	return member, nil
}

// ListByTeam получает всех клинеров команды, отсортированных по ID
func (r *Repository) ListByTeam(ctx context.Context, teamID int64) ([]*domain.Member, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(memberColumns...).
		From(tableMembers).
		Where(squirrel.Eq{"team_id": teamID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTeam - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTeam - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.Member, 0)
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTeam - scan row: %w", ErrScanRow, err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTeam - rows error: %w", ErrScanRow, err)
	}

	return members, nil
}

// GetTeam получает команду вместе со списком ID её клинеров
func (r *Repository) GetTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "leader_id").
		From(tableTeams).
		Where(squirrel.Eq{"id": teamID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeam - build select query: %v", ErrBuildQuery, err)
	}

	var team domain.Team
	err = executor.QueryRowContext(ctx, query, args...).Scan(&team.ID, &team.Name, &team.LeaderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeam - scan team: %w", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("id").
		From(tableMembers).
		Where(squirrel.Eq{"team_id": teamID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeam - build members query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeam - execute members query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	team.MemberIDs = make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetTeam - scan member id: %w", ErrScanRow, err)
		}
		team.MemberIDs = append(team.MemberIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTeam - rows error: %w", ErrScanRow, err)
	}

	return &team, nil
}

// UpdateSyncStatus сохраняет статус синхронизации календаря
// lastSynced = nil - время последней успешной синхронизации не меняется
func (r *Repository) UpdateSyncStatus(ctx context.Context, memberID int64, status domain.CalendarSyncStatus, lastSynced *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(tableMembers).
		Set("calendar_sync_status", status).
		Where(squirrel.Eq{"id": memberID})
	if lastSynced != nil {
		builder = builder.Set("last_synced", *lastSynced)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSyncStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSyncStatus - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSyncStatus - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func scanMember(row rowScanner) (*domain.Member, error) {
	var member domain.Member
	var teamID sql.NullInt64
	var calendarID sql.NullString
	var lastSynced sql.NullTime

	err := row.Scan(
		&member.ID,
		&member.DisplayName,
		&teamID,
		&calendarID,
		&member.CalendarSyncStatus,
		&lastSynced,
	)
	if err != nil {
		return nil, err
	}

	if teamID.Valid {
		member.TeamID = &teamID.Int64
	}
	if calendarID.Valid {
		member.CalendarID = &calendarID.String
	}
	if lastSynced.Valid {
		t := lastSynced.Time
		member.LastSynced = &t
	}

	return &member, nil
}
