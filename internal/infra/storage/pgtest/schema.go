//go:build integration

package pgtest

// Schema таблицы сервиса, применяемые к тестовой БД
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		leader_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		id BIGSERIAL PRIMARY KEY,
		display_name VARCHAR(255) NOT NULL,
		team_id BIGINT REFERENCES teams(id) ON DELETE SET NULL,
		calendar_id VARCHAR(255),
		calendar_sync_status VARCHAR(32) NOT NULL DEFAULT 'NOT_CONNECTED',
		last_synced TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		status VARCHAR(32) NOT NULL,
		booking_date DATE NOT NULL,
		start_time TIME NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
		price NUMERIC(12, 2) NOT NULL DEFAULT 0,
		cleaner_id BIGINT NOT NULL,
		owner_id BIGINT NOT NULL,
		property_id BIGINT NOT NULL,
		team_id BIGINT,
		service_name VARCHAR(255) NOT NULL DEFAULT '',
		property_name VARCHAR(255) NOT NULL DEFAULT '',
		version BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_cleaner_date ON bookings (cleaner_id, booking_date)`,
	`CREATE TABLE IF NOT EXISTS manual_blocks (
		id BIGSERIAL PRIMARY KEY,
		member_id BIGINT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		block_date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		is_available BOOLEAN NOT NULL DEFAULT FALSE,
		title VARCHAR(200),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_cache (
		member_id BIGINT NOT NULL,
		block_date DATE NOT NULL,
		start_time TIME,
		end_time TIME,
		title VARCHAR(255),
		fetched_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_cache_member_date ON calendar_cache (member_id, block_date)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_calendar_cache_block
		ON calendar_cache (member_id, block_date, start_time, end_time) NULLS NOT DISTINCT`,
}

// Tables порядок очистки таблиц между тестами
var Tables = []string{"calendar_cache", "manual_blocks", "bookings", "members", "teams"}
