package database

import (
	"database/sql"
	"fmt"
)

// Result tables for one analysis run. A new run replaces the previous one
// inside a single transaction, so readers never see a half-written batch.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS batch_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		total_rows INTEGER NOT NULL,
		parsed_rows INTEGER NOT NULL,
		skipped_parse INTEGER NOT NULL,
		skipped_normalize INTEGER NOT NULL,
		beijing_count INTEGER NOT NULL,
		total_distance_km REAL NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS daily_aggregates (
		run_id INTEGER NOT NULL REFERENCES batch_runs(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		point_count INTEGER NOT NULL,
		total_distance_km REAL NOT NULL,
		min_altitude REAL NOT NULL,
		max_altitude REAL NOT NULL,
		altitude_span REAL NOT NULL,
		PRIMARY KEY (run_id, user_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS weekly_aggregates (
		run_id INTEGER NOT NULL REFERENCES batch_runs(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL,
		iso_year INTEGER NOT NULL,
		iso_week INTEGER NOT NULL,
		point_count INTEGER NOT NULL,
		PRIMARY KEY (run_id, user_id, iso_year, iso_week)
	)`,
	`CREATE TABLE IF NOT EXISTS user_activity (
		run_id INTEGER NOT NULL REFERENCES batch_runs(id) ON DELETE CASCADE,
		granularity TEXT NOT NULL CHECK (granularity IN ('day', 'week')),
		user_id INTEGER NOT NULL,
		qualifying_count INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		PRIMARY KEY (run_id, granularity, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS northernmost (
		run_id INTEGER NOT NULL REFERENCES batch_runs(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		adjusted_date TEXT NOT NULL,
		adjusted_timestamp REAL NOT NULL,
		visited_beijing INTEGER NOT NULL,
		PRIMARY KEY (run_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS beijing_correlation (
		run_id INTEGER NOT NULL REFERENCES batch_runs(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL,
		visit_count INTEGER NOT NULL,
		northernmost_lat REAL NOT NULL,
		northernmost_date TEXT NOT NULL,
		north_inside_beijing INTEGER NOT NULL,
		PRIMARY KEY (run_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS longest_days (
		run_id INTEGER NOT NULL REFERENCES batch_runs(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		distance_km REAL NOT NULL,
		is_global INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_run_distance
		ON daily_aggregates(run_id, total_distance_km DESC)`,
}

// Migrate applies the embedded schema.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
