package database

import (
	"database/sql"
	"fmt"
)

// Schema DDL, applied idempotently on startup. The points table mirrors the
// normalized Point record one column per field; matches snapshots both
// points of a detected pair so a stored match survives re-ingestion of
// either user's archive.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		trip_id TEXT NOT NULL,
		point_order INTEGER NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		orig_timestamp INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		distance REAL NOT NULL DEFAULT 0,
		label TEXT NOT NULL,
		confidence TEXT NOT NULL,
		time_convention TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_points_user_time ON points(user_id, orig_timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_points_trip ON points(trip_id)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_a TEXT NOT NULL,
		user_b TEXT NOT NULL,
		a_trip_id TEXT NOT NULL,
		a_point_order INTEGER NOT NULL,
		a_latitude REAL NOT NULL,
		a_longitude REAL NOT NULL,
		a_orig_timestamp INTEGER NOT NULL,
		a_timestamp TEXT NOT NULL,
		a_label TEXT NOT NULL,
		b_trip_id TEXT NOT NULL,
		b_point_order INTEGER NOT NULL,
		b_latitude REAL NOT NULL,
		b_longitude REAL NOT NULL,
		b_orig_timestamp INTEGER NOT NULL,
		b_timestamp TEXT NOT NULL,
		b_label TEXT NOT NULL,
		time_delta_ms INTEGER NOT NULL,
		distance_km REAL NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_pair ON matches(user_a, user_b)`,
}

// CreateSchema applies the embedded schema statements
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
