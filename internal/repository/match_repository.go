package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/overlap-backend-go/internal/models"
)

// MatchRepository handles database operations for detected matches
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// pairKey puts a user pair in canonical (lexicographic) order. Storage and
// lookup both go through it, so the same pair resolves to the same rows no
// matter which way a request names the two users.
func pairKey(userA, userB string) (string, string) {
	if userB < userA {
		return userB, userA
	}
	return userA, userB
}

// DeletePairMatches removes stored matches for a user pair so a re-run
// replaces the previous result
func (r *MatchRepository) DeletePairMatches(userA, userB string) error {
	a, b := pairKey(userA, userB)
	if _, err := r.db.Exec("DELETE FROM matches WHERE user_a = ? AND user_b = ?", a, b); err != nil {
		return fmt.Errorf("failed to delete matches for %s/%s: %w", a, b, err)
	}
	return nil
}

// InsertBatch inserts the matches of one detection run between userA and
// userB inside one transaction. The detector fills Match.PointA from its
// last-seen slot, so either user's point can sit in either position; rows
// are reoriented to the canonical pair order before storage.
func (r *MatchRepository) InsertBatch(userA, userB string, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO matches
		(user_a, user_b,
		 a_trip_id, a_point_order, a_latitude, a_longitude, a_orig_timestamp, a_timestamp, a_label,
		 b_trip_id, b_point_order, b_latitude, b_longitude, b_orig_timestamp, b_timestamp, b_label,
		 time_delta_ms, distance_km, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	a, b := pairKey(userA, userB)
	now := time.Now().UnixMilli()
	for _, m := range matches {
		pa, pb := m.PointA, m.PointB
		if pa.UserID != a {
			pa, pb = pb, pa
		}
		if _, err := stmt.Exec(
			a, b,
			pa.TripID, pa.Order, pa.Latitude, pa.Longitude,
			pa.OrigTimestamp, pa.Timestamp, pa.Label,
			pb.TripID, pb.Order, pb.Latitude, pb.Longitude,
			pb.OrigTimestamp, pb.Timestamp, pb.Label,
			m.TimeDeltaMs, m.DistanceKm, now,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}
	return nil
}

// GetMatches retrieves stored matches for a user pair with pagination. The
// pair is looked up in canonical order, so both orientations of the filter
// see the same rows; returned matches carry PointA for the
// lexicographically smaller user.
func (r *MatchRepository) GetMatches(filter models.MatchFilter) ([]models.Match, int64, error) {
	a, b := pairKey(filter.UserA, filter.UserB)

	var total int64
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM matches WHERE user_a = ? AND user_b = ?",
		a, b,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count matches: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	rows, err := r.db.Query(`SELECT
		id, user_a, user_b,
		a_trip_id, a_point_order, a_latitude, a_longitude, a_orig_timestamp, a_timestamp, a_label,
		b_trip_id, b_point_order, b_latitude, b_longitude, b_orig_timestamp, b_timestamp, b_label,
		time_delta_ms, distance_km, created_at
		FROM matches WHERE user_a = ? AND user_b = ?
		ORDER BY a_orig_timestamp ASC, id ASC LIMIT ? OFFSET ?`,
		a, b, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.PointA.UserID, &m.PointB.UserID,
			&m.PointA.TripID, &m.PointA.Order, &m.PointA.Latitude, &m.PointA.Longitude,
			&m.PointA.OrigTimestamp, &m.PointA.Timestamp, &m.PointA.Label,
			&m.PointB.TripID, &m.PointB.Order, &m.PointB.Latitude, &m.PointB.Longitude,
			&m.PointB.OrigTimestamp, &m.PointB.Timestamp, &m.PointB.Label,
			&m.TimeDeltaMs, &m.DistanceKm, &m.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, total, rows.Err()
}
