package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/overlap-backend-go/internal/models"
)

// PointRepository handles database operations for normalized points
type PointRepository struct {
	db *sql.DB
}

// NewPointRepository creates a new point repository
func NewPointRepository(db *sql.DB) *PointRepository {
	return &PointRepository{db: db}
}

const pointColumns = `id, user_id, trip_id, point_order, latitude, longitude,
	orig_timestamp, timestamp, distance, label, confidence, time_convention`

// InsertBatch inserts points inside one transaction
func (r *PointRepository) InsertBatch(points []models.Point) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO points
		(user_id, trip_id, point_order, latitude, longitude, orig_timestamp,
		 timestamp, distance, label, confidence, time_convention)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(
			p.UserID, p.TripID, p.Order, p.Latitude, p.Longitude,
			p.OrigTimestamp, p.Timestamp, p.Distance, p.Label,
			p.Confidence, p.TimeConvention,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit points: %w", err)
	}
	return nil
}

// DeleteUserPoints removes every point of one user (re-ingestion replaces)
func (r *PointRepository) DeleteUserPoints(userID string) error {
	if _, err := r.db.Exec("DELETE FROM points WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete points for %s: %w", userID, err)
	}
	return nil
}

// GetPoints retrieves points with filtering and pagination, ordered by
// original timestamp ascending
func (r *PointRepository) GetPoints(filter models.PointFilter) ([]models.Point, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.TripID != "" {
		conditions = append(conditions, "trip_id = ?")
		args = append(args, filter.TripID)
	}
	if filter.Label != "" {
		conditions = append(conditions, "label = ?")
		args = append(args, filter.Label)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "orig_timestamp >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "orig_timestamp <= ?")
		args = append(args, filter.EndTime)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM points"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count points: %w", err)
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

	query := "SELECT " + pointColumns + " FROM points" + where +
		" ORDER BY orig_timestamp ASC, id ASC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	points, err := scanPoints(rows)
	if err != nil {
		return nil, 0, err
	}
	return points, total, nil
}

// GetUserPoints retrieves the full point list of one user ordered by
// original timestamp ascending, the shape the merger expects. Insertion id
// breaks timestamp ties so the stored stream keeps its ingestion order.
func (r *PointRepository) GetUserPoints(userID string) ([]models.Point, error) {
	query := "SELECT " + pointColumns + ` FROM points
		WHERE user_id = ? ORDER BY orig_timestamp ASC, id ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points for %s: %w", userID, err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

// ListUsers returns every ingested user with point count and time span
func (r *PointRepository) ListUsers() ([]models.UserSummary, error) {
	query := `SELECT user_id, COUNT(*), MIN(orig_timestamp), MAX(orig_timestamp)
		FROM points GROUP BY user_id ORDER BY user_id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.UserID, &u.PointCount, &u.FirstTimestamp, &u.LastTimestamp); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanPoints(rows *sql.Rows) ([]models.Point, error) {
	var points []models.Point
	for rows.Next() {
		var p models.Point
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.TripID, &p.Order, &p.Latitude, &p.Longitude,
			&p.OrigTimestamp, &p.Timestamp, &p.Distance, &p.Label,
			&p.Confidence, &p.TimeConvention,
		); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
