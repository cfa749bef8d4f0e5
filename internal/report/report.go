package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jengzang/overlap-backend-go/internal/models"
)

// Record renders a point as its fixed 11-field row: user_id, trip_id,
// order, latitude, longitude, orig_timestamp, timestamp, distance, label,
// confidence, time_convention.
func Record(p models.Point) []string {
	return []string{
		p.UserID,
		p.TripID,
		strconv.Itoa(p.Order),
		formatFloat(p.Latitude),
		formatFloat(p.Longitude),
		strconv.FormatInt(p.OrigTimestamp, 10),
		p.Timestamp,
		formatFloat(p.Distance),
		p.Label,
		p.Confidence,
		p.TimeConvention,
	}
}

// WriteDump writes the point sequence one record per line.
func WriteDump(w io.Writer, points []models.Point) error {
	for _, p := range points {
		if _, err := fmt.Fprintln(w, strings.Join(Record(p), ",")); err != nil {
			return err
		}
	}
	return nil
}

// AppendCSV appends the point records to the CSV file at path, creating it
// if needed. Repeated runs accumulate rows, matching the historical export
// behavior.
func AppendCSV(path string, points []models.Point) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, p := range points {
		if err := w.Write(Record(p)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// File names of the accumulated CSV exports. Place rows and activity rows
// have always gone to separate files.
const (
	PlacesCSV         = "FULL_places.csv"
	ActivityPointsCSV = "FULL_activity_points.csv"
)

// AppendHistoryCSVs routes the point rows to the two export files under
// dir: visit-derived points to FULL_places.csv, segment-derived points to
// FULL_activity_points.csv. Visit points carry a numeric confidence, so the
// N/A sentinel identifies activity rows.
func AppendHistoryCSVs(dir string, points []models.Point) error {
	var places, activity []models.Point
	for _, p := range points {
		if p.Confidence == models.ConfidenceNA {
			activity = append(activity, p)
		} else {
			places = append(places, p)
		}
	}
	if err := AppendCSV(filepath.Join(dir, PlacesCSV), places); err != nil {
		return err
	}
	return AppendCSV(filepath.Join(dir, ActivityPointsCSV), activity)
}

// Simplify projects a point down to the fields a human scans in an overlap
// report: user, readable timestamp, coordinates, label.
func Simplify(p models.Point) string {
	return fmt.Sprintf("[%s, %s, %s, %s, %s]",
		p.UserID, p.Timestamp, formatFloat(p.Latitude), formatFloat(p.Longitude), p.Label)
}

// MapsURL builds a directions deep link between the two matched points from
// their raw coordinates.
func MapsURL(m models.Match) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/%s,+%s/%s,+%s",
		formatFloat(m.PointA.Latitude), formatFloat(m.PointA.Longitude),
		formatFloat(m.PointB.Latitude), formatFloat(m.PointB.Longitude))
}

// WriteMatch writes one human-readable overlap report. The minutes field
// wraps at the hour and the seconds field at the minute, so a delta of
// 75m20s prints as "15 mins 20 secs".
func WriteMatch(w io.Writer, m models.Match) error {
	secs := (m.TimeDeltaMs / 1000) % 60
	mins := (m.TimeDeltaMs / 1000 / 60) % 60
	dist := math.Round(m.DistanceKm*1e4) / 1e4

	_, err := fmt.Fprintf(w, "Possible overlap!\n%s\n%s\nTime delta: %d mins %d secs\nDist delta: %s km\n%s\n\n",
		Simplify(m.PointA),
		Simplify(m.PointB),
		mins, secs,
		formatFloat(dist),
		MapsURL(m))
	return err
}

// WriteMatches writes every match in order.
func WriteMatches(w io.Writer, matches []models.Match) error {
	for _, m := range matches {
		if err := WriteMatch(w, m); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
