package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jengzang/overlap-backend-go/internal/models"
	"github.com/jengzang/overlap-backend-go/internal/timeutil"
)

// ErrMissingPlaceID reports a place visit without a placeId. Unlike a
// stripped coordinate pair, a missing identifier means the export schema is
// not what we expect, so the record is not silently dropped.
var ErrMissingPlaceID = errors.New("place visit record has no placeId")

const e7 = 1e7

// Normalizer converts raw timeline records into flat Point sequences.
// Records lacking mandatory geometry normalize to an empty sequence;
// absent optional fields get documented defaults.
type Normalizer struct {
	// IncludeWaypoints controls whether activity segments expand their
	// intermediate waypoints or collapse to a start/end pair.
	IncludeWaypoints bool
}

// New creates a normalizer.
func New(includeWaypoints bool) *Normalizer {
	return &Normalizer{IncludeWaypoints: includeWaypoints}
}

// TimelineObject dispatches one raw record to the matching arm. Objects
// carrying neither known member normalize to nothing.
func (n *Normalizer) TimelineObject(obj models.TimelineObject) ([]models.Point, error) {
	switch {
	case obj.ActivitySegment != nil:
		return n.ActivitySegment(obj.ActivitySegment), nil
	case obj.PlaceVisit != nil:
		return n.PlaceVisit(obj.PlaceVisit)
	default:
		return nil, nil
	}
}

// PlaceVisit normalizes a stationary dwell into two points sharing the
// visit's location and label: order 0 at the visit start, order 1 at the
// visit end. A visit with stripped coordinates yields no points; a visit
// without a placeId is an error.
func (n *Normalizer) PlaceVisit(v *models.PlaceVisit) ([]models.Point, error) {
	if v.Location.PlaceID == "" {
		return nil, fmt.Errorf("%w (visit starting %q)", ErrMissingPlaceID, v.Duration.StartTimestampMs)
	}
	if v.Location.LatitudeE7 == nil || v.Location.LongitudeE7 == nil {
		return nil, nil
	}
	startMs, err := parseMs(v.Duration.StartTimestampMs)
	if err != nil {
		return nil, nil
	}
	endMs, err := parseMs(v.Duration.EndTimestampMs)
	if err != nil {
		return nil, nil
	}

	lat := float64(*v.Location.LatitudeE7) / e7
	lon := float64(*v.Location.LongitudeE7) / e7
	label := visitLabel(v.Location)
	confidence := strconv.Itoa(v.VisitConfidence)
	// AM/PM follows the visit start for both points
	convention := timeutil.ToAMPM(startMs)

	start := models.Point{
		TripID:         v.Location.PlaceID,
		Order:          0,
		Latitude:       lat,
		Longitude:      lon,
		OrigTimestamp:  startMs,
		Timestamp:      timeutil.ToLocalString(startMs),
		Distance:       0,
		Label:          label,
		Confidence:     confidence,
		TimeConvention: convention,
	}
	end := start
	end.Order = 1
	end.OrigTimestamp = endMs
	end.Timestamp = timeutil.ToLocalString(endMs)
	return []models.Point{start, end}, nil
}

// visitLabel prefers the place name, falls back to the address with embedded
// newlines flattened, then to the literal PLACE.
func visitLabel(loc models.Location) string {
	if loc.Name != "" {
		return loc.Name
	}
	if loc.Address != "" {
		return strings.ReplaceAll(loc.Address, "\n", ", ")
	}
	return models.LabelPlace
}

// ActivitySegment normalizes a movement record. With waypoints disabled the
// result is [start, end] with the end point's order forced to 2; with
// waypoints enabled the intermediate points take orders 2..N+1 and the end
// point N+2. A segment whose start or end location is unavailable yields
// nothing.
func (n *Normalizer) ActivitySegment(seg *models.ActivitySegment) []models.Point {
	start := n.segmentEndpoint(seg, seg.StartLocation, seg.Duration.StartTimestampMs)
	end := n.segmentEndpoint(seg, seg.EndLocation, seg.Duration.EndTimestampMs)
	if start == nil || end == nil {
		return nil
	}
	start.Order = 1

	if !n.IncludeWaypoints {
		end.Order = 2
		return []models.Point{*start, *end}
	}

	mids := n.pathPoints(seg, start)
	end.Order = len(mids) + 2
	points := make([]models.Point, 0, len(mids)+2)
	points = append(points, *start)
	points = append(points, mids...)
	points = append(points, *end)
	return points
}

// segmentEndpoint builds the start or end point of a segment from the given
// location and instant. A missing or coordinate-stripped location returns
// nil (unavailable, not an error). Order is left for the caller to assign.
func (n *Normalizer) segmentEndpoint(seg *models.ActivitySegment, loc *models.Location, timestampMs string) *models.Point {
	if loc == nil || loc.LatitudeE7 == nil || loc.LongitudeE7 == nil {
		return nil
	}
	tripStartMs, err := parseMs(seg.Duration.StartTimestampMs)
	if err != nil {
		return nil
	}
	ms, err := parseMs(timestampMs)
	if err != nil {
		return nil
	}

	label := seg.ActivityType
	if label == "" {
		label = models.LabelUnknown
	}
	confidence := seg.Confidence
	if confidence == "" {
		confidence = models.ConfidenceNA
	}

	return &models.Point{
		TripID:        seg.Duration.StartTimestampMs,
		Latitude:      float64(*loc.LatitudeE7) / e7,
		Longitude:     float64(*loc.LongitudeE7) / e7,
		OrigTimestamp: ms,
		Timestamp:     timeutil.ToLocalString(ms),
		Distance:      seg.Distance,
		Label:         label,
		Confidence:    confidence,
		// AM/PM follows the trip start, also for the end point
		TimeConvention: timeutil.ToAMPM(tripStartMs),
	}
}

// pathPoints expands a segment's intermediate waypoints, inheriting segment
// context from the already-built start point. The two path representations
// are mutually exclusive; waypointPath wins when both appear.
func (n *Normalizer) pathPoints(seg *models.ActivitySegment, start *models.Point) []models.Point {
	var points []models.Point
	order := 1

	switch {
	case seg.WaypointPath != nil:
		// Coordinate-only waypoints: the whole path shares the
		// segment's single timestamp and AM/PM.
		for _, wp := range seg.WaypointPath.Waypoints {
			if wp.LatE7 == nil || wp.LngE7 == nil {
				continue
			}
			order++
			p := *start
			p.Order = order
			p.Latitude = float64(*wp.LatE7) / e7
			p.Longitude = float64(*wp.LngE7) / e7
			points = append(points, p)
		}
	case seg.SimplifiedRawPath != nil:
		// Individually timestamped waypoints: timestamp and AM/PM are
		// recomputed per point, the rest is inherited.
		for _, rp := range seg.SimplifiedRawPath.Points {
			if rp.LatE7 == nil || rp.LngE7 == nil {
				continue
			}
			ms, err := parseMs(rp.TimestampMs)
			if err != nil {
				continue
			}
			order++
			p := *start
			p.Order = order
			p.Latitude = float64(*rp.LatE7) / e7
			p.Longitude = float64(*rp.LngE7) / e7
			p.OrigTimestamp = ms
			p.Timestamp = timeutil.ToLocalString(ms)
			p.TimeConvention = timeutil.ToAMPM(ms)
			points = append(points, p)
		}
	}
	return points
}

func parseMs(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
