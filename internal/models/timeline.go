package models

// Raw schema of a Semantic Location History JSON document as exported by
// Google Takeout. Optional sub-objects are pointers so that presence is a
// typed nil check; E7 coordinates are pointers because a location object may
// appear with its coordinates stripped. Timestamps come as decimal strings
// of epoch milliseconds.

// TimelineFile is the top-level document: a flat list of timeline objects.
type TimelineFile struct {
	TimelineObjects []TimelineObject `json:"timelineObjects"`
}

// TimelineObject is a tagged union: exactly one of the two members is set.
type TimelineObject struct {
	ActivitySegment *ActivitySegment `json:"activitySegment,omitempty"`
	PlaceVisit      *PlaceVisit      `json:"placeVisit,omitempty"`
}

// Duration holds the start/end instants of a visit or segment.
type Duration struct {
	StartTimestampMs string `json:"startTimestampMs"`
	EndTimestampMs   string `json:"endTimestampMs"`
}

// Location is a named place or a bare coordinate pair, E7 fixed-point.
type Location struct {
	PlaceID     string `json:"placeId,omitempty"`
	LatitudeE7  *int64 `json:"latitudeE7,omitempty"`
	LongitudeE7 *int64 `json:"longitudeE7,omitempty"`
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
}

// PlaceVisit is a stationary dwell at one location.
type PlaceVisit struct {
	Location        Location `json:"location"`
	Duration        Duration `json:"duration"`
	VisitConfidence int      `json:"visitConfidence"`
}

// ActivitySegment is a movement record with optional intermediate waypoints
// in one of two mutually exclusive path representations.
type ActivitySegment struct {
	Duration          Duration           `json:"duration"`
	StartLocation     *Location          `json:"startLocation,omitempty"`
	EndLocation       *Location          `json:"endLocation,omitempty"`
	Distance          float64            `json:"distance,omitempty"`
	ActivityType      string             `json:"activityType,omitempty"`
	Confidence        string             `json:"confidence,omitempty"`
	WaypointPath      *WaypointPath      `json:"waypointPath,omitempty"`
	SimplifiedRawPath *SimplifiedRawPath `json:"simplifiedRawPath,omitempty"`
}

// WaypointPath carries coordinate-only waypoints; they share the segment's
// single timestamp.
type WaypointPath struct {
	Waypoints []Waypoint `json:"waypoints"`
}

// Waypoint is a bare E7 coordinate pair.
type Waypoint struct {
	LatE7 *int64 `json:"latE7,omitempty"`
	LngE7 *int64 `json:"lngE7,omitempty"`
}

// SimplifiedRawPath carries waypoints that are individually timestamped.
type SimplifiedRawPath struct {
	Points []RawPathPoint `json:"points"`
}

// RawPathPoint is a coordinate pair with its own millisecond timestamp.
type RawPathPoint struct {
	LatE7          *int64 `json:"latE7,omitempty"`
	LngE7          *int64 `json:"lngE7,omitempty"`
	TimestampMs    string `json:"timestampMs,omitempty"`
	AccuracyMeters int    `json:"accuracyMeters,omitempty"`
}
