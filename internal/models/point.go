package models

// Point is the uniform unit of output of timeline normalization. Every
// record shape in a location-history export (place visit, activity segment,
// both waypoint representations) flattens into this schema.
type Point struct {
	ID int64 `json:"id,omitempty" db:"id"`

	// Assigned by the archive loader, not the normalizer
	UserID string `json:"user_id" db:"user_id"`

	// TripID groups the points of one segment or visit: the segment's
	// start timestamp in milliseconds, or the visit's placeId.
	TripID string `json:"trip_id" db:"trip_id"`
	Order  int    `json:"order" db:"point_order"`

	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`

	// OrigTimestamp is epoch milliseconds, the canonical sort key.
	// Timestamp is its human-readable local rendering.
	OrigTimestamp int64  `json:"orig_timestamp" db:"orig_timestamp"`
	Timestamp     string `json:"timestamp" db:"timestamp"`

	// Distance is the segment-level reported distance, replicated across
	// all waypoints of the segment; 0 for place visits.
	Distance float64 `json:"distance" db:"distance"`

	// Label is the transport mode for movement points or the place
	// name/address for visits.
	Label          string `json:"label" db:"label"`
	Confidence     string `json:"confidence" db:"confidence"`
	TimeConvention string `json:"time_convention" db:"time_convention"`
}

// Default substitutions for absent optional fields
const (
	LabelUnknown = "UNKNOWN"
	LabelPlace   = "PLACE"
	ConfidenceNA = "N/A"
	ConventionAM = "AM"
	ConventionPM = "PM"
)

// PointsResponse represents a paginated response of points
type PointsResponse struct {
	Data       []Point `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// UserSummary describes one ingested user's footprint in the points table
type UserSummary struct {
	UserID         string `json:"user_id" db:"user_id"`
	PointCount     int64  `json:"point_count" db:"point_count"`
	FirstTimestamp int64  `json:"first_timestamp" db:"first_timestamp"`
	LastTimestamp  int64  `json:"last_timestamp" db:"last_timestamp"`
}
