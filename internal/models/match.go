package models

// Match is a candidate co-presence event between two points drawn from
// different users: both points fell inside the configured time and distance
// thresholds. PointA is the older last-seen point, PointB the point whose
// arrival triggered the comparison.
type Match struct {
	ID int64 `json:"id,omitempty" db:"id"`

	PointA Point `json:"point_a"`
	PointB Point `json:"point_b"`

	// TimeDeltaMs is |PointA.OrigTimestamp - PointB.OrigTimestamp|.
	TimeDeltaMs int64 `json:"time_delta_ms" db:"time_delta_ms"`

	// DistanceKm is the great-circle distance between the two points.
	DistanceKm float64 `json:"distance_km" db:"distance_km"`

	// CreatedAt is epoch milliseconds of when the match was stored
	CreatedAt int64 `json:"created_at,omitempty" db:"created_at"`
}

// MatchesResponse represents a paginated response of matches
type MatchesResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
