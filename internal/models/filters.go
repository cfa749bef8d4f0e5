package models

// PointFilter represents filter parameters for querying normalized points
type PointFilter struct {
	UserID    string `form:"userId"`
	TripID    string `form:"tripId"`
	Label     string `form:"label"`
	StartTime int64  `form:"startTime"` // Epoch milliseconds
	EndTime   int64  `form:"endTime"`   // Epoch milliseconds
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// MatchFilter represents filter parameters for querying stored matches
type MatchFilter struct {
	UserA    string `form:"userA"`
	UserB    string `form:"userB"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// OverlapRequest is the payload of a detection run. Threshold overrides are
// pointers so that an omitted field falls back to the configured default.
type OverlapRequest struct {
	UserA            string   `json:"user_a" binding:"required"`
	UserB            string   `json:"user_b" binding:"required"`
	TimeThresholdMin *int64   `json:"time_threshold_minutes,omitempty"`
	DistThresholdKm  *float64 `json:"distance_threshold_km,omitempty"`
}

// OverlapResult summarizes one detection run
type OverlapResult struct {
	UserA            string  `json:"user_a"`
	UserB            string  `json:"user_b"`
	TimeThresholdMin int64   `json:"time_threshold_minutes"`
	DistThresholdKm  float64 `json:"distance_threshold_km"`
	PointsScanned    int     `json:"points_scanned"`
	Matches          []Match `json:"matches"`
}
