package overlap

import (
	"errors"
	"fmt"

	"github.com/jengzang/overlap-backend-go/internal/models"
	"github.com/jengzang/overlap-backend-go/internal/spatial"
)

// Default thresholds
const (
	DefaultTimeThresholdMin = 120
	DefaultDistThresholdKm  = 1.0
)

// ErrUnknownUser reports a point in the stream whose user id matches neither
// configured party. That is a caller bug, not bad input data, so detection
// aborts instead of skipping the point.
var ErrUnknownUser = errors.New("point does not belong to either configured user")

// Detector finds candidate co-presence events between two users in a
// merged, time-sorted point stream. It keeps one "last seen" slot per user
// and compares each incoming point against the other user's slot only: a
// linear-time nearest-predecessor check. It can miss an overlap against an
// older point of the other user that would have been a closer match, and
// can under- or over-report on bursty alternating data. That tradeoff is
// part of the contract; an all-pairs search would change output on real
// inputs.
type Detector struct {
	userA string
	userB string

	timeThresholdMs int64
	distThresholdKm float64

	lastSeenA *models.Point
	lastSeenB *models.Point
}

// NewDetector creates a detector for the two given users. Thresholds at or
// below zero fall back to the defaults (120 minutes, 1 km).
func NewDetector(userA, userB string, timeThresholdMin int64, distThresholdKm float64) *Detector {
	if timeThresholdMin <= 0 {
		timeThresholdMin = DefaultTimeThresholdMin
	}
	if distThresholdKm <= 0 {
		distThresholdKm = DefaultDistThresholdKm
	}
	return &Detector{
		userA:           userA,
		userB:           userB,
		timeThresholdMs: timeThresholdMin * 60 * 1000,
		distThresholdKm: distThresholdKm,
	}
}

// Detect runs the single forward pass over the merged stream and returns
// every qualifying pair, in detection order. Each point unconditionally
// overwrites its user's last-seen slot after being compared.
func (d *Detector) Detect(stream []models.Point) ([]models.Match, error) {
	var matches []models.Match
	for i := range stream {
		p := &stream[i]
		switch p.UserID {
		case d.userA:
			if d.lastSeenB != nil {
				if m, ok := d.compare(d.lastSeenB, p); ok {
					matches = append(matches, m)
				}
			}
			d.lastSeenA = p
		case d.userB:
			if d.lastSeenA != nil {
				if m, ok := d.compare(d.lastSeenA, p); ok {
					matches = append(matches, m)
				}
			}
			d.lastSeenB = p
		default:
			return nil, fmt.Errorf("%w: got %q, expected %q or %q", ErrUnknownUser, p.UserID, d.userA, d.userB)
		}
	}
	return matches, nil
}

// compare applies the threshold rule to the other user's last-seen point and
// the current point. Both deltas are absolute and both bounds are inclusive.
func (d *Detector) compare(last, cur *models.Point) (models.Match, bool) {
	timeDelta := cur.OrigTimestamp - last.OrigTimestamp
	if timeDelta < 0 {
		timeDelta = -timeDelta
	}
	if timeDelta > d.timeThresholdMs {
		return models.Match{}, false
	}
	dist := spatial.HaversineKm(last.Latitude, last.Longitude, cur.Latitude, cur.Longitude)
	if dist > d.distThresholdKm {
		return models.Match{}, false
	}
	return models.Match{
		PointA:      *last,
		PointB:      *cur,
		TimeDeltaMs: timeDelta,
		DistanceKm:  dist,
	}, true
}
