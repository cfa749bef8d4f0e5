package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/overlap-backend-go/internal/models"
	"github.com/jengzang/overlap-backend-go/internal/spatial"
)

func point(user string, ts int64, lat, lon float64) models.Point {
	return models.Point{UserID: user, OrigTimestamp: ts, Latitude: lat, Longitude: lon}
}

func TestDetect_SamePlaceSameTime(t *testing.T) {
	stream := Merge(
		[]models.Point{point("a", 1000, 10.0, 20.0)},
		[]models.Point{point("b", 1000, 10.0, 20.0)},
	)

	matches, err := NewDetector("a", "b", 120, 1).Detect(stream)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(0), matches[0].TimeDeltaMs)
	assert.InDelta(t, 0.0, matches[0].DistanceKm, 1e-9)
}

func TestDetect_TimeThresholdBoundary(t *testing.T) {
	const thresholdMs = 120 * 60 * 1000

	// Exactly at the threshold: reported (inclusive bound)
	stream := Merge(
		[]models.Point{point("a", 1000, 10.0, 20.0)},
		[]models.Point{point("b", 1000+thresholdMs, 10.0, 20.0)},
	)
	matches, err := NewDetector("a", "b", 120, 1).Detect(stream)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, int64(thresholdMs), matches[0].TimeDeltaMs)

	// One millisecond beyond: not reported
	stream = Merge(
		[]models.Point{point("a", 1000, 10.0, 20.0)},
		[]models.Point{point("b", 1000+thresholdMs+1, 10.0, 20.0)},
	)
	matches, err = NewDetector("a", "b", 120, 1).Detect(stream)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDetect_DistanceThresholdBoundary(t *testing.T) {
	// ~1.99 km apart along a meridian
	a := point("a", 1000, 10.0, 20.0)
	b := point("b", 1000, 10.0179, 20.0)
	dist := spatial.HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	require.Greater(t, dist, 1.0)
	require.Less(t, dist, 2.0)

	stream := Merge([]models.Point{a}, []models.Point{b})

	// 1 km threshold: too far
	matches, err := NewDetector("a", "b", 120, 1).Detect(stream)
	require.NoError(t, err)
	assert.Empty(t, matches)

	// 2 km threshold: match
	matches, err = NewDetector("a", "b", 120, 2).Detect(stream)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, dist, matches[0].DistanceKm, 1e-9)

	// Exactly at the computed distance: still a match (inclusive bound)
	matches, err = NewDetector("a", "b", 120, dist).Detect(stream)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestDetect_OrderIndependentDeltas(t *testing.T) {
	// Which user's point arrives first must not change the deltas
	forward := Merge(
		[]models.Point{point("a", 1000, 10.0, 20.0)},
		[]models.Point{point("b", 61000, 10.001, 20.0)},
	)
	backward := Merge(
		[]models.Point{point("b", 1000, 10.001, 20.0)},
		[]models.Point{point("a", 61000, 10.0, 20.0)},
	)

	mf, err := NewDetector("a", "b", 120, 1).Detect(forward)
	require.NoError(t, err)
	mb, err := NewDetector("a", "b", 120, 1).Detect(backward)
	require.NoError(t, err)

	require.Len(t, mf, 1)
	require.Len(t, mb, 1)
	assert.Equal(t, mf[0].TimeDeltaMs, mb[0].TimeDeltaMs)
	assert.InDelta(t, mf[0].DistanceKm, mb[0].DistanceKm, 1e-12)
}

func TestDetect_ComparesOnlyLastSeen(t *testing.T) {
	// u1's older point at the same place as u2's late point is never
	// revisited: only the most recent u1 point is compared. Nearest
	// predecessor, not all pairs.
	stream := Merge(
		[]models.Point{
			point("a", 1000, 10.0, 20.0),
			point("a", 2000, 50.0, 60.0), // far away, overwrites the slot
		},
		[]models.Point{point("b", 3000, 10.0, 20.0)},
	)

	matches, err := NewDetector("a", "b", 120, 1).Detect(stream)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDetect_EachQualifyingPairReported(t *testing.T) {
	// Alternating points within thresholds: every comparison fires
	stream := Merge(
		[]models.Point{point("a", 1000, 10.0, 20.0), point("a", 3000, 10.0, 20.0)},
		[]models.Point{point("b", 2000, 10.0, 20.0), point("b", 4000, 10.0, 20.0)},
	)

	matches, err := NewDetector("a", "b", 120, 1).Detect(stream)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestDetect_UnknownUserAborts(t *testing.T) {
	stream := []models.Point{
		point("a", 1000, 10.0, 20.0),
		point("intruder", 2000, 10.0, 20.0),
	}

	_, err := NewDetector("a", "b", 120, 1).Detect(stream)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownUser)
	assert.Contains(t, err.Error(), "intruder")
}

func TestDetect_NoComparisonBeforeBothSeen(t *testing.T) {
	stream := []models.Point{
		point("a", 1000, 10.0, 20.0),
		point("a", 2000, 10.0, 20.0),
	}

	matches, err := NewDetector("a", "b", 120, 1).Detect(stream)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestNewDetector_DefaultThresholds(t *testing.T) {
	d := NewDetector("a", "b", 0, 0)
	assert.Equal(t, int64(DefaultTimeThresholdMin*60*1000), d.timeThresholdMs)
	assert.Equal(t, DefaultDistThresholdKm, d.distThresholdKm)
}
