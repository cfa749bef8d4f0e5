package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Jakarta to Bandung, roughly 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	assert.Greater(t, d, 100.0)
	assert.Less(t, d, 140.0)
}

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(37.5, -122.4, 37.5, -122.4), 1e-9)
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := HaversineKm(37.5, -122.4, 37.6, -122.5)
	b := HaversineKm(37.6, -122.5, 37.5, -122.4)
	assert.InDelta(t, a, b, 1e-12)
}

func TestHaversineMeters(t *testing.T) {
	km := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	assert.InDelta(t, km*1000, HaversineMeters(-6.2, 106.816, -6.9175, 107.6191), 1e-6)
}
