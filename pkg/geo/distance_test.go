package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMetersKnownDistance(t *testing.T) {
	// Jakarta to Bandung, roughly 115 km as the crow flies.
	d := HaversineMeters(-6.2088, 106.8456, -6.9175, 107.6191)
	assert.InDelta(t, 115000.0, d, 6000.0)
}

func TestHaversineMetersSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, HaversineMeters(10, 20, 10, 20))
}

func TestTimeSeconds(t *testing.T) {
	// 1000 m at 36 km/h (10 m/s) should take 100 seconds.
	assert.InDelta(t, 100.0, TimeSeconds(1000, 36), 1e-9)
}

func TestDefaultSpeedKMH(t *testing.T) {
	tests := []struct {
		highway string
		want    float64
	}{
		{"motorway", 100},
		{"trunk", 90},
		{"primary", 80},
		{"secondary", 60},
		{"tertiary", 50},
		{"unclassified", 40},
		{"residential", 30},
		{"living_street", 20},
		{"service", 20},
		{"footway", 30},
		{"", 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultSpeedKMH(tt.highway), "highway=%s", tt.highway)
	}
}

func TestDestinationPointAndMidpointRoundtrip(t *testing.T) {
	lat, lon := -6.2, 106.8
	dlat, dlon := DestinationPoint(lat, lon, 90, 1000)
	// travelling due east should not move latitude much and should move
	// longitude east.
	assert.InDelta(t, lat, dlat, 0.02)
	assert.Greater(t, dlon, lon)

	mlat, mlon := Midpoint(lat, lon, dlat, dlon)
	assert.True(t, mlat >= math.Min(lat, dlat) && mlat <= math.Max(lat, dlat)+0.01)
	_ = mlon
}
