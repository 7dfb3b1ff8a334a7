package geo

import (
	"math"
	"testing"
)

// Hong Kong landmark coordinates used across the geo tests.
var (
	victoriaPeak = [2]float64{22.2759, 114.1455}
	tstPromenade = [2]float64{22.2934, 114.1722}
	oceanPark    = [2]float64{22.2467, 114.1757}
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same location",
			lat1:      victoriaPeak[0],
			lng1:      victoriaPeak[1],
			lat2:      victoriaPeak[0],
			lng2:      victoriaPeak[1],
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "Victoria Peak to TST Promenade",
			lat1:      victoriaPeak[0],
			lng1:      victoriaPeak[1],
			lat2:      tstPromenade[0],
			lng2:      tstPromenade[1],
			expected:  3400, // roughly 3.4 km across the harbour
			tolerance: 400,
		},
		{
			name:      "Victoria Peak to Ocean Park",
			lat1:      victoriaPeak[0],
			lng1:      victoriaPeak[1],
			lat2:      oceanPark[0],
			lng2:      oceanPark[1],
			expected:  4400,
			tolerance: 600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HaversineDistance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("HaversineDistance() = %v, expected %v (+/- %v)", result, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	forward := HaversineDistance(victoriaPeak[0], victoriaPeak[1], oceanPark[0], oceanPark[1])
	backward := HaversineDistance(oceanPark[0], oceanPark[1], victoriaPeak[0], victoriaPeak[1])

	if math.Abs(forward-backward) > 1e-6 {
		t.Errorf("Expected symmetric distance, got %v and %v", forward, backward)
	}
}

func TestHaversineDistance_TriangleInequality(t *testing.T) {
	ab := HaversineDistance(victoriaPeak[0], victoriaPeak[1], tstPromenade[0], tstPromenade[1])
	bc := HaversineDistance(tstPromenade[0], tstPromenade[1], oceanPark[0], oceanPark[1])
	ac := HaversineDistance(victoriaPeak[0], victoriaPeak[1], oceanPark[0], oceanPark[1])

	if ac > ab+bc {
		t.Errorf("Triangle inequality violated: %v > %v + %v", ac, ab, bc)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		expected  float64
		tolerance float64
	}{
		{
			name: "Due north",
			lat1: 22.0, lng1: 114.0,
			lat2: 23.0, lng2: 114.0,
			expected: 0, tolerance: 0.5,
		},
		{
			name: "Due east",
			lat1: 22.0, lng1: 114.0,
			lat2: 22.0, lng2: 115.0,
			expected: 90, tolerance: 1.0,
		},
		{
			name: "Due south",
			lat1: 23.0, lng1: 114.0,
			lat2: 22.0, lng2: 114.0,
			expected: 180, tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Bearing(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("Bearing() = %v, expected %v (+/- %v)", result, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestBearing_Normalized(t *testing.T) {
	// Westward bearings must come back in [0, 360), not negative.
	result := Bearing(22.0, 114.0, 22.0, 113.0)
	if result < 0 || result >= 360 {
		t.Errorf("Bearing() = %v, expected value in [0, 360)", result)
	}
	if math.Abs(result-270) > 1.0 {
		t.Errorf("Bearing() = %v, expected ~270 for due west", result)
	}
}

func TestTravelTimeMinutes(t *testing.T) {
	tests := []struct {
		name           string
		distanceMeters float64
		expected       int
	}{
		{"Zero distance", 0, 0},
		{"Negative distance", -10, 0},
		{"Exactly one minute", 500, 1},
		{"Rounds up", 501, 2},
		{"Five kilometers", 5000, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TravelTimeMinutes(tt.distanceMeters); got != tt.expected {
				t.Errorf("TravelTimeMinutes(%v) = %d, expected %d", tt.distanceMeters, got, tt.expected)
			}
		})
	}
}
