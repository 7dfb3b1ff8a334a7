// Package geo provides great-circle math for location coordinates.
package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used for angular-to-linear
// distance conversion.
const EarthRadiusMeters = 6371000.0

// urban travel speed assumed when estimating time between locations:
// 30 km/h expressed in meters per minute.
const travelSpeedMetersPerMinute = 500.0

// HaversineDistance returns the great-circle distance in meters between two
// points given in decimal degrees.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Bearing returns the initial bearing (forward azimuth) in degrees from
// point 1 to point 2, normalized to [0, 360) where 0 is north.
func Bearing(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lngDiff := (lng2 - lng1) * math.Pi / 180

	y := math.Sin(lngDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lngDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// TravelTimeMinutes estimates how long it takes to cover the given distance
// at urban travel speed, rounded up to whole minutes.
func TravelTimeMinutes(distanceMeters float64) int {
	if distanceMeters <= 0 {
		return 0
	}
	return int(math.Ceil(distanceMeters / travelSpeedMetersPerMinute))
}
