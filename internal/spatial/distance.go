package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineKm returns the great-circle distance between two points in kilometers
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Midpoint returns the point halfway along the great circle between two points
func Midpoint(lat1, lon1, lat2, lon2 float64) (float64, float64) {
	p1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lon1))
	p2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lon2))

	mid := s2.LatLngFromPoint(s2.Interpolate(0.5, p1, p2))
	return mid.Lat.Degrees(), mid.Lng.Degrees()
}

// ArcAltitude returns how high an arc between two points should rise above the
// globe surface, as a fraction of the globe radius.
// Antipodal points reach maxAlt, coincident points minAlt.
func ArcAltitude(distanceKm, minAlt, maxAlt float64) float64 {
	halfCircumference := math.Pi * EarthRadiusKm
	ratio := distanceKm / halfCircumference
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return minAlt + (maxAlt-minAlt)*ratio
}
