package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Earth's mean radius.
const (
	EarthRadiusKm     = 6371.0
	EarthRadiusMeters = 6371000.0
)

// DistanceFunc is the signature of a great-circle distance function injected
// into the aggregation fold. Arguments are degrees, result is kilometers.
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// HaversineDistance calculates the great-circle distance in kilometers
// between two points given in decimal degrees.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// Floating-point error can push a just outside [0, 1] for coincident or
	// antipodal points, which would feed Sqrt a negative argument.
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceS2 computes the same distance through the S2 geometry library.
// Kept as an independent implementation to cross-check the haversine fold.
func DistanceS2(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// ValidCoordinate reports whether a latitude/longitude pair is finite and
// within the representable range.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
