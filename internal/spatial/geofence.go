package spatial

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// Geofence is a fixed rectangular lat/lng boundary. Membership is inclusive
// on all four edges: a point sitting exactly on the boundary is inside.
type Geofence struct {
	latMin, latMax float64
	lonMin, lonMax float64
	rect           s2.Rect
}

// NewGeofence builds a geofence from degree bounds. Malformed bounds are a
// configuration error and must abort startup, since every downstream count
// would be silently wrong.
func NewGeofence(latMin, latMax, lonMin, lonMax float64) (*Geofence, error) {
	if !ValidCoordinate(latMin, lonMin) || !ValidCoordinate(latMax, lonMax) {
		return nil, fmt.Errorf("geofence bounds out of range: lat [%v, %v], lon [%v, %v]",
			latMin, latMax, lonMin, lonMax)
	}
	if latMin > latMax || lonMin > lonMax {
		return nil, fmt.Errorf("geofence bounds inverted: lat [%v, %v], lon [%v, %v]",
			latMin, latMax, lonMin, lonMax)
	}

	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(latMin, lonMin))
	rect = rect.AddPoint(s2.LatLngFromDegrees(latMax, lonMax))

	return &Geofence{
		latMin: latMin, latMax: latMax,
		lonMin: lonMin, lonMax: lonMax,
		rect: rect,
	}, nil
}

// Contains reports whether a point is inside the rectangle (inclusive).
func (g *Geofence) Contains(lat, lon float64) bool {
	return g.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}

// Bounds returns the configured degree bounds.
func (g *Geofence) Bounds() (latMin, latMax, lonMin, lonMax float64) {
	return g.latMin, g.latMax, g.lonMin, g.lonMax
}

func (g *Geofence) String() string {
	return fmt.Sprintf("lat [%v, %v], lon [%v, %v]", g.latMin, g.latMax, g.lonMin, g.lonMax)
}
