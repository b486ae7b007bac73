package geo

import (
	"github.com/golang/geo/s2"
	"github.com/uber/h3-go/v4"
)

// mean earth radius in meters.
const earthRadiusM = 6371008.8

const (
	MinH3Resolution = 0
	MaxH3Resolution = 15
)

// OffsetMeters returns the great-circle distance in meters between two lat/lon points.
func OffsetMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * earthRadiusM
}

// Cell returns the H3 index of (lat, lon) at the given resolution.
func Cell(lat, lon float64, resolution int) string {
	home := h3.NewLatLng(lat, lon)
	return h3.LatLngToCell(home, resolution).String()
}
