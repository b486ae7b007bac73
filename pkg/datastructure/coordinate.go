package datastructure

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// IsFinite reports whether neither component is NaN or infinite.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) && !math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

// String returns the storage form "<lat>,<lon>" using the shortest decimal that round-trips.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// LatLon returns the coordinate as [lat, lon], the order go-polyline works in.
func (c Coordinate) LatLon() []float64 {
	return []float64{c.Lat, c.Lon}
}

var ErrMalformedCoordinate = errors.New("coordinate must look like \"<lat>,<lon>\"")

// ParseCoordinate parses the storage form written by Coordinate.String.
// Whitespace is not allowed anywhere and both fields must be finite.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, ErrMalformedCoordinate
	}
	lat, err := parseField(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("latitude %q: %w", parts[0], err)
	}
	lon, err := parseField(parts[1])
	if err != nil {
		return Coordinate{}, fmt.Errorf("longitude %q: %w", parts[1], err)
	}
	return NewCoordinate(lat, lon), nil
}

func parseField(s string) (float64, error) {
	if s == "" || strings.TrimSpace(s) != s {
		return 0, ErrMalformedCoordinate
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrMalformedCoordinate
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrMalformedCoordinate
	}
	return v, nil
}
