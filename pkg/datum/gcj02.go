// Package datum converts coordinates between the GCJ-02 datum used by mainland China map
// providers (Amap, Tencent) and WGS-84 used by GPS, Google Maps and OpenStreetMap.
//
// Every function is pure and safe for concurrent use. Input ranges are not validated:
// NaN and infinities propagate through the arithmetic.
package datum

import (
	"math"
	"strings"
)

const (
	// Axis is the semi-major axis (meters) of the Krasovsky 1940 ellipsoid the GCJ-02 offset is built on.
	Axis = 6378245.0
	// EccentricitySquared is the first eccentricity squared of that ellipsoid.
	EccentricitySquared = 0.00669342162296594323
)

// region gate. a rough bounding box of mainland China, bounds are inclusive.
const (
	MinLon = 72.004
	MaxLon = 137.8347
	MinLat = 0.8293
	MaxLat = 55.8271
)

// ChinaRegion is the region code that enables the GCJ-02 correction in ConvertByRegion.
const ChinaRegion = "CN"

// InChina reports whether (lat, lon) is inside the region gate. Any NaN makes it false.
func InChina(lat, lon float64) bool {
	return lon >= MinLon && lon <= MaxLon && lat >= MinLat && lat <= MaxLat
}

// IsChinaRegion reports whether code designates China, ignoring case and surrounding spaces.
func IsChinaRegion(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), ChinaRegion)
}

// GCJ02ToWGS84 converts a GCJ-02 coordinate to WGS-84. Points outside the region gate are
// returned unchanged.
//
// The inverse is a single linearised step: the forward offset is evaluated at the GCJ-02
// point itself and subtracted. Residual error ranges from centimeters to a few meters.
func GCJ02ToWGS84(lat, lon float64) (float64, float64) {
	if !InChina(lat, lon) {
		return lat, lon
	}
	dLat, dLon := offset(lat, lon)
	mgLat := lat + dLat
	mgLon := lon + dLon
	return lat*2 - mgLat, lon*2 - mgLon
}

// WGS84ToGCJ02 applies the forward GCJ-02 offset to a WGS-84 coordinate. Points outside the
// region gate are returned unchanged.
func WGS84ToGCJ02(lat, lon float64) (float64, float64) {
	if !InChina(lat, lon) {
		return lat, lon
	}
	dLat, dLon := offset(lat, lon)
	return lat + dLat, lon + dLon
}

// ConvertByRegion runs GCJ02ToWGS84 when region designates China and returns the input
// unchanged for any other region, including the empty one.
func ConvertByRegion(lat, lon float64, region string) (float64, float64) {
	if IsChinaRegion(region) {
		return GCJ02ToWGS84(lat, lon)
	}
	return lat, lon
}

// offset returns the GCJ-02 offset at (lat, lon) in degrees.
func offset(lat, lon float64) (dLat, dLon float64) {
	x, y := lon-105.0, lat-35.0
	dLat = transformLat(x, y)
	dLon = transformLon(x, y)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - EccentricitySquared*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((Axis * (1 - EccentricitySquared)) / (magic * sqrtMagic) * math.Pi)
	dLon = (dLon * 180.0) / (Axis / sqrtMagic * math.Cos(radLat) * math.Pi)
	return dLat, dLon
}

func transformLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0
	return ret
}

func transformLon(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}
