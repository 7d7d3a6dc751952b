// Package geo provides the great-circle distance and radius-filtering
// primitives used by the comp selector. All functions are pure.
package geo

import (
	"fmt"
	"math"
)

const earthRadiusMiles = 3958.8

// InvalidCoordinateError reports a latitude/longitude outside the valid
// decimal-degree ranges.
type InvalidCoordinateError struct {
	Lat float64
	Lon float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%g lon=%g (want lat in [-90,90], lon in [-180,180])", e.Lat, e.Lon)
}

func validate(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return &InvalidCoordinateError{Lat: lat, Lon: lon}
	}
	return nil
}

// DistanceMiles returns the haversine great-circle distance in miles between
// two points given in decimal degrees.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := validate(lat1, lon1); err != nil {
		return 0, err
	}
	if err := validate(lat2, lon2); err != nil {
		return 0, err
	}
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c, nil
}

// WithinRadius reports whether the candidate point lies within radiusMiles of
// the subject point.
func WithinRadius(subjLat, subjLon, candLat, candLon, radiusMiles float64) (bool, error) {
	d, err := DistanceMiles(subjLat, subjLon, candLat, candLon)
	if err != nil {
		return false, err
	}
	return d <= radiusMiles, nil
}

// BoundingBox returns (minLat, minLon, maxLat, maxLon) for a box that fully
// contains the circle of radiusMiles around the center. Used to pre-filter
// candidates in SQL before the exact haversine check.
func BoundingBox(lat, lon, radiusMiles float64) (minLat, minLon, maxLat, maxLon float64, err error) {
	if err := validate(lat, lon); err != nil {
		return 0, 0, 0, 0, err
	}
	const milesPerLatDegree = 69.0
	milesPerLonDegree := milesPerLatDegree * math.Cos(lat*math.Pi/180)
	latDelta := radiusMiles / milesPerLatDegree
	lonDelta := radiusMiles / milesPerLonDegree
	return lat - latDelta, lon - lonDelta, lat + latDelta, lon + lonDelta, nil
}
