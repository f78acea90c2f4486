package geo

import "math"

const earthRadiusM = 6371000

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// DistanceMeters returns the haversine great-circle distance between two
// points in meters.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// WithinRadius reports whether the point lies inside the geofence. A nil
// center means the site has no stored coordinate and the check passes.
// The second return value is the measured distance in meters (0 when skipped).
func WithinRadius(lat, lon float64, center *Coordinate, radiusM float64) (bool, float64) {
	if center == nil {
		return true, 0
	}
	d := DistanceMeters(lat, lon, center.Latitude, center.Longitude)
	return d <= radiusM, d
}
