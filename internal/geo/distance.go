package geo

import "math"

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between two
// lng/lat points (haversine).
func Distance(lngA, latA, lngB, latB float64) float64 {
	la1 := latA * math.Pi / 180
	la2 := latB * math.Pi / 180
	dLat := (latB - latA) * math.Pi / 180
	dLng := (lngB - lngA) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// BoundingBox returns the lng/lat box that encloses a circle of the given
// radius around the point. Near the poles the lng span degenerates to the
// full circle.
func BoundingBox(lng, lat, radiusMeters float64) (minLng, maxLng, minLat, maxLat float64) {
	latDelta := radiusMeters / earthRadiusMeters * 180 / math.Pi
	minLat = lat - latDelta
	maxLat = lat + latDelta

	cos := math.Cos(lat * math.Pi / 180)
	if cos <= 0 {
		return -180, 180, minLat, maxLat
	}
	lngDelta := latDelta / cos
	return lng - lngDelta, lng + lngDelta, minLat, maxLat
}
