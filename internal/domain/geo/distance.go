// Package geo holds the store-independent proximity core: great-circle
// distance, radius/category filtering with distance ranking, and the
// bounding-box and grid helpers that narrow candidate sets before filtering.
package geo

import (
	"math"

	"bridge/internal/domain/entity"
)

// EarthRadiusKm is the mean Earth radius. Stored expectations were computed
// with this exact value, so it must not be swapped for a WGS84 radius.
const EarthRadiusKm = 6371.0

// Infinite is the distance reported when either side has no location.
// It is larger than any radius a caller can pass, so a single `<` comparison
// excludes unlocated entities.
const Infinite = math.MaxFloat64

// Distance returns the haversine distance in kilometers between a and b,
// or Infinite when either coordinate is absent.
func Distance(a, b *entity.Coordinate) float64 {
	if a == nil || b == nil {
		return Infinite
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLng := toRadians(b.Longitude) - toRadians(a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
