package geo

import (
	"math"

	"bridge/internal/domain/entity"

	"github.com/paulmach/orb"
)

// boundPaddingDeg widens bounding boxes slightly so floating point rounding
// never drops a point that Filter would keep.
const boundPaddingDeg = 1e-9

// BoundAround returns the latitude/longitude box that contains every point
// within radiusKm of center on the same sphere Distance uses. Stores use it
// to fetch a bounded candidate set before Filter makes the exact decision.
//
// ok is false when the box would cross a pole or the antimeridian (or the
// radius is not positive); callers must then fall back to an unbounded scan.
func BoundAround(center entity.Coordinate, radiusKm float64) (bound orb.Bound, ok bool) {
	if !(radiusKm > 0) || math.IsInf(radiusKm, 0) {
		return orb.Bound{}, false
	}

	angular := radiusKm / EarthRadiusKm
	if angular >= math.Pi/2 {
		return orb.Bound{}, false
	}

	dLat := toDegrees(angular)
	minLat := center.Latitude - dLat - boundPaddingDeg
	maxLat := center.Latitude + dLat + boundPaddingDeg
	if minLat < entity.MinLatitude || maxLat > entity.MaxLatitude {
		return orb.Bound{}, false
	}

	ratio := math.Sin(angular) / math.Cos(toRadians(center.Latitude))
	if ratio >= 1 {
		return orb.Bound{}, false
	}

	dLng := toDegrees(math.Asin(ratio))
	minLng := center.Longitude - dLng - boundPaddingDeg
	maxLng := center.Longitude + dLng + boundPaddingDeg
	if minLng < entity.MinLongitude || maxLng > entity.MaxLongitude {
		return orb.Bound{}, false
	}

	return orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}, true
}
