package geo

import (
	"math"
	"testing"

	"bridge/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

var (
	newYork    = entity.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	losAngeles = entity.Coordinate{Latitude: 34.0522, Longitude: -118.2437}
	taipei101  = entity.Coordinate{Latitude: 25.0330, Longitude: 121.5654}
)

func TestDistance_NewYorkToLosAngeles(t *testing.T) {
	d := Distance(&newYork, &losAngeles)

	assert.InEpsilon(t, 3936.0, d, 0.01)
}

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []entity.Coordinate{newYork, losAngeles, taipei101, {Latitude: 90, Longitude: 0}, {Latitude: -90, Longitude: 180}}

	for _, p := range points {
		assert.Zero(t, Distance(&p, &p), "distance from %v to itself", p)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]entity.Coordinate{
		{newYork, losAngeles},
		{taipei101, newYork},
		{{Latitude: 0, Longitude: 179.9}, {Latitude: 0, Longitude: -179.9}},
		{{Latitude: 89.9, Longitude: 10}, {Latitude: 89.9, Longitude: -170}},
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		assert.InDelta(t, Distance(&a, &b), Distance(&b, &a), 1e-9)
		assert.GreaterOrEqual(t, Distance(&a, &b), 0.0)
	}
}

func TestDistance_AntimeridianAndPoles(t *testing.T) {
	east := entity.Coordinate{Latitude: 0, Longitude: 179.95}
	west := entity.Coordinate{Latitude: 0, Longitude: -179.95}
	// 0.1 degree of longitude on the equator.
	assert.InDelta(t, 11.12, Distance(&east, &west), 0.01)

	northA := entity.Coordinate{Latitude: 90, Longitude: 0}
	northB := entity.Coordinate{Latitude: 90, Longitude: 120}
	assert.InDelta(t, 0, Distance(&northA, &northB), 1e-6)

	south := entity.Coordinate{Latitude: -90, Longitude: 0}
	assert.InDelta(t, math.Pi*EarthRadiusKm, Distance(&northA, &south), 1e-6)
}

func TestDistance_MissingCoordinateIsInfinite(t *testing.T) {
	assert.Equal(t, Infinite, Distance(&newYork, nil))
	assert.Equal(t, Infinite, Distance(nil, &newYork))
	assert.Equal(t, Infinite, Distance(nil, nil))
}
