// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the marketplace.
package entity

import (
	"fmt"
	"math"

	domainerrors "bridge/internal/domain/errors"

	"github.com/paulmach/orb"
)

// Valid ranges for geographic coordinates, in degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Coordinate is a validated latitude/longitude pair in decimal degrees.
// An unknown location is represented by a nil *Coordinate, never by a
// Coordinate with only one of its fields set.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinate builds a Coordinate, rejecting non-finite or out-of-range values.
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	c := Coordinate{Latitude: lat, Longitude: lng}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

// Validate reports ErrInvalidCoordinate when either component is outside its range.
func (c Coordinate) Validate() error {
	if !isFinite(c.Latitude) || c.Latitude < MinLatitude || c.Latitude > MaxLatitude {
		return domainerrors.ErrInvalidCoordinate.WithDetails(fmt.Sprintf("latitude %v outside [-90, 90]", c.Latitude))
	}
	if !isFinite(c.Longitude) || c.Longitude < MinLongitude || c.Longitude > MaxLongitude {
		return domainerrors.ErrInvalidCoordinate.WithDetails(fmt.Sprintf("longitude %v outside [-180, 180]", c.Longitude))
	}

	return nil
}

// Point converts the coordinate to an orb.Point, which is ordered [lng, lat].
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// CoordinateFromPoint is the inverse of Point.
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Latitude: p.Lat(), Longitude: p.Lon()}
}

// Ptr returns a pointer to a copy of c.
func (c Coordinate) Ptr() *Coordinate {
	return &c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
