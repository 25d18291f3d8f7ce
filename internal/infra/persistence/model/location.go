package model

import "bridge/internal/domain/entity"

// LocationColumns maps an optional coordinate onto two nullable columns.
// Both are written together; the table CHECK forbids a half-set pair.
type LocationColumns struct {
	Latitude  *float64 `gorm:"type:decimal(10,8);index;check:chk_location_pair,(latitude IS NULL) = (longitude IS NULL)"`
	Longitude *float64 `gorm:"type:decimal(11,8)"`
}

// NewLocationColumns converts a domain coordinate into its column pair.
func NewLocationColumns(c *entity.Coordinate) LocationColumns {
	if c == nil {
		return LocationColumns{}
	}

	lat, lng := c.Latitude, c.Longitude

	return LocationColumns{Latitude: &lat, Longitude: &lng}
}

// Coordinate converts the column pair back. A half-set pair is treated as unknown.
func (l LocationColumns) Coordinate() *entity.Coordinate {
	if l.Latitude == nil || l.Longitude == nil {
		return nil
	}

	return &entity.Coordinate{Latitude: *l.Latitude, Longitude: *l.Longitude}
}
