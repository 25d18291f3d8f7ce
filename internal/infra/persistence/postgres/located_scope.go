package postgres

import (
	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

// scopeLocated restricts a query to rows with both coordinates set and,
// when bound is given, inside it. Bounds are inclusive so that the box stays
// a superset of the radius it was derived from.
func scopeLocated(db *gorm.DB, bound *orb.Bound) *gorm.DB {
	db = db.Where("latitude IS NOT NULL AND longitude IS NOT NULL")
	if bound == nil {
		return db
	}

	return db.
		Where("latitude BETWEEN ? AND ?", bound.Min.Lat(), bound.Max.Lat()).
		Where("longitude BETWEEN ? AND ?", bound.Min.Lon(), bound.Max.Lon())
}
