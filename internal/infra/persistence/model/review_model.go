package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel is the GORM-specific struct for the 'reviews' table.
// The unique index on (user_id, product_id) is what makes rating upserts safe
// under concurrent submissions.
type ReviewModel struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	User      UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product;index"`
	Product   ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Rating    int          `gorm:"not null"`
	Comment   string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// RatingAggregateRow receives the AVG/COUNT projection over reviews.
type RatingAggregateRow struct {
	Average float64
	Count   int64
}

// All lists every model for schema migration, parents first.
func All() []any {
	return []any{
		&UserModel{},
		&VendorModel{},
		&ProductModel{},
		&ReviewModel{},
	}
}
