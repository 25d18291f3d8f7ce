package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel is the GORM-specific struct for the 'products' table.
type ProductModel struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key"`
	VendorID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Vendor      VendorModel `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	Name        string      `gorm:"type:varchar(255);not null"`
	Description string      `gorm:"type:text"`
	Price       float64     `gorm:"type:decimal(12,2);not null;default:0"`
	Category    string      `gorm:"type:varchar(100);not null;default:'';index"`
	ImageURL    string      `gorm:"type:text"`
	IsActive    bool        `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
