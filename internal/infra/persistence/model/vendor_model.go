package model

import (
	"time"

	"github.com/google/uuid"
)

// VendorModel is the GORM-specific struct for the 'vendors' table.
type VendorModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Category        string    `gorm:"type:varchar(100);not null;default:'';index"`
	Description     string    `gorm:"type:text"`
	Phone           string    `gorm:"type:varchar(50)"`
	Address         string    `gorm:"type:text"`
	LocationColumns `gorm:"embedded"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (VendorModel) TableName() string {
	return "vendors"
}
