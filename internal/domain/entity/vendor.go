package entity

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is a seller with an optional storefront location and a category tag
// used by proximity search.
type Vendor struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	Location    *Coordinate `json:"location,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// VendorPatch holds the optional vendor fields of a general update.
type VendorPatch struct {
	Name        *string
	Email       *string
	Category    *string
	Description *string
	Phone       *string
	Address     *string
}

// Apply copies every non-nil field of the patch onto v.
func (p VendorPatch) Apply(v *Vendor) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Email != nil {
		v.Email = *p.Email
	}
	if p.Category != nil {
		v.Category = *p.Category
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.Phone != nil {
		v.Phone = *p.Phone
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
}

// Identity implements geo.Locatable.
func (v *Vendor) Identity() uuid.UUID { return v.ID }

// Position implements geo.Locatable.
func (v *Vendor) Position() *Coordinate { return v.Location }

// CategoryTag implements geo.Locatable.
func (v *Vendor) CategoryTag() string { return v.Category }
