package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a marketplace shopper. Users can be located so vendors can find
// nearby demand, and they author product reviews.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Location  *Coordinate `json:"location,omitempty"` // nil until the user shares a location.
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserPatch lists the profile fields a general update may change.
// Location is deliberately absent; it only changes through a location update.
type UserPatch struct {
	Name  *string
	Email *string
}

// Apply copies every non-nil field of the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// Identity implements geo.Locatable.
func (u *User) Identity() uuid.UUID { return u.ID }

// Position implements geo.Locatable.
func (u *User) Position() *Coordinate { return u.Location }

// CategoryTag implements geo.Locatable. Users carry no category.
func (u *User) CategoryTag() string { return "" }
