package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds accepted at the API boundary.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a product. There is at most one review per
// (UserID, ProductID); resubmission overwrites Rating and Comment in place.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewPatch holds the optional review fields of an update.
type ReviewPatch struct {
	Rating  *int
	Comment *string
}

// Apply copies every non-nil field of the patch onto r.
func (p ReviewPatch) Apply(r *Review) {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		r.Comment = *p.Comment
	}
}

// RatingSummary is the derived aggregate of all reviews of one product.
// It is computed on demand and never stored as a source of truth.
type RatingSummary struct {
	ProductID uuid.UUID `json:"product_id"`
	Average   float64   `json:"average"` // 0 when Count is 0.
	Count     int64     `json:"count"`
}

// SummarizeRatings computes the arithmetic mean and count of the ratings of
// the given reviews that belong to productID.
func SummarizeRatings(productID uuid.UUID, reviews []*Review) RatingSummary {
	summary := RatingSummary{ProductID: productID}

	var total int64
	for _, r := range reviews {
		if r == nil || r.ProductID != productID {
			continue
		}
		total += int64(r.Rating)
		summary.Count++
	}

	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}

	return summary
}
