package service

import (
	"context"

	"bridge/internal/domain/entity"

	"github.com/google/uuid"
)

// RatingCache stores derived rating summaries. It is never the source of
// truth: a miss, or any cache error, falls back to the review store.
type RatingCache interface {
	// Get returns the cached summary and whether it was present.
	Get(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, bool, error)

	// Set stores a freshly computed summary.
	Set(ctx context.Context, summary *entity.RatingSummary) error

	// Invalidate drops the summary of a product.
	Invalidate(ctx context.Context, productID uuid.UUID) error
}
