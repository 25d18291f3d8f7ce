package usecase

import (
	"context"

	"bridge/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitRatingInput is one user's rating of one product.
type SubmitRatingInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Rating    int
	Comment   string
}

// ReviewUsecase is the rating aggregator: at most one review per user and
// product, with average and count derived from the current reviews.
type ReviewUsecase interface {
	// SubmitRating inserts a review, or overwrites rating and comment of the
	// existing one for the pair while keeping its ID and CreatedAt.
	SubmitRating(ctx context.Context, input *SubmitRatingInput) (*entity.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
	ListReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, patch entity.ReviewPatch) (*entity.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
	ListAllReviews(ctx context.Context) ([]*entity.Review, error)

	// AverageRating is 0 when the product has no reviews.
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, error)
	ReviewCount(ctx context.Context, productID uuid.UUID) (int64, error)
	RatingSummary(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, error)
	// RefreshRatingSummary recomputes the summary from the store and caches it.
	RefreshRatingSummary(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, error)
}
