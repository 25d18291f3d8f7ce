package repository

import (
	"context"

	"bridge/internal/domain/entity"
	"bridge/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for review persistence.
var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewAlreadyExists is returned by CreateReview when the (user, product)
	// pair already has a review. Callers turn it into an update.
	ErrReviewAlreadyExists = errors.New("review already exists for user and product")
)

// ReviewRepository defines the interface for review-related database operations.
// Implementations must enforce uniqueness of (UserID, ProductID) at the point of write.
type ReviewRepository interface {
	// CreateReview inserts a review as a single conditional write. It returns
	// ErrReviewAlreadyExists, and leaves the store untouched, when the pair exists.
	CreateReview(ctx context.Context, review *entity.Review) error

	// FindReviewByID retrieves a review by its unique ID.
	FindReviewByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindReviewByUserAndProduct retrieves the review a user wrote for a product.
	FindReviewByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error)

	// UpdateReview overwrites rating and comment of an existing review.
	// ID, UserID, ProductID and CreatedAt are never changed.
	UpdateReview(ctx context.Context, review *entity.Review) error

	// DeleteReview removes a review by its ID.
	DeleteReview(ctx context.Context, id uuid.UUID) error

	// DeleteReviewsByProduct removes every review of a product and returns how many were removed.
	DeleteReviewsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// FindReviewsByProduct returns the reviews of a product, newest first.
	FindReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// FindReviewsByUser returns the reviews written by a user, newest first.
	FindReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)

	// ListReviews returns every review, newest first.
	ListReviews(ctx context.Context) ([]*entity.Review, error)

	// SummarizeProductRatings computes average and count over the current
	// reviews of a product. Average is 0 when there are none.
	SummarizeProductRatings(ctx context.Context, productID uuid.UUID) (entity.RatingSummary, error)
}
