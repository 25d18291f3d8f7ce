package memory

import (
	"context"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/repository"

	"github.com/google/uuid"
)

type reviewRepository struct {
	access access
}

// NewReviewRepository returns a ReviewRepository backed by store.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{access: access{store: store}}
}

// CreateReview checks the (user, product) pair and inserts under one lock.
func (repo *reviewRepository) CreateReview(_ context.Context, review *entity.Review) error {
	return repo.access.write(func(st *state) error {
		key := reviewKey{userID: review.UserID, productID: review.ProductID}
		if _, ok := st.reviewPairs[key]; ok {
			return repository.ErrReviewAlreadyExists
		}
		if _, ok := st.users[review.UserID]; !ok {
			return domainerrors.ErrInvalidReference.WrapMessage("user does not exist")
		}
		if _, ok := st.products[review.ProductID]; !ok {
			return domainerrors.ErrInvalidReference.WrapMessage("product does not exist")
		}
		if _, ok := st.reviews[review.ID]; ok {
			return domainerrors.NewDatabaseExecuteError(errDuplicateID, "failed to create review")
		}

		now := repo.access.store.timestamp()
		if review.CreatedAt.IsZero() {
			review.CreatedAt = now
		}
		review.UpdatedAt = now

		st.reviews[review.ID] = cloneReview(review)
		st.reviewPairs[key] = review.ID

		return nil
	})
}

func (repo *reviewRepository) FindReviewByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	var found *entity.Review
	err := repo.access.read(func(st *state) error {
		r, ok := st.reviews[id]
		if !ok {
			return repository.ErrReviewNotFound
		}
		found = cloneReview(r)

		return nil
	})

	return found, err
}

func (repo *reviewRepository) FindReviewByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	var found *entity.Review
	err := repo.access.read(func(st *state) error {
		id, ok := st.reviewPairs[reviewKey{userID: userID, productID: productID}]
		if !ok {
			return repository.ErrReviewNotFound
		}
		found = cloneReview(st.reviews[id])

		return nil
	})

	return found, err
}

// UpdateReview only touches Rating, Comment and UpdatedAt.
func (repo *reviewRepository) UpdateReview(_ context.Context, review *entity.Review) error {
	return repo.access.write(func(st *state) error {
		current, ok := st.reviews[review.ID]
		if !ok {
			return repository.ErrReviewNotFound
		}

		updated := cloneReview(current)
		updated.Rating = review.Rating
		updated.Comment = review.Comment
		updated.UpdatedAt = repo.access.store.timestamp()
		st.reviews[review.ID] = updated

		review.UpdatedAt = updated.UpdatedAt

		return nil
	})
}

func (repo *reviewRepository) DeleteReview(_ context.Context, id uuid.UUID) error {
	return repo.access.write(func(st *state) error {
		if !st.removeReview(id) {
			return repository.ErrReviewNotFound
		}

		return nil
	})
}

func (repo *reviewRepository) DeleteReviewsByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var removed int64
	err := repo.access.write(func(st *state) error {
		for id, r := range st.reviews {
			if r.ProductID == productID && st.removeReview(id) {
				removed++
			}
		}

		return nil
	})

	return removed, err
}

func (repo *reviewRepository) FindReviewsByProduct(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	return repo.list(func(r *entity.Review) bool { return r.ProductID == productID })
}

func (repo *reviewRepository) FindReviewsByUser(_ context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return repo.list(func(r *entity.Review) bool { return r.UserID == userID })
}

func (repo *reviewRepository) ListReviews(_ context.Context) ([]*entity.Review, error) {
	return repo.list(nil)
}

func (repo *reviewRepository) list(keep func(*entity.Review) bool) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := repo.access.read(func(st *state) error {
		reviews = sortedValues(st.reviews, keep, func(a, b *entity.Review) int {
			return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		}, cloneReview)

		return nil
	})

	return reviews, err
}

func (repo *reviewRepository) SummarizeProductRatings(_ context.Context, productID uuid.UUID) (entity.RatingSummary, error) {
	var summary entity.RatingSummary
	err := repo.access.read(func(st *state) error {
		reviews := make([]*entity.Review, 0)
		for _, r := range st.reviews {
			if r.ProductID == productID {
				reviews = append(reviews, r)
			}
		}
		summary = entity.SummarizeRatings(productID, reviews)

		return nil
	})

	return summary, err
}
