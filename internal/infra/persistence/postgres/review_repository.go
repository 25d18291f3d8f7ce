package postgres

import (
	"context"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/repository"
	"bridge/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// reviewRepository implements the repository.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateReview inserts the review unless the (user, product) pair already
// has one. The check and the write are a single statement.
func (repo *reviewRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	result := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(reviewM)
	if err := result.Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidReference.WrapMessage("user or product does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required review information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewAlreadyExists
	}

	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// FindReviewByID retrieves a review by its unique ID.
func (repo *reviewRepository) FindReviewByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by ID")
	}

	return toReviewDomain(&reviewM), nil
}

// FindReviewByUserAndProduct retrieves the single review of a pair. It reads
// from the primary: callers use it right after a conflicting insert, when a
// replica may not have the row yet.
func (repo *reviewRepository) FindReviewByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&reviewM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by user and product")
	}

	return toReviewDomain(&reviewM), nil
}

// UpdateReview rewrites rating and comment in place.
func (repo *reviewRepository) UpdateReview(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	result := updateReviewColumns(repo.db.WithContext(ctx), reviewM)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// updateReviewColumns writes rating and comment. reviewM is also the model,
// so gorm stores the new updated_at on it.
func updateReviewColumns(db *gorm.DB, reviewM *model.ReviewModel) *gorm.DB {
	return db.
		Model(reviewM).
		Where("id = ?", reviewM.ID).
		Select("rating", "comment", "updated_at").
		Updates(reviewM)
}

// DeleteReview removes a review by ID.
func (repo *reviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReviewModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// DeleteReviewsByProduct removes every review of a product.
func (repo *reviewRepository) DeleteReviewsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.ReviewModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete reviews by product")
	}

	return result.RowsAffected, nil
}

// FindReviewsByProduct returns a product's reviews, newest first.
func (repo *reviewRepository) FindReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	return repo.findReviews(repo.db.WithContext(ctx).Where("product_id = ?", productID), "failed to find reviews by product")
}

// FindReviewsByUser returns a user's reviews, newest first.
func (repo *reviewRepository) FindReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return repo.findReviews(repo.db.WithContext(ctx).Where("user_id = ?", userID), "failed to find reviews by user")
}

// ListReviews returns every review, newest first.
func (repo *reviewRepository) ListReviews(ctx context.Context) ([]*entity.Review, error) {
	return repo.findReviews(repo.db.WithContext(ctx), "failed to list reviews")
}

func (repo *reviewRepository) findReviews(query *gorm.DB, failure string) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel
	if err := query.Order("created_at DESC").Order("id ASC").Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, failure)
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewM := range reviewModels {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews, nil
}

// SummarizeProductRatings aggregates a product's ratings in the database.
func (repo *reviewRepository) SummarizeProductRatings(ctx context.Context, productID uuid.UUID) (entity.RatingSummary, error) {
	var row model.RatingAggregateRow
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return entity.RatingSummary{}, errors.Wrap(err, "failed to summarize product ratings")
	}

	return entity.RatingSummary{
		ProductID: productID,
		Average:   row.Average,
		Count:     row.Count,
	}, nil
}

// --- Mapper Functions ---

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromReviewDomain converts a domain Review entity to a GORM ReviewModel.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
