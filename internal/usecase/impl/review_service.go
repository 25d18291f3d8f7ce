package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bridge/internal/delivery/context"
	"bridge/internal/domain/constants"
	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/repository"
	"bridge/internal/domain/service"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface. It is the rating
// aggregator: the review store holds the source of truth, the rating cache
// only ever holds a derived copy.
type reviewService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	ratingCache service.RatingCache
	publisher   service.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	ReviewRepo  repository.ReviewRepository
	RatingCache service.RatingCache
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
		reviewRepo:  params.ReviewRepo,
		ratingCache: params.RatingCache,
		publisher:   params.Publisher,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitRating upserts the review of (UserID, ProductID).
//
// The insert is a single conditional write. When it reports that the pair
// already has a review, the existing row is overwritten once. A row that
// vanished between the two steps is reported as ErrReviewConflict.
func (srv *reviewService) SubmitRating(ctx context.Context, input *usecase.SubmitRatingInput) (*entity.Review, error) {
	if err := srv.ensureUserExists(ctx, input.UserID); err != nil {
		return nil, err
	}
	if err := srv.ensureProductExists(ctx, input.ProductID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ID:        uuid.New(),
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	kind := constants.ReviewEventSubmitted
	err := srv.reviewRepo.CreateReview(ctx, review)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrReviewAlreadyExists):
		review, err = srv.overwriteExisting(ctx, input)
		if err != nil {
			return nil, err
		}
		kind = constants.ReviewEventUpdated
	case errors.Is(err, domainerrors.ErrInvalidReference):
		return nil, err
	default:
		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.afterChange(ctx, kind, review)

	return review, nil
}

func (srv *reviewService) overwriteExisting(ctx context.Context, input *usecase.SubmitRatingInput) (*entity.Review, error) {
	existing, err := srv.reviewRepo.FindReviewByUserAndProduct(ctx, input.UserID, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewConflict
		}

		return nil, errors.Wrap(err, "failed to find existing review")
	}

	existing.Rating = input.Rating
	existing.Comment = input.Comment
	if err := srv.reviewRepo.UpdateReview(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewConflict
		}

		return nil, errors.Wrap(err, "failed to update existing review")
	}

	return existing, nil
}

func (srv *reviewService) ensureUserExists(ctx context.Context, id uuid.UUID) error {
	if _, err := srv.userRepo.FindUserByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to find user")
	}

	return nil
}

func (srv *reviewService) ensureProductExists(ctx context.Context, id uuid.UUID) error {
	if _, err := srv.productRepo.FindProductByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to find product")
	}

	return nil
}

func (srv *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := srv.reviewRepo.FindReviewByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return review, nil
}

func (srv *reviewService) ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.FindReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reviews by product")
	}

	return reviews, nil
}

func (srv *reviewService) ListReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.FindReviewsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reviews by user")
	}

	return reviews, nil
}

func (srv *reviewService) ListAllReviews(ctx context.Context) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.ListReviews(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

func (srv *reviewService) UpdateReview(ctx context.Context, id uuid.UUID, patch entity.ReviewPatch) (*entity.Review, error) {
	review, err := srv.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(review)
	if err := srv.reviewRepo.UpdateReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to update review")
	}

	srv.afterChange(ctx, constants.ReviewEventUpdated, review)

	return review, nil
}

func (srv *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	review, err := srv.GetReview(ctx, id)
	if err != nil {
		return err
	}

	if err := srv.reviewRepo.DeleteReview(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domainerrors.ErrReviewNotFound
		}

		return errors.Wrap(err, "failed to delete review")
	}

	srv.afterChange(ctx, constants.ReviewEventDeleted, review)

	return nil
}

func (srv *reviewService) AverageRating(ctx context.Context, productID uuid.UUID) (float64, error) {
	summary, err := srv.RatingSummary(ctx, productID)
	if err != nil {
		return 0, err
	}

	return summary.Average, nil
}

func (srv *reviewService) ReviewCount(ctx context.Context, productID uuid.UUID) (int64, error) {
	summary, err := srv.RatingSummary(ctx, productID)
	if err != nil {
		return 0, err
	}

	return summary.Count, nil
}

// RatingSummary serves the cached summary when present and otherwise
// computes it from the store and caches the result.
func (srv *reviewService) RatingSummary(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, error) {
	logger := srv.log(ctx)

	cached, ok, err := srv.ratingCache.Get(ctx, productID)
	if err != nil {
		logger.Warn("Failed to read rating cache",
			slog.String("product_id", productID.String()),
			slog.Any("error", err),
		)
	}
	if ok {
		return cached, nil
	}

	if err := srv.ensureProductExists(ctx, productID); err != nil {
		return nil, err
	}

	summary, err := srv.summarize(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := srv.ratingCache.Set(ctx, summary); err != nil {
		logger.Warn("Failed to write rating cache",
			slog.String("product_id", productID.String()),
			slog.Any("error", err),
		)
	}

	return summary, nil
}

// RefreshRatingSummary bypasses the cache read and fails on cache write errors,
// so a push consumer can ask for redelivery.
func (srv *reviewService) RefreshRatingSummary(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, error) {
	summary, err := srv.summarize(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := srv.ratingCache.Set(ctx, summary); err != nil {
		return nil, errors.Wrap(err, "failed to cache rating summary")
	}

	return summary, nil
}

func (srv *reviewService) summarize(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, error) {
	summary, err := srv.reviewRepo.SummarizeProductRatings(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize product ratings")
	}

	return &summary, nil
}

// afterChange drops the cached summary and announces the change. Neither
// step can fail the write that already happened.
func (srv *reviewService) afterChange(ctx context.Context, kind string, review *entity.Review) {
	logger := srv.log(ctx)
	invalidateRating(ctx, logger, srv.ratingCache, review.ProductID)

	event := &service.ReviewEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Kind:       kind,
		ReviewID:   review.ID.String(),
		ProductID:  review.ProductID.String(),
		UserID:     review.UserID.String(),
		Rating:     review.Rating,
		OccurredAt: srv.now().UTC(),
	}
	if err := srv.publisher.PublishReviewEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish review event",
			slog.String("kind", kind),
			slog.String("review_id", event.ReviewID),
			slog.Any("error", err),
		)
	}

	logger.Info("Review changed",
		slog.String("kind", kind),
		slog.String("review_id", event.ReviewID),
		slog.String("product_id", event.ProductID),
		slog.Int("rating", review.Rating),
	)
}

func invalidateRating(ctx context.Context, logger *slog.Logger, cache service.RatingCache, productID uuid.UUID) {
	if err := cache.Invalidate(ctx, productID); err != nil {
		logger.Warn("Failed to invalidate rating cache",
			slog.String("product_id", productID.String()),
			slog.Any("error", err),
		)
	}
}
