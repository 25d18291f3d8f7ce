package impl

import (
	"context"
	"log/slog"
	"strings"

	"bridge/config"
	deliverycontext "bridge/internal/delivery/context"
	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/geo"
	"bridge/internal/domain/repository"
	"bridge/internal/domain/service"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo    repository.UserRepository
	reviewRepo  repository.ReviewRepository
	ratingCache service.RatingCache
	radius      radiusPolicy
	logger      *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	ReviewRepo  repository.ReviewRepository
	RatingCache service.RatingCache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:    params.UserRepo,
		reviewRepo:  params.ReviewRepo,
		ratingCache: params.RatingCache,
		radius:      newRadiusPolicy(params.Config),
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name and email are required")
	}
	if input.Location != nil {
		if err := input.Location.Validate(); err != nil {
			return nil, err
		}
	}

	exists, err := srv.userRepo.ExistsUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check user email")
	}
	if exists {
		return nil, domainerrors.ErrEmailAlreadyExists
	}

	user := &entity.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Location: cloneLocation(input.Location),
	}
	if err := srv.userRepo.CreateUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.String("user_id", user.ID.String()))

	return user, nil
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, patch entity.UserPatch) (*entity.User, error) {
	user, err := srv.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	previousEmail := user.Email
	patch.Apply(user)
	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name and email cannot be empty")
	}

	if user.Email != previousEmail {
		exists, err := srv.userRepo.ExistsUserByEmail(ctx, user.Email)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check user email")
		}
		if exists {
			return nil, domainerrors.ErrEmailAlreadyExists
		}
	}

	if err := srv.saveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (srv *userService) UpdateUserLocation(ctx context.Context, id uuid.UUID, location entity.Coordinate) (*entity.User, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	user, err := srv.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Location = location.Ptr()
	if err := srv.saveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (srv *userService) saveUser(ctx context.Context, user *entity.User) error {
	if err := srv.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update user")
	}

	return nil
}

// DeleteUser removes the user. Their reviews go with them, so the cached
// summaries of the products they rated are dropped as well.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	reviews, err := srv.reviewRepo.FindReviewsByUser(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to find reviews by user")
	}

	if err := srv.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	for _, review := range reviews {
		invalidateRating(ctx, srv.log(ctx), srv.ratingCache, review.ProductID)
	}

	return nil
}

func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

func (srv *userService) FindNearbyUsers(ctx context.Context, input usecase.NearbyInput) ([]geo.Match[*entity.User], error) {
	input.Category = nil

	query, filter, err := buildNearbySearch(input, srv.radius)
	if err != nil {
		return nil, err
	}

	candidates, err := srv.userRepo.FindLocatedUsers(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find located users")
	}

	return geo.Filter(candidates, query), nil
}

func cloneLocation(c *entity.Coordinate) *entity.Coordinate {
	if c == nil {
		return nil
	}

	return c.Ptr()
}
