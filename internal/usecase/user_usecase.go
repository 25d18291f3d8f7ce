package usecase

import (
	"context"

	"bridge/internal/domain/entity"
	"bridge/internal/domain/geo"

	"github.com/google/uuid"
)

// RegisterUserInput holds the fields of a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Location *entity.Coordinate
}

// UserUsecase defines user profile and proximity operations.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch entity.UserPatch) (*entity.User, error)
	// UpdateUserLocation is the only way a user's coordinate changes.
	UpdateUserLocation(ctx context.Context, id uuid.UUID, location entity.Coordinate) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]*entity.User, error)
	// FindNearbyUsers ignores input.Category: users have none.
	FindNearbyUsers(ctx context.Context, input NearbyInput) ([]geo.Match[*entity.User], error)
}
