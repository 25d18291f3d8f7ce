package repository

import (
	"context"

	"bridge/internal/domain/entity"
	"bridge/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// CreateUser persists a new user. A duplicate email yields domain ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user *entity.User) error

	// FindUserByID retrieves a user by its unique ID.
	FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// ExistsUserByEmail reports whether a user already uses the email.
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)

	// UpdateUser overwrites an existing user record, location included.
	UpdateUser(ctx context.Context, user *entity.User) error

	// DeleteUser removes a user by its ID.
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// ListUsers returns every user ordered by creation time.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// FindLocatedUsers returns users with a location that satisfy the filter.
	// Users have no category, so a non-nil filter.Category matches nobody.
	FindLocatedUsers(ctx context.Context, filter LocatedFilter) ([]*entity.User, error)
}
