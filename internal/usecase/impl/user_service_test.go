package impl

import (
	"context"
	"testing"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterUser(t *testing.T) {
	env := newTestEnv(t)
	srv := env.userService()
	ctx := context.Background()

	user, err := srv.RegisterUser(ctx, &usecase.RegisterUserInput{
		Name:     " Alice ",
		Email:    "alice@example.com",
		Location: coord(25.0330, 121.5654),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	require.NotNil(t, user.Location)
	assert.Equal(t, 25.0330, user.Location.Latitude)

	_, err = srv.RegisterUser(ctx, &usecase.RegisterUserInput{Name: "Other", Email: "alice@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)

	_, err = srv.RegisterUser(ctx, &usecase.RegisterUserInput{Name: "", Email: "x@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.RegisterUser(ctx, &usecase.RegisterUserInput{Name: "Bad", Email: "bad@example.com", Location: coord(95, 0)})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCoordinate)
}

func TestUserService_UpdateUser(t *testing.T) {
	env := newTestEnv(t)
	srv := env.userService()
	alice := env.seedUser(t, "alice@example.com", coord(1, 1))
	env.seedUser(t, "bob@example.com", nil)
	ctx := context.Background()

	updated, err := srv.UpdateUser(ctx, alice.ID, entity.UserPatch{Name: ptr("Alice Chen")})
	require.NoError(t, err)
	assert.Equal(t, "Alice Chen", updated.Name)
	require.NotNil(t, updated.Location, "a patch never touches the location")

	_, err = srv.UpdateUser(ctx, alice.ID, entity.UserPatch{Email: ptr("bob@example.com")})
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)

	_, err = srv.UpdateUser(ctx, uuid.New(), entity.UserPatch{})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdateUserLocation(t *testing.T) {
	env := newTestEnv(t)
	srv := env.userService()
	alice := env.seedUser(t, "alice@example.com", nil)
	ctx := context.Background()

	updated, err := srv.UpdateUserLocation(ctx, alice.ID, entity.Coordinate{Latitude: 40.7128, Longitude: -74.0060})
	require.NoError(t, err)
	require.NotNil(t, updated.Location)

	stored, err := srv.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, -74.0060, stored.Location.Longitude)

	_, err = srv.UpdateUserLocation(ctx, alice.ID, entity.Coordinate{Latitude: 0, Longitude: 181})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCoordinate)
}

func TestUserService_DeleteUserInvalidatesReviewedProducts(t *testing.T) {
	env := newTestEnv(t)
	srv := env.userService()
	reviews := env.reviewService()
	vendor := env.seedVendor(t, "stall@example.com", "food", nil)
	product := env.seedProduct(t, vendor.ID, "Tea", true)
	alice := env.seedUser(t, "alice@example.com", nil)
	ctx := context.Background()

	_, err := reviews.SubmitRating(ctx, &usecase.SubmitRatingInput{UserID: alice.ID, ProductID: product.ID, Rating: 4})
	require.NoError(t, err)

	require.NoError(t, srv.DeleteUser(ctx, alice.ID))

	env.cache.AssertCalled(t, "Invalidate", mock.Anything, product.ID)
	count, err := reviews.ReviewCount(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, srv.DeleteUser(ctx, alice.ID), domainerrors.ErrUserNotFound)
}

func TestUserService_FindNearbyUsers(t *testing.T) {
	env := newTestEnv(t)
	srv := env.userService()
	ctx := context.Background()

	near := env.seedUser(t, "near@example.com", coord(25.0340, 121.5650))
	mid := env.seedUser(t, "mid@example.com", coord(25.0600, 121.5650))
	env.seedUser(t, "far@example.com", coord(24.1477, 120.6736))
	env.seedUser(t, "nowhere@example.com", nil)

	matches, err := srv.FindNearbyUsers(ctx, usecase.NearbyInput{Latitude: 25.0330, Longitude: 121.5654})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, near.ID, matches[0].Item.ID)
	assert.Equal(t, mid.ID, matches[1].Item.ID)
	assert.LessOrEqual(t, matches[0].DistanceKm, matches[1].DistanceKm)

	matches, err = srv.FindNearbyUsers(ctx, usecase.NearbyInput{Latitude: 25.0330, Longitude: 121.5654, Category: ptr("food")})
	require.NoError(t, err)
	assert.Len(t, matches, 2, "users carry no category so the filter is ignored")
}
