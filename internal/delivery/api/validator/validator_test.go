package validator

import (
	"testing"

	domainerrors "bridge/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Email   string `json:"email" validate:"required,email"`
	Comment string `json:"comment" validate:"max=10"`
}

func TestValidator(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&ratingRequest{Rating: 5, Email: "a@example.com"}))

	err := v.Validate(&ratingRequest{Rating: 6, Email: "nope", Comment: "far too long a comment"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "rating must be at most 5")
	assert.Contains(t, appErr.Details(), "email must be a valid email")
	assert.Contains(t, appErr.Details(), "comment must be at most 10")
}

func TestValidator_RatingLowerBound(t *testing.T) {
	err := New().Validate(&ratingRequest{Rating: 0, Email: "a@example.com"})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "rating must be at least 1", appErr.Details())
}
