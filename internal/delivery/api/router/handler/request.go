// Package handler contains the echo handlers of the public and admin API.
package handler

import (
	"net/http"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LocationRequest is the body of every location update. Both coordinates are
// required so a location is never half set.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

func (r LocationRequest) coordinate() entity.Coordinate {
	return entity.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

// NearbyQuery is the query string of a radius search.
type NearbyQuery struct {
	Latitude  *float64 `query:"latitude" validate:"required"`
	Longitude *float64 `query:"longitude" validate:"required"`
	RadiusKm  *float64 `query:"radiusKm"`
	Category  string   `query:"category"`
}

func (q NearbyQuery) input() usecase.NearbyInput {
	input := usecase.NearbyInput{
		Latitude:  *q.Latitude,
		Longitude: *q.Longitude,
		RadiusKm:  q.RadiusKm,
	}
	if q.Category != "" {
		category := q.Category
		input.Category = &category
	}

	return input
}

// bind decodes the request into req and validates it. Malformed input is
// reported as VALIDATION_FAILED.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(bindErrorDetails(err))
	}

	return c.Validate(req)
}

func bindErrorDetails(err error) string {
	if httpErr, ok := err.(*echo.HTTPError); ok {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
	}

	return http.StatusText(http.StatusBadRequest)
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a UUID")
	}

	return id, nil
}
