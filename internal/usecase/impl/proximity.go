// Package impl contains the implementation of the application's business logic.
package impl

import (
	"fmt"
	"math"

	"bridge/config"
	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/geo"
	"bridge/internal/domain/repository"
	"bridge/internal/usecase"
)

// radiusPolicy resolves the radius of a search request.
type radiusPolicy struct {
	defaultKm float64
	maxKm     float64
}

func newRadiusPolicy(cfg *config.Config) radiusPolicy {
	policy := radiusPolicy{defaultKm: geo.DefaultRadiusKm}
	if cfg == nil {
		return policy
	}
	if cfg.Proximity.DefaultRadiusKm > 0 {
		policy.defaultKm = cfg.Proximity.DefaultRadiusKm
	}
	policy.maxKm = cfg.Proximity.MaxRadiusKm

	return policy
}

func (p radiusPolicy) resolve(radius *float64) (float64, error) {
	if radius == nil {
		return p.defaultKm, nil
	}

	r := *radius
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return 0, domainerrors.ErrInvalidRadius.WithDetails(fmt.Sprintf("radius must be a positive number of kilometers, got %v", r))
	}
	if p.maxKm > 0 && r > p.maxKm {
		return 0, domainerrors.ErrInvalidRadius.WithDetails(fmt.Sprintf("radius %.3f km exceeds the maximum of %.3f km", r, p.maxKm))
	}

	return r, nil
}

// buildNearbySearch validates the input and returns the in-memory query plus
// the store-side prefilter. The bound is omitted when it cannot be expressed
// as one lat/lng box.
func buildNearbySearch(input usecase.NearbyInput, policy radiusPolicy) (geo.Query, repository.LocatedFilter, error) {
	center, err := entity.NewCoordinate(input.Latitude, input.Longitude)
	if err != nil {
		return geo.Query{}, repository.LocatedFilter{}, err
	}

	radius, err := policy.resolve(input.RadiusKm)
	if err != nil {
		return geo.Query{}, repository.LocatedFilter{}, err
	}

	query := geo.Query{Center: center, RadiusKm: radius, Category: input.Category}
	filter := repository.LocatedFilter{Category: input.Category}
	if bound, ok := geo.BoundAround(center, radius); ok {
		filter.Bound = &bound
	}

	return query, filter, nil
}
