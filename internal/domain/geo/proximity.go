package geo

import (
	"cmp"
	"slices"
	"strings"

	"bridge/internal/domain/entity"

	"github.com/google/uuid"
)

// DefaultRadiusKm applies when a caller does not supply a search radius.
const DefaultRadiusKm = 10.0

// Locatable is any record that can take part in a radius search.
type Locatable interface {
	Identity() uuid.UUID
	Position() *entity.Coordinate // nil when the location is unknown
	CategoryTag() string
}

// Query describes a radius search around Center.
type Query struct {
	Center   entity.Coordinate
	RadiusKm float64
	Category *string // nil matches every category; otherwise exact, case-sensitive
}

// Match is a candidate that passed the filter together with its distance.
type Match[T Locatable] struct {
	Item       T       `json:"item"`
	DistanceKm float64 `json:"distance_km"`
}

// RadiusOrDefault returns *radius, or DefaultRadiusKm when radius is nil.
func RadiusOrDefault(radius *float64) float64 {
	if radius == nil {
		return DefaultRadiusKm
	}

	return *radius
}

// Filter keeps the candidates that have a location, match the category (if
// any) and lie strictly closer than q.RadiusKm to q.Center. The result is
// ordered by ascending distance, ties broken by ascending identity.
//
// Filter performs no I/O and holds no state, so it is safe for concurrent use.
func Filter[T Locatable](candidates []T, q Query) []Match[T] {
	center := q.Center
	matches := make([]Match[T], 0, len(candidates))

	for _, candidate := range candidates {
		pos := candidate.Position()
		if pos == nil {
			continue
		}
		if q.Category != nil && candidate.CategoryTag() != *q.Category {
			continue
		}

		d := Distance(&center, pos)
		if d < q.RadiusKm {
			matches = append(matches, Match[T]{Item: candidate, DistanceKm: d})
		}
	}

	slices.SortFunc(matches, func(a, b Match[T]) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}

		return strings.Compare(a.Item.Identity().String(), b.Item.Identity().String())
	})

	return matches
}
