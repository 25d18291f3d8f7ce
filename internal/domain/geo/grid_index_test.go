package geo

import (
	"testing"

	"bridge/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridIndex_WithinBound(t *testing.T) {
	index := NewGridIndex(1.0)

	station := uuid.New()
	mainStation := uuid.New()
	taichung := uuid.New()
	index.Put(station, &entity.Coordinate{Latitude: 25.0330, Longitude: 121.5654})
	index.Put(mainStation, &entity.Coordinate{Latitude: 25.0478, Longitude: 121.5170})
	index.Put(taichung, &entity.Coordinate{Latitude: 24.1500, Longitude: 120.6800})
	assert.Equal(t, 3, index.Size())

	bound, ok := BoundAround(taipei101, 10)
	require.True(t, ok)

	assert.ElementsMatch(t, []uuid.UUID{station, mainStation}, index.Within(bound))
}

func TestGridIndex_MoveAndRemove(t *testing.T) {
	index := NewGridIndex(1.0)
	id := uuid.New()

	index.Put(id, &entity.Coordinate{Latitude: 24.1500, Longitude: 120.6800})
	bound, ok := BoundAround(taipei101, 5)
	require.True(t, ok)
	assert.Empty(t, index.Within(bound))

	index.Put(id, &taipei101)
	assert.Equal(t, []uuid.UUID{id}, index.Within(bound))
	assert.Equal(t, 1, index.Size())

	index.Put(id, nil)
	assert.Empty(t, index.Within(bound))
	assert.Equal(t, 0, index.Size())

	index.Remove(uuid.New())
}

func TestGridIndex_WideBoundFallsBackToScan(t *testing.T) {
	index := NewGridIndex(0.5)
	id := uuid.New()
	index.Put(id, &newYork)

	bound, ok := BoundAround(newYork, 2000)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{id}, index.Within(bound))
}
