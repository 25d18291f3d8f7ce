package geo

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"bridge/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vendorAt(name, category string, loc *entity.Coordinate) *entity.Vendor {
	return &entity.Vendor{ID: uuid.New(), Name: name, Category: category, Location: loc}
}

func offset(c entity.Coordinate, dLat, dLng float64) *entity.Coordinate {
	return &entity.Coordinate{Latitude: c.Latitude + dLat, Longitude: c.Longitude + dLng}
}

func names(matches []Match[*entity.Vendor]) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Item.Name)
	}

	return out
}

func TestFilter_RadiusAndOrdering(t *testing.T) {
	far := vendorAt("far", "food", offset(taipei101, 0.5, 0))
	near := vendorAt("near", "food", offset(taipei101, 0.01, 0))
	mid := vendorAt("mid", "crafts", offset(taipei101, 0.05, 0.02))
	unlocated := vendorAt("unlocated", "food", nil)

	matches := Filter([]*entity.Vendor{far, near, mid, unlocated}, Query{Center: taipei101, RadiusKm: 10})

	assert.Equal(t, []string{"near", "mid"}, names(matches))
	for i, m := range matches {
		assert.Less(t, m.DistanceKm, 10.0)
		if i > 0 {
			assert.LessOrEqual(t, matches[i-1].DistanceKm, m.DistanceKm)
		}
	}
}

func TestFilter_BoundaryIsExcluded(t *testing.T) {
	edge := vendorAt("edge", "food", offset(taipei101, 0.03, 0.04))
	radius := Distance(&taipei101, edge.Location)

	matches := Filter([]*entity.Vendor{edge}, Query{Center: taipei101, RadiusKm: radius})
	assert.Empty(t, matches)

	matches = Filter([]*entity.Vendor{edge}, Query{Center: taipei101, RadiusKm: math.Nextafter(radius, math.Inf(1))})
	require.Len(t, matches, 1)
	assert.Equal(t, radius, matches[0].DistanceKm)
}

func TestFilter_UnlocatedExcludedForAnyRadius(t *testing.T) {
	unlocated := vendorAt("unlocated", "", nil)

	for _, radius := range []float64{1, 1e6, math.MaxFloat64, math.Inf(1)} {
		assert.Empty(t, Filter([]*entity.Vendor{unlocated}, Query{Center: taipei101, RadiusKm: radius}), "radius %v", radius)
	}
}

func TestFilter_CategoryIsExactAndCaseSensitive(t *testing.T) {
	food := vendorAt("food", "Food", offset(taipei101, 0.001, 0))
	lower := vendorAt("lower", "food", offset(taipei101, 0.002, 0))
	padded := vendorAt("padded", "Food ", offset(taipei101, 0.003, 0))

	category := "Food"
	matches := Filter([]*entity.Vendor{food, lower, padded}, Query{Center: taipei101, RadiusKm: 5, Category: &category})
	assert.Equal(t, []string{"food"}, names(matches))

	all := Filter([]*entity.Vendor{food, lower, padded}, Query{Center: taipei101, RadiusKm: 5})
	assert.Len(t, all, 3)
}

func TestFilter_TiesBrokenByIdentity(t *testing.T) {
	loc := offset(taipei101, 0.01, 0.01)
	a := &entity.Vendor{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Name: "a", Location: loc}
	b := &entity.Vendor{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Name: "b", Location: loc}
	c := &entity.Vendor{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000c"), Name: "c", Location: loc}

	matches := Filter([]*entity.Vendor{c, a, b}, Query{Center: taipei101, RadiusKm: 10})
	assert.Equal(t, []string{"a", "b", "c"}, names(matches))
}

func TestFilter_WorksForUsers(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Name: "shopper", Location: offset(newYork, 0.01, 0)}
	category := "food"

	assert.Len(t, Filter([]*entity.User{user}, Query{Center: newYork, RadiusKm: 10}), 1)
	assert.Empty(t, Filter([]*entity.User{user}, Query{Center: newYork, RadiusKm: 10, Category: &category}))
}

func TestFilter_ConcurrentCallers(t *testing.T) {
	candidates := make([]*entity.Vendor, 0, 200)
	for i := range 200 {
		candidates = append(candidates, vendorAt(fmt.Sprintf("v%03d", i), "food", offset(taipei101, float64(i)*0.001, 0)))
	}
	want := Filter(candidates, Query{Center: taipei101, RadiusKm: 10})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := Filter(candidates, Query{Center: taipei101, RadiusKm: 10})
			assert.Equal(t, names(want), names(got))
		}()
	}
	wg.Wait()
}

func TestRadiusOrDefault(t *testing.T) {
	assert.Equal(t, DefaultRadiusKm, RadiusOrDefault(nil))

	r := 2.5
	assert.Equal(t, 2.5, RadiusOrDefault(&r))
}
