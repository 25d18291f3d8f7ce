package geo

import (
	"math"

	"bridge/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// kmPerDegree approximates the length of one degree of latitude.
const kmPerDegree = 111.0

// GridIndex buckets located records into fixed-size lat/lng cells so a radius
// search only has to look at the records inside the search's bounding box.
// It narrows candidates; it never decides membership, Filter does.
//
// GridIndex is not safe for concurrent use; callers guard it.
type GridIndex struct {
	cellSizeDeg float64
	cells       map[gridKey]map[uuid.UUID]struct{}
	points      map[uuid.UUID]orb.Point
}

type gridKey struct {
	latCell int
	lngCell int
}

// NewGridIndex creates an empty index. cellSizeKm trades memory for lookup
// speed: smaller cells mean more cells and fewer false candidates.
func NewGridIndex(cellSizeKm float64) *GridIndex {
	if !(cellSizeKm > 0) {
		cellSizeKm = DefaultRadiusKm
	}

	return &GridIndex{
		cellSizeDeg: cellSizeKm / kmPerDegree,
		cells:       make(map[gridKey]map[uuid.UUID]struct{}),
		points:      make(map[uuid.UUID]orb.Point),
	}
}

// Put indexes id at loc, moving it if it was already indexed.
// A nil location removes id from the index.
func (g *GridIndex) Put(id uuid.UUID, loc *entity.Coordinate) {
	g.Remove(id)
	if loc == nil {
		return
	}

	point := loc.Point()
	key := g.keyOf(point)
	cell, ok := g.cells[key]
	if !ok {
		cell = make(map[uuid.UUID]struct{})
		g.cells[key] = cell
	}
	cell[id] = struct{}{}
	g.points[id] = point
}

// Remove drops id from the index. Removing an unknown id is a no-op.
func (g *GridIndex) Remove(id uuid.UUID) {
	point, ok := g.points[id]
	if !ok {
		return
	}

	key := g.keyOf(point)
	if cell, exists := g.cells[key]; exists {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, key)
		}
	}
	delete(g.points, id)
}

// Size returns the number of indexed records.
func (g *GridIndex) Size() int {
	return len(g.points)
}

// Within returns the ids of all records whose location lies inside bound.
// Order is unspecified.
func (g *GridIndex) Within(bound orb.Bound) []uuid.UUID {
	minKey := g.keyOf(bound.Min)
	maxKey := g.keyOf(bound.Max)

	latCells := maxKey.latCell - minKey.latCell + 1
	lngCells := maxKey.lngCell - minKey.lngCell + 1

	// A box spanning more cells than there are records is cheaper to scan flat.
	if latCells*lngCells > len(g.points) {
		return g.scan(bound)
	}

	var ids []uuid.UUID
	for latCell := minKey.latCell; latCell <= maxKey.latCell; latCell++ {
		for lngCell := minKey.lngCell; lngCell <= maxKey.lngCell; lngCell++ {
			for id := range g.cells[gridKey{latCell: latCell, lngCell: lngCell}] {
				if bound.Contains(g.points[id]) {
					ids = append(ids, id)
				}
			}
		}
	}

	return ids
}

func (g *GridIndex) scan(bound orb.Bound) []uuid.UUID {
	var ids []uuid.UUID
	for id, point := range g.points {
		if bound.Contains(point) {
			ids = append(ids, id)
		}
	}

	return ids
}

func (g *GridIndex) keyOf(p orb.Point) gridKey {
	return gridKey{
		latCell: int(math.Floor(p.Lat() / g.cellSizeDeg)),
		lngCell: int(math.Floor(p.Lon() / g.cellSizeDeg)),
	}
}
