// Package spatial provides a tile-bucketed body index with circle-overlap and
// raycast-occlusion queries over a world.Grid.
package spatial

import (
	"lightstation/pkg/engine/world"
)

// Body is anything placed in the index. Ref carries the game entity.
type Body struct {
	ID       string
	Position world.Vec2
	Layer    world.Layer
	Tag      world.Tag
	Ref      any

	row, col int
	indexed  bool
}

// Index is a dense per-tile bucket store. Queries scan buckets in row-major
// order, so results come back in a stable discovery order.
type Index struct {
	grid    *world.Grid
	buckets [][]*Body // index = row*cols + col
	count   int
}

// NewIndex creates an index covering the grid
func NewIndex(grid *world.Grid) *Index {
	return &Index{
		grid:    grid,
		buckets: make([][]*Body, grid.Rows()*grid.Cols()),
	}
}

// Grid returns the grid the index occludes against
func (ix *Index) Grid() *world.Grid {
	return ix.grid
}

// Len returns the number of indexed bodies
func (ix *Index) Len() int {
	return ix.count
}

func (ix *Index) bucket(row, col int) int {
	return row*ix.grid.Cols() + col
}

// Add inserts a body at its current position.
// Returns false if the position is out of bounds or the body is already indexed.
func (ix *Index) Add(b *Body) bool {
	if b == nil || b.indexed {
		return false
	}
	row, col := b.Position.Tile()
	if !ix.grid.IsValidPosition(row, col) {
		return false
	}
	i := ix.bucket(row, col)
	ix.buckets[i] = append(ix.buckets[i], b)
	b.row, b.col, b.indexed = row, col, true
	ix.count++
	return true
}

// Remove deletes a body from the index. Order within the bucket is preserved.
func (ix *Index) Remove(b *Body) {
	if b == nil || !b.indexed {
		return
	}
	i := ix.bucket(b.row, b.col)
	bucket := ix.buckets[i]
	for j, other := range bucket {
		if other == b {
			copy(bucket[j:], bucket[j+1:])
			bucket[len(bucket)-1] = nil
			ix.buckets[i] = bucket[:len(bucket)-1]
			b.indexed = false
			ix.count--
			return
		}
	}
}

// Move relocates a body. Returns false if the new position is out of bounds,
// in which case the body stays where it was.
func (ix *Index) Move(b *Body, pos world.Vec2) bool {
	row, col := pos.Tile()
	if !ix.grid.IsValidPosition(row, col) {
		return false
	}
	ix.Remove(b)
	b.Position = pos
	return ix.Add(b)
}

// OverlapCircle writes bodies whose layer is in mask and whose position lies
// within radius of origin into out, and returns how many were written.
// It never writes more than len(out) and never allocates.
func (ix *Index) OverlapCircle(origin world.Vec2, radius float64, mask world.LayerMask, out []*Body) int {
	if len(out) == 0 || radius < 0 {
		return 0
	}
	minRow, minCol := world.Vec2{X: origin.X - radius, Y: origin.Y - radius}.Tile()
	maxRow, maxCol := world.Vec2{X: origin.X + radius, Y: origin.Y + radius}.Tile()
	minRow = clamp(minRow, 0, ix.grid.Rows()-1)
	maxRow = clamp(maxRow, 0, ix.grid.Rows()-1)
	minCol = clamp(minCol, 0, ix.grid.Cols()-1)
	maxCol = clamp(maxCol, 0, ix.grid.Cols()-1)

	n := 0
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, b := range ix.buckets[ix.bucket(row, col)] {
				if !mask.Has(b.Layer) || origin.Distance(b.Position) > radius {
					continue
				}
				out[n] = b
				n++
				if n == len(out) {
					return n
				}
			}
		}
	}
	return n
}

// OverlapCircleAll is OverlapCircle without a capacity bound. It allocates;
// use it for one-off lookups, not per-frame queries.
func (ix *Index) OverlapCircleAll(origin world.Vec2, radius float64, mask world.LayerMask) []*Body {
	buf := make([]*Body, ix.count)
	n := ix.OverlapCircle(origin, radius, mask, buf)
	return buf[:n]
}

// Raycast reports whether the segment from origin to target is occluded by
// a tile whose layer is in mask.
func (ix *Index) Raycast(origin, target world.Vec2, mask world.LayerMask) bool {
	return ix.grid.Blocked(origin, target, mask)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
