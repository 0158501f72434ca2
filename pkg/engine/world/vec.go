package world

import "math"

// Vec2 is a world-space position. X runs along columns, Y along rows;
// tile (row, col) covers [col, col+1) x [row, row+1).
type Vec2 struct {
	X float64
	Y float64
}

// TileCenter returns the centre of the tile at (row, col)
func TileCenter(row, col int) Vec2 {
	return Vec2{X: float64(col) + 0.5, Y: float64(row) + 0.5}
}

// Tile returns the (row, col) of the tile containing v
func (v Vec2) Tile() (row, col int) {
	return int(math.Floor(v.Y)), int(math.Floor(v.X))
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns v scaled to unit length, or the zero vector
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Distance returns the Euclidean distance between v and o
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Len()
}
