// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// UnknownRoom is the room number of a cell that belongs to no room.
const UnknownRoom = -1

// Cell represents a single cell/tile in the grid.
// This is a generic engine primitive that can be extended by games.
type Cell struct {
	// Basic identification
	Name string

	// Grid position
	Row int
	Col int

	// Layer is the physics layer the tile itself occupies (floor, wall, door).
	Layer Layer

	// RoomNumber groups connected floor tiles; UnknownRoom when unassigned.
	RoomNumber int

	// Navigation - links to adjacent cells
	North *Cell
	East  *Cell
	South *Cell
	West  *Cell

	// Lit is set while at least one powered light reaches this cell.
	Lit bool

	// GameData holds game-specific extensions.
	// Games should cast this to their specific type (e.g., *GameCellData).
	GameData interface{}
}

// NewCell creates a new wall cell at the given position
func NewCell(row, col int, name string) *Cell {
	return &Cell{
		Name:       name,
		Row:        row,
		Col:        col,
		Layer:      LayerWalls,
		RoomNumber: UnknownRoom,
	}
}

// IsFloor returns true if the cell is open floor
func (c *Cell) IsFloor() bool {
	return c != nil && c.Layer == LayerFloor
}

// IsDoor returns true if the cell holds a door, open or closed
func (c *Cell) IsDoor() bool {
	return c != nil && (c.Layer == LayerDoorOpen || c.Layer == LayerDoorClosed)
}

// Walkable returns true if an actor may stand on the cell
func (c *Cell) Walkable() bool {
	return c != nil && (c.Layer == LayerFloor || c.Layer == LayerDoorOpen)
}

// Center returns the world position of the cell's centre
func (c *Cell) Center() Vec2 {
	return TileCenter(c.Row, c.Col)
}

// GetNeighbor returns the neighboring cell in the given direction
func (c *Cell) GetNeighbor(dir Direction) *Cell {
	if c == nil {
		return nil
	}
	switch dir {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return nil
	}
}

// SetNeighbor sets the neighboring cell in the given direction
func (c *Cell) SetNeighbor(dir Direction, neighbor *Cell) {
	if c == nil {
		return
	}
	switch dir {
	case North:
		c.North = neighbor
	case East:
		c.East = neighbor
	case South:
		c.South = neighbor
	case West:
		c.West = neighbor
	}
}

// GetNeighbors returns all non-nil adjacent cells
func (c *Cell) GetNeighbors() []*Cell {
	var neighbors []*Cell
	if c.North != nil {
		neighbors = append(neighbors, c.North)
	}
	if c.East != nil {
		neighbors = append(neighbors, c.East)
	}
	if c.South != nil {
		neighbors = append(neighbors, c.South)
	}
	if c.West != nil {
		neighbors = append(neighbors, c.West)
	}
	return neighbors
}
