package world

import (
	"fmt"
)

// Grid represents the station map with encapsulated cell storage
type Grid struct {
	roomMap map[int]map[int]*Cell
	roomDir map[string]*Cell
	rows    int
	cols    int

	startCell *Cell
}

// NewGrid creates a new grid with the given dimensions
func NewGrid(rows, cols int) *Grid {
	g := &Grid{}
	g.Build(rows, cols)
	return g
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// StartCell returns the player's starting cell
func (g *Grid) StartCell() *Cell {
	return g.startCell
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(row, col int) *Cell {
	if !g.IsValidPosition(row, col) {
		return nil
	}

	if g.roomMap == nil {
		return nil
	}

	rowMap, found := g.roomMap[row]
	if !found {
		return nil
	}

	return rowMap[col]
}

// CellAt returns the cell containing the world position, or nil
func (g *Grid) CellAt(pos Vec2) *Cell {
	row, col := pos.Tile()
	return g.GetCell(row, col)
}

// GetCellByName returns a cell by its name, or nil if not found
func (g *Grid) GetCellByName(name string) *Cell {
	if g.roomDir == nil {
		return nil
	}
	return g.roomDir[name]
}

// GetCellRelative returns the cell adjacent to the given cell in the specified direction
func (g *Grid) GetCellRelative(c *Cell, dir Direction) *Cell {
	if c == nil {
		return nil
	}
	if !dir.IsValid() {
		return nil
	}
	rowRel, colRel := dir.Delta()
	return g.GetCell(c.Row+rowRel, c.Col+colRel)
}

// SetStartCellAt sets the starting cell by position. Returns false if out of bounds.
func (g *Grid) SetStartCellAt(row, col int) bool {
	cell := g.GetCell(row, col)
	if cell == nil {
		return false
	}
	g.startCell = cell
	return true
}

// SetLayer sets the layer of the cell at the given position. Returns false if out of bounds.
func (g *Grid) SetLayer(row, col int, layer Layer) bool {
	cell := g.GetCell(row, col)
	if cell == nil {
		return false
	}
	cell.Layer = layer
	return true
}

// MarkAsFloor marks the cell at the given position as open floor. Returns false if out of bounds.
func (g *Grid) MarkAsFloor(row, col int) bool {
	return g.SetLayer(row, col, LayerFloor)
}

// RoomNumberAt returns the room number of the cell at (row, col), or UnknownRoom
func (g *Grid) RoomNumberAt(row, col int) int {
	cell := g.GetCell(row, col)
	if cell == nil {
		return UnknownRoom
	}
	return cell.RoomNumber
}

// Build initializes the grid with the given dimensions. Every cell starts as wall.
func (g *Grid) Build(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.rows = rows
	g.cols = cols
	g.startCell = nil

	g.roomMap = make(map[int]map[int]*Cell, rows)
	g.roomDir = make(map[string]*Cell)

	for currentRow := 0; currentRow < rows; currentRow++ {
		g.roomMap[currentRow] = make(map[int]*Cell)

		for currentCol := 0; currentCol < cols; currentCol++ {
			name := fmt.Sprintf("%v:%v", currentRow, currentCol)

			c := NewCell(currentRow, currentCol, name)

			g.roomMap[currentRow][currentCol] = c
			g.roomDir[name] = c
		}
	}
}

// BuildAllCellConnections connects all cells to their neighbors
func (g *Grid) BuildAllCellConnections() {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cell := g.GetCell(row, col)
			if cell != nil {
				g.buildCellConnections(cell)
			}
		}
	}
}

func (g *Grid) buildCellConnections(current *Cell) {
	if current == nil {
		return
	}

	for _, dir := range AllDirections() {
		adj := g.GetCellRelative(current, dir)

		if adj == nil {
			continue
		}

		current.SetNeighbor(dir, adj)
		adj.SetNeighbor(dir.Opposite(), current)
	}
}

// ForEachCell iterates over all cells in the grid, calling the provided function for each
func (g *Grid) ForEachCell(fn func(row, col int, cell *Cell)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cell := g.GetCell(row, col)
			if cell != nil {
				fn(row, col, cell)
			}
		}
	}
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if g.rows <= 0 || g.cols <= 0 {
		return "Grid has invalid dimensions"
	}

	if g.startCell == nil {
		return "Grid has no start cell"
	}

	if !g.startCell.Walkable() {
		return "Start cell is not walkable"
	}

	return ""
}
