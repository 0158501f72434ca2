package setup

import (
	"github.com/zyedidia/generic/mapset"

	"lightstation/pkg/engine/world"
)

// AssignRoomNumbers flood-fills connected floor cells and numbers each
// region from 0 in row-major order of its first cell. Doors and walls are
// room boundaries and keep world.UnknownRoom. Returns the number of rooms.
// Cell connections must already be built.
func AssignRoomNumbers(grid *world.Grid) int {
	grid.ForEachCell(func(row, col int, cell *world.Cell) {
		cell.RoomNumber = world.UnknownRoom
	})

	visited := mapset.New[*world.Cell]()
	rooms := 0
	grid.ForEachCell(func(row, col int, cell *world.Cell) {
		if !cell.IsFloor() || visited.Has(cell) {
			return
		}
		fillRoom(cell, rooms, visited)
		rooms++
	})
	return rooms
}

func fillRoom(start *world.Cell, number int, visited mapset.Set[*world.Cell]) {
	queue := []*world.Cell{start}
	visited.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		current.RoomNumber = number
		for _, n := range []*world.Cell{current.North, current.East, current.South, current.West} {
			if n != nil && n.IsFloor() && !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
}

// RoomCells returns every cell in the numbered room
func RoomCells(grid *world.Grid, room int) []*world.Cell {
	var cells []*world.Cell
	grid.ForEachCell(func(row, col int, cell *world.Cell) {
		if cell.RoomNumber == room {
			cells = append(cells, cell)
		}
	})
	return cells
}

// FacingFloor returns the direction from a wall cell to its first floor
// neighbour, checking North, East, South, West in turn
func FacingFloor(cell *world.Cell) (world.Direction, bool) {
	for _, dir := range world.AllDirections() {
		if cell.GetNeighbor(dir).IsFloor() {
			return dir, true
		}
	}
	return world.North, false
}
