// Package gameplay provides core game logic for player movement and interactions.
package gameplay

import (
	"github.com/leonelquinteros/gotext"

	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/state"
	gameworld "lightstation/pkg/game/world"
)

// CanEnter checks if the player can enter a cell
func CanEnter(g *state.Game, r *world.Cell, logReason bool) bool {
	if r == nil {
		return false
	}

	if gameworld.HasClosedDoor(r) {
		if logReason {
			logMessage(g, gotext.Get("DOOR_CLOSED"))
		}
		return false
	}

	return r.Walkable()
}

// MoveCell moves the player to a new cell
func MoveCell(g *state.Game, requestedCell *world.Cell) {
	if g.Player == nil || !CanEnter(g, requestedCell, true) {
		return
	}

	current := g.CurrentCell()
	// Reset interaction order when player moves
	if current == nil || current.Row != requestedCell.Row || current.Col != requestedCell.Col {
		g.LastInteractedRow = -1
		g.LastInteractedCol = -1
		g.InteractionPlayerRow = requestedCell.Row
		g.InteractionPlayerCol = requestedCell.Col
		if current != nil {
			g.MovementCount++
		}
	}

	g.Player.Cell = requestedCell
}

// Move steps the player one tile in dir
func Move(g *state.Game, dir world.Direction) {
	current := g.CurrentCell()
	if current == nil {
		return
	}
	MoveCell(g, current.GetNeighbor(dir))
}

// ToggleDoor opens or closes the door on cell. The player's own tile is never
// closed on them.
func ToggleDoor(g *state.Game, cell *world.Cell) bool {
	if !gameworld.HasDoor(cell) || cell == g.CurrentCell() {
		return false
	}
	door := gameworld.GetGameData(cell).Door
	door.Toggle()
	if door.Open {
		logMessage(g, gotext.Get("DOOR_OPENED"))
	} else {
		logMessage(g, gotext.Get("DOOR_SHUT"))
	}
	return true
}

// logMessage adds a formatted message to the game's message log
func logMessage(g *state.Game, msg string) {
	g.AddMessage(msg)
}
