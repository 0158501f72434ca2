package gameplay

import (
	"github.com/leonelquinteros/gotext"

	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/lightswitch"
	"lightstation/pkg/game/state"
	gameworld "lightstation/pkg/game/world"
)

// CheckAdjacentInteractables checks adjacent cells in NSEW priority order for interactables
// Cycles through interactables when player hasn't moved, skipping previously interacted cells
// Returns true if an interaction occurred
func CheckAdjacentInteractables(g *state.Game) bool {
	current := g.CurrentCell()
	if current == nil {
		return false
	}

	// Check if player has moved since last interaction (reset order if moved)
	if g.InteractionPlayerRow != current.Row || g.InteractionPlayerCol != current.Col {
		g.LastInteractedRow = -1
		g.LastInteractedCol = -1
		g.InteractionPlayerRow = current.Row
		g.InteractionPlayerCol = current.Col
	}

	neighbors := []*world.Cell{current.North, current.South, current.East, current.West}

	// Two passes: the first skips the cell used last so repeated presses cycle
	// through neighbours; the second lets a lone interactable be used again.
	for pass := 0; pass < 2; pass++ {
		for _, cell := range neighbors {
			if cell == nil {
				continue
			}
			if pass == 0 && cell.Row == g.LastInteractedRow && cell.Col == g.LastInteractedCol {
				continue
			}
			if interactAt(g, cell) {
				g.LastInteractedRow = cell.Row
				g.LastInteractedCol = cell.Col
				g.InteractionsCount++
				return true
			}
		}
	}

	return false
}

func interactAt(g *state.Game, cell *world.Cell) bool {
	switch {
	case gameworld.HasSwitch(cell):
		return InteractSwitch(g, gameworld.GetGameData(cell).Switch)
	case gameworld.HasAPC(cell):
		return ToggleBreaker(g, cell)
	case gameworld.HasDoor(cell):
		return ToggleDoor(g, cell)
	}
	return false
}

// InteractSwitch presses a wall switch on the player's behalf and reports
// the outcome in the message log
func InteractSwitch(g *state.Game, c *lightswitch.Controller) bool {
	if c == nil {
		return false
	}
	sw := c.Switch()
	before := c.Phase()
	c.Interact(g.Player, sw.Position)

	switch {
	case before == lightswitch.Idle && c.Phase() == lightswitch.CoolingDown:
		logMessage(g, gotext.Get("SWITCH_CLICK", sw.ID))
	case before == lightswitch.CoolingDown:
		logMessage(g, gotext.Get("SWITCH_BUSY", sw.ID))
	case !sw.SelfPowered && (sw.APC == nil || !sw.APC.Powered()):
		logMessage(g, gotext.Get("SWITCH_NO_POWER", sw.ID))
	case !g.Player.IsInReach(sw.Position):
		logMessage(g, gotext.Get("SWITCH_OUT_OF_REACH", sw.ID))
	}
	// The switch always consumes the press
	return true
}

// ToggleBreaker cuts or restores the APC mounted on cell. A client only
// reports that the breaker is out of its hands.
func ToggleBreaker(g *state.Game, cell *world.Cell) bool {
	apc := gameworld.GetGameData(cell).APC
	if apc == nil || g.Player == nil || !g.Player.IsInReach(apc.Position) {
		return false
	}
	if g.Replica {
		logMessage(g, gotext.Get("APC_REMOTE", apc.ID))
		return true
	}
	apc.ToggleBreaker()
	if apc.Powered() {
		logMessage(g, gotext.Get("APC_RESTORED", apc.ID))
	} else {
		logMessage(g, gotext.Get("APC_CUT", apc.ID))
	}
	return true
}
