package gameplay

import (
	"github.com/leonelquinteros/gotext"

	engineinput "lightstation/pkg/engine/input"
	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/state"
)

// ProcessIntent handles a high-level input intent from the tiered input system.
func ProcessIntent(g *state.Game, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionHint:
		logMessage(g, gotext.Get("HELP_KEYS"))
		return

	case engineinput.ActionQuit:
		g.Quit = true
		return

	case engineinput.ActionMoveEast:
		g.NavStyle = state.NavStyleNSEW
		Move(g, world.East)
		return

	case engineinput.ActionMoveWest:
		g.NavStyle = state.NavStyleNSEW
		Move(g, world.West)
		return

	case engineinput.ActionMoveNorth:
		g.NavStyle = state.NavStyleNSEW
		Move(g, world.North)
		return

	case engineinput.ActionMoveSouth:
		g.NavStyle = state.NavStyleNSEW
		Move(g, world.South)
		return

	case engineinput.ActionInteract, engineinput.ActionAction:
		// Check for adjacent interactables in NSEW priority order, cycling through them
		if !CheckAdjacentInteractables(g) {
			logMessage(g, gotext.Get("NOTHING_TO_INTERACT"))
		}
		return

	case engineinput.ActionZoomIn, engineinput.ActionZoomOut:
		// Renderer concern
		return
	}

	logMessage(g, gotext.Get("UNKNOWN_COMMAND"))
}
