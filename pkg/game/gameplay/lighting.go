package gameplay

import (
	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/entities"
	"lightstation/pkg/game/state"
)

// UpdatePower pushes each APC's voltage to the switches registered with it
func UpdatePower(g *state.Game) {
	for _, apc := range g.APCs {
		for _, id := range apc.SwitchIDs() {
			if c, ok := g.Switches.Get(id); ok {
				c.PowerNetworkUpdate(apc.Voltage)
			}
		}
	}
}

// UpdateLighting recomputes which cells are lit. Every emitting light
// illuminates the cells in its field of view; walls and doors block it.
func UpdateLighting(g *state.Game) {
	if g.Grid == nil {
		return
	}

	g.Grid.ForEachCell(func(row, col int, cell *world.Cell) {
		cell.Lit = false
	})

	for _, l := range g.Lights {
		if l.Emitting() {
			illuminate(g.Grid, l.Position)
		}
	}
	for _, e := range g.EmergencyLights {
		if e.Emitting() {
			illuminate(g.Grid, e.Position)
		}
	}
}

func illuminate(grid *world.Grid, pos world.Vec2) {
	for _, cell := range world.CalculateFOV(grid, grid.CellAt(pos), entities.LightRadius, world.ObstacleMask) {
		cell.Lit = true
	}
}

// Tick runs the per-frame simulation: power first so lights see this
// frame's voltages
func Tick(g *state.Game) {
	UpdatePower(g)
	UpdateLighting(g)
}
