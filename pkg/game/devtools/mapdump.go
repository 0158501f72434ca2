// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/setup"
	"lightstation/pkg/game/state"
	gameworld "lightstation/pkg/game/world"
)

// cellSymbol returns the layout tile for a cell, the inverse of what
// setup.LoadStation reads
func cellSymbol(g *state.Game, cell *world.Cell) rune {
	if cell == nil {
		return setup.TileWall
	}
	data := gameworld.GetGameData(cell)
	switch {
	case data.Switch != nil:
		if data.Switch.Switch().SelfPowered {
			return setup.TileSelfPoweredSwitch
		}
		return setup.TileSwitch
	case data.APC != nil:
		return setup.TileAPC
	case data.Door != nil:
		if data.Door.Open {
			return setup.TileDoorOpen
		}
		return setup.TileDoorClosed
	case data.Light != nil:
		return setup.TileLight
	case data.EmergencyLight != nil:
		return setup.TileEmergencyLight
	case cell == g.Grid.StartCell():
		return setup.TileStart
	case cell.IsFloor():
		return setup.TileFloor
	default:
		return setup.TileWall
	}
}

// Layout renders the station back into the ASCII layout format
func Layout(g *state.Game) string {
	var b strings.Builder
	for row := 0; row < g.Grid.Rows(); row++ {
		for col := 0; col < g.Grid.Cols(); col++ {
			b.WriteRune(cellSymbol(g, g.Grid.GetCell(row, col)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteDump writes metadata, the loadable layout and the state of every
// switch and APC to w
func WriteDump(w io.Writer, g *state.Game) {
	playerRow, playerCol := -1, -1
	if current := g.CurrentCell(); current != nil {
		playerRow, playerCol = current.Row, current.Col
	}

	fmt.Fprintln(w, "=== STATION DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "grid_rows: %d\n", g.Grid.Rows())
	fmt.Fprintf(w, "grid_cols: %d\n", g.Grid.Cols())
	fmt.Fprintf(w, "rooms: %d\n", g.Rooms)
	fmt.Fprintf(w, "player_cell: %d,%d\n", playerRow, playerCol)
	fmt.Fprintf(w, "movements: %d\n", g.MovementCount)
	fmt.Fprintf(w, "interactions: %d\n", g.InteractionsCount)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, "# = wall  . = floor  D = closed door  d = open door  L = light  E = emergency light  A = APC  S = switch  P = self-powered switch  @ = start")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Layout ---")
	fmt.Fprint(w, Layout(g))
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- APCs ---")
	for _, apc := range g.APCs {
		row, col := apc.Position.Tile()
		fmt.Fprintf(w, "%s: cell=%d,%d voltage=%.0f powered=%v switches=%d\n",
			apc.ID, row, col, apc.Voltage, apc.Powered(), len(apc.SwitchIDs()))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Switches ---")
	for _, c := range g.Switches.All() {
		sw := c.Switch()
		row, col := sw.Position.Tile()
		apc := "none"
		if sw.APC != nil {
			apc = sw.APC.ID
		}
		fmt.Fprintf(w, "%s: cell=%d,%d facing=%s on=%v power_cut=%v self_powered=%v apc=%s\n",
			sw.ID, row, col, sw.Facing, c.IsOn(), sw.Power.PowerCut, sw.SelfPowered, apc)
	}
}

// DumpToFile writes WriteDump's output to path and returns the absolute path
func DumpToFile(g *state.Game, path string) (string, error) {
	if g.Grid == nil {
		return "", fmt.Errorf("no grid")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	WriteDump(f, g)
	return absPath, nil
}
