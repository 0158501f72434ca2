// Package setup builds a station from an ASCII layout: grid, rooms, spatial
// index, power controllers, lights, doors and switch controllers.
package setup

import (
	"fmt"
	"strings"

	"lightstation/pkg/engine/scheduler"
	"lightstation/pkg/engine/spatial"
	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/config"
	"lightstation/pkg/game/entities"
	"lightstation/pkg/game/lightswitch"
	"lightstation/pkg/game/state"
	gameworld "lightstation/pkg/game/world"
)

// Layout legend
const (
	TileWall              = '#'
	TileFloor             = '.'
	TileDoorClosed        = 'D'
	TileDoorOpen          = 'd'
	TileLight             = 'L'
	TileEmergencyLight    = 'E'
	TileAPC               = 'A'
	TileSwitch            = 'S'
	TileSelfPoweredSwitch = 'P'
	TileStart             = '@'
)

// Options tune the entities LoadStation creates
type Options struct {
	SwitchRadius   float64
	ShutoffVoltage float64
	APCVoltage     float64
	Timing         lightswitch.Timing
}

// DefaultOptions matches config.Default
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig extracts the setup options from a loaded config
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		SwitchRadius:   cfg.Switch.Radius,
		ShutoffVoltage: cfg.Switch.ShutoffVoltage,
		APCVoltage:     cfg.Station.APCVoltage,
		Timing: lightswitch.Timing{
			Cooldown:     cfg.Switch.Cooldown,
			DeferredSync: cfg.Switch.DeferredSync,
		},
	}
}

type mount struct {
	row, col int
	tile     rune
}

// ParseLayout splits an ASCII layout into rows, dropping blank leading and
// trailing lines and carriage returns
func ParseLayout(layout string) []string {
	lines := strings.Split(strings.ReplaceAll(layout, "\r", ""), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// LoadStation builds a game from an ASCII layout. The switch controllers are
// created but not started.
func LoadStation(layout string, opts Options, sched *scheduler.Scheduler) (*state.Game, error) {
	lines := ParseLayout(layout)
	if len(lines) == 0 {
		return nil, fmt.Errorf("layout is empty")
	}
	cols := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > cols {
			cols = n
		}
	}

	grid := world.NewGrid(len(lines), cols)
	g := state.NewGame(sched)
	g.Grid = grid
	g.Space = spatial.NewIndex(grid)

	var mounts []mount
	var lights, emergencies []*world.Cell
	starts := 0

	for row, line := range lines {
		for col, tile := range []rune(line) {
			cell := grid.GetCell(row, col)
			switch tile {
			case TileWall, ' ':
			case TileFloor:
				cell.Layer = world.LayerFloor
			case TileStart:
				cell.Layer = world.LayerFloor
				grid.SetStartCellAt(row, col)
				starts++
			case TileLight:
				cell.Layer = world.LayerFloor
				lights = append(lights, cell)
			case TileEmergencyLight:
				cell.Layer = world.LayerFloor
				emergencies = append(emergencies, cell)
			case TileDoorClosed, TileDoorOpen:
				door := entities.NewDoor(cell, tile == TileDoorOpen)
				gameworld.InitGameData(cell).Door = door
				g.Doors = append(g.Doors, door)
			case TileAPC, TileSwitch, TileSelfPoweredSwitch:
				mounts = append(mounts, mount{row: row, col: col, tile: tile})
			default:
				return nil, fmt.Errorf("layout row %d col %d: unknown tile %q", row, col, tile)
			}
		}
	}
	if starts != 1 {
		return nil, fmt.Errorf("layout needs exactly one start tile %q, found %d", TileStart, starts)
	}

	grid.BuildAllCellConnections()
	g.Rooms = AssignRoomNumbers(grid)
	if err := grid.Validate(); err != "" {
		return nil, fmt.Errorf("layout: %s", err)
	}

	for i, cell := range lights {
		l := entities.NewLight(fmt.Sprintf("light-%d", i+1), cell.Center())
		gameworld.InitGameData(cell).Light = l
		g.Lights = append(g.Lights, l)
		g.Space.Add(&spatial.Body{ID: l.ID, Position: l.Position, Layer: world.LayerLighting, Tag: world.TagLight, Ref: l})
	}
	for i, cell := range emergencies {
		e := entities.NewEmergencyLight(fmt.Sprintf("emergency-%d", i+1), cell.Center())
		gameworld.InitGameData(cell).EmergencyLight = e
		g.EmergencyLights = append(g.EmergencyLights, e)
		g.Space.Add(&spatial.Body{ID: e.ID, Position: e.Position, Layer: world.LayerLighting, Tag: world.TagEmergencyLight, Ref: e})
	}

	// APCs go in first so every switch can find them
	apcs, switches := 0, 0
	for _, m := range mounts {
		if m.tile != TileAPC {
			continue
		}
		cell := grid.GetCell(m.row, m.col)
		facing, ok := FacingFloor(cell)
		if !ok {
			return nil, fmt.Errorf("APC at row %d col %d does not face a floor tile", m.row, m.col)
		}
		apcs++
		a := entities.NewAPC(fmt.Sprintf("apc-%d", apcs), cell.Center(), facing, opts.APCVoltage)
		gameworld.InitGameData(cell).APC = a
		g.APCs = append(g.APCs, a)
		g.Space.Add(&spatial.Body{ID: a.ID, Position: a.Position, Layer: world.LayerWallMounts, Tag: world.TagAPC, Ref: a})
	}
	for _, m := range mounts {
		if m.tile == TileAPC {
			continue
		}
		cell := grid.GetCell(m.row, m.col)
		facing, ok := FacingFloor(cell)
		if !ok {
			return nil, fmt.Errorf("switch at row %d col %d does not face a floor tile", m.row, m.col)
		}
		switches++
		sw := lightswitch.NewSwitch(fmt.Sprintf("switch-%d", switches), cell.Center(), facing)
		sw.SelfPowered = m.tile == TileSelfPoweredSwitch
		if opts.SwitchRadius > 0 {
			sw.Radius = opts.SwitchRadius
		}
		sw.Power.Threshold = opts.ShutoffVoltage

		c := lightswitch.NewController(sw, lightswitch.Deps{
			Space:     g.Space,
			Rooms:     grid,
			Scheduler: sched,
			Timing:    opts.Timing,
		})
		g.Switches.Add(c)
		gameworld.InitGameData(cell).Switch = c
		g.Space.Add(&spatial.Body{ID: sw.ID, Position: sw.Position, Layer: world.LayerWallMounts, Tag: world.TagSwitch, Ref: c})
	}

	g.Player = entities.NewPlayer("crew", grid.StartCell())
	return g, nil
}
