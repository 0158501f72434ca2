package ebiten

import (
	"image/color"
	"time"

	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/renderer"
	"lightstation/pkg/game/state"
	gameworld "lightstation/pkg/game/world"
)

// CellRenderOptions is how a single cell is drawn
type CellRenderOptions struct {
	Icon          string
	Color         color.Color
	HasBackground bool
	Background    color.Color
}

// getCellRenderOptions maps the shared tile classification onto the palette
func (e *EbitenRenderer) getCellRenderOptions(g *state.Game, cell *world.Cell, now time.Time) CellRenderOptions {
	tile := renderer.Classify(g, cell)
	opts := CellRenderOptions{Icon: tile.Icon()}

	switch tile {
	case renderer.TilePlayer:
		opts.Color = colorPlayer
	case renderer.TileWall:
		opts.Color = colorWall
		opts.HasBackground = true
	case renderer.TileFloorDark:
		opts.Color = colorFloorDark
	case renderer.TileFloorLit:
		opts.Color = colorFloorLit
	case renderer.TileDoorOpen:
		opts.Color = colorDoorOpen
		opts.HasBackground = true
	case renderer.TileDoorClosed:
		opts.Color = colorDoorClosed
		opts.HasBackground = true
	case renderer.TileLightOn:
		opts.Color = colorLightOn
	case renderer.TileLightOff:
		opts.Color = colorLightOff
	case renderer.TileEmergencyOn:
		opts.Color = colorEmergencyOn
	case renderer.TileEmergencyOff:
		opts.Color = colorEmergencyOff
	case renderer.TileAPCOn, renderer.TileSwitchOn:
		opts.Color = colorPowered
		opts.HasBackground = true
	case renderer.TileAPCOff, renderer.TileSwitchOff:
		opts.Color = colorUnpowered
		opts.HasBackground = true
	default:
		opts.Icon = renderer.IconVoid
		opts.Color = colorMapBackground
	}

	if sw := gameworld.GetGameData(cell).Switch; sw != nil {
		if at, ok := e.flashes[sw.ID()]; ok && now.Sub(at) < flashDuration {
			opts.Background = colorFlash
		}
	}
	return opts
}
