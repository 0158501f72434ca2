// Package renderer holds what every rendering backend shares: the tile
// classification of a cell, its icon, and message markup.
package renderer

import (
	"regexp"
	"strings"

	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/state"
	gameworld "lightstation/pkg/game/world"
)

// Tile is what a renderer draws for one cell
type Tile int

const (
	TileVoid Tile = iota
	TileWall
	TileFloorDark
	TileFloorLit
	TileDoorOpen
	TileDoorClosed
	TileLightOn
	TileLightOff
	TileEmergencyOn
	TileEmergencyOff
	TileAPCOn
	TileAPCOff
	TileSwitchOn
	TileSwitchOff
	TilePlayer
)

// Icon constants for the station
const (
	PlayerIcon       = "@"
	IconWall         = "▒"
	IconFloorDark    = "·"
	IconFloorLit     = "○"
	IconVoid         = " "
	IconDoorOpen     = "□"
	IconDoorClosed   = "▣"
	IconLightOn      = "✦"
	IconLightOff     = "✧"
	IconEmergencyOn  = "◆"
	IconEmergencyOff = "◇"
	IconAPC          = "▤"
	IconSwitchOn     = "▮"
	IconSwitchOff    = "▯"
)

// Icon returns the glyph for the tile
func (t Tile) Icon() string {
	switch t {
	case TileWall:
		return IconWall
	case TileFloorDark:
		return IconFloorDark
	case TileFloorLit:
		return IconFloorLit
	case TileDoorOpen:
		return IconDoorOpen
	case TileDoorClosed:
		return IconDoorClosed
	case TileLightOn:
		return IconLightOn
	case TileLightOff:
		return IconLightOff
	case TileEmergencyOn:
		return IconEmergencyOn
	case TileEmergencyOff:
		return IconEmergencyOff
	case TileAPCOn, TileAPCOff:
		return IconAPC
	case TileSwitchOn:
		return IconSwitchOn
	case TileSwitchOff:
		return IconSwitchOff
	case TilePlayer:
		return PlayerIcon
	default:
		return IconVoid
	}
}

// Classify decides how a cell is drawn. Mounted entities win over the
// tile underneath; the player wins over everything.
func Classify(g *state.Game, cell *world.Cell) Tile {
	if cell == nil {
		return TileVoid
	}
	if g.CurrentCell() == cell {
		return TilePlayer
	}

	data := gameworld.GetGameData(cell)
	switch {
	case data.Switch != nil:
		if data.Switch.IsOn() {
			return TileSwitchOn
		}
		return TileSwitchOff
	case data.APC != nil:
		if data.APC.Powered() {
			return TileAPCOn
		}
		return TileAPCOff
	case data.Door != nil:
		if data.Door.Open {
			return TileDoorOpen
		}
		return TileDoorClosed
	case data.Light != nil:
		if data.Light.Emitting() {
			return TileLightOn
		}
		return TileLightOff
	case data.EmergencyLight != nil:
		if data.EmergencyLight.Emitting() {
			return TileEmergencyOn
		}
		return TileEmergencyOff
	}

	if cell.IsFloor() {
		if cell.Lit {
			return TileFloorLit
		}
		return TileFloorDark
	}
	if hasAdjacentFloor(cell) {
		return TileWall
	}
	return TileVoid
}

// hasAdjacentFloor checks if any adjacent cell is floor, so the station's
// outer rock renders as void
func hasAdjacentFloor(c *world.Cell) bool {
	for _, n := range []*world.Cell{c.North, c.East, c.South, c.West} {
		if n != nil && (n.IsFloor() || n.IsDoor()) {
			return true
		}
	}
	return false
}

var markupPattern = regexp.MustCompile(`([A-Z_]*){([^{}]+)}`)

// ApplyMarkup replaces every FUNCTION{operand} span in msg with
// style(function, operand)
func ApplyMarkup(msg string, style func(function, operand string) string) string {
	matches := markupPattern.FindAllStringSubmatch(msg, -1)
	for _, match := range matches {
		msg = strings.Replace(msg, match[0], style(match[1], match[2]), 1)
	}
	return msg
}

// StripMarkup removes markup, leaving only the operands
func StripMarkup(msg string) string {
	return ApplyMarkup(msg, func(_, operand string) string { return operand })
}
