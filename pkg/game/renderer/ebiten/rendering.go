package ebiten

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/state"
)

const frameBorder = 10

// Draw renders the station to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g := e.game
	if g == nil || e.monoFontSource == nil || g.CurrentCell() == nil {
		return
	}

	now := e.sched.Now()
	mapBottom := e.drawMap(screen, g, now)
	e.drawStatusBar(screen, g, mapBottom)
	e.drawMessages(screen, g, mapBottom)
	e.expireFlashes(now)
}

// drawMap draws the viewport centred on the player and returns its bottom edge
func (e *EbitenRenderer) drawMap(screen *ebiten.Image, g *state.Game, now time.Time) int {
	mapWidth := e.viewportCols * e.tileSize
	mapHeight := e.viewportRows * e.tileSize
	mapX := (e.windowWidth - mapWidth) / 2
	if mapX < frameBorder {
		mapX = frameBorder
	}
	mapY := frameBorder

	vector.DrawFilledRect(screen, float32(mapX), float32(mapY), float32(mapWidth), float32(mapHeight), colorMapBackground, false)

	current := g.CurrentCell()
	startRow := current.Row - e.viewportRows/2
	startCol := current.Col - e.viewportCols/2

	for vRow := 0; vRow < e.viewportRows; vRow++ {
		for vCol := 0; vCol < e.viewportCols; vCol++ {
			cell := g.Grid.GetCell(startRow+vRow, startCol+vCol)
			if cell == nil {
				continue
			}
			x := mapX + vCol*e.tileSize
			y := mapY + vRow*e.tileSize
			e.drawCell(screen, g, cell, x, y, now)
		}
	}
	return mapY + mapHeight
}

// drawCell draws one map cell
func (e *EbitenRenderer) drawCell(screen *ebiten.Image, g *state.Game, cell *world.Cell, x, y int, now time.Time) {
	opts := e.getCellRenderOptions(g, cell, now)
	e.drawTileWithBg(screen, opts.Icon, x, y, opts.Color, opts.HasBackground || opts.Background != nil, opts.Background)
}

// drawTileWithBg draws a single tile with optional custom background color
func (e *EbitenRenderer) drawTileWithBg(screen *ebiten.Image, icon string, x, y int, col color.Color, hasBackground bool, bgColor color.Color) {
	if icon == " " || icon == "" {
		return
	}

	if hasBackground {
		margin := float32(2)
		var bgCol color.Color = colorWallBg
		if bgColor != nil {
			bgCol = bgColor
		}
		vector.DrawFilledRect(screen, float32(x)+margin, float32(y)+margin,
			float32(e.tileSize)-margin*2, float32(e.tileSize)-margin*2,
			bgCol, false)
	}

	e.drawColoredChar(screen, icon, x, y, col)
}

// lineHeight is the vertical spacing of UI text
func (e *EbitenRenderer) lineHeight() int {
	return int(e.getUIFontSize()) + 6
}

// drawStatusBar draws the room indicator and switch list under the map
func (e *EbitenRenderer) drawStatusBar(screen *ebiten.Image, g *state.Game, top int) {
	x := frameBorder
	y := top + frameBorder

	current := g.CurrentCell()
	var where string
	if current.RoomNumber == world.UnknownRoom {
		where = "GT{IN_DOORWAY}"
	} else {
		where = fmt.Sprintf("GT{IN_ROOM} ACTION{%d}", current.RoomNumber)
	}
	e.drawColoredTextSegments(screen, parseMarkup(where), x, y)

	y += e.lineHeight()
	segments := []textSegment{{text: gotext.Get("SWITCHES") + ": ", color: colorSubtle}}
	for i, c := range g.Switches.All() {
		if i > 0 {
			segments = append(segments, textSegment{text: ", ", color: colorSubtle})
		}
		if c.IsOn() {
			segments = append(segments, textSegment{text: c.ID() + " on", color: colorPowered})
		} else {
			segments = append(segments, textSegment{text: c.ID() + " off", color: colorUnpowered})
		}
	}
	e.drawColoredTextSegments(screen, segments, x, y)
}

// drawMessages draws the most recent messages, newest last
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, g *state.Game, top int) {
	x := frameBorder
	y := top + frameBorder + e.lineHeight()*3

	e.drawColoredText(screen, strings.TrimSpace(gotext.Get("ACTIONS_LINE")), x, y-e.lineHeight(), colorSubtle)

	msgs := g.Messages
	if limit := footerLines - 3; len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	for i, msg := range msgs {
		e.drawColoredTextSegments(screen, parseMarkup(msg), x, y+i*e.lineHeight())
	}
}

// expireFlashes drops highlights that have faded
func (e *EbitenRenderer) expireFlashes(now time.Time) {
	for id, at := range e.flashes {
		if now.Sub(at) >= flashDuration {
			delete(e.flashes, id)
		}
	}
}
