// Package ebiten provides an Ebiten-based 2D graphical renderer for the station.
package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	engineinput "lightstation/pkg/engine/input"
	"lightstation/pkg/engine/scheduler"
	"lightstation/pkg/game/state"
)

// Default window and tile sizes
const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 768
	defaultTileSize     = 24
	baseFontSize        = 20.0

	tileSizeStep = 4
	minTileSize  = 12
	maxTileSize  = 144

	// Rows reserved below the map for the status line and messages
	footerLines = 8

	flashDuration = 300 * time.Millisecond
)

// Key repeat timing
const (
	keyRepeatInitialDelay = 500 * time.Millisecond
	keyRepeatInterval     = 100 * time.Millisecond
)

// keyRepeatInfo tracks when a held key was first pressed and last repeated
type keyRepeatInfo struct {
	firstPress time.Time
	lastRepeat time.Time
}

// EbitenRenderer draws the station and drives the scheduler from Update.
// Update and Draw run on the same goroutine, so no state here is locked.
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int
	tileSize     int

	viewportRows int
	viewportCols int

	monoFontSource *text.GoTextFaceSource
	sansFontSource *text.GoTextFaceSource

	cachedMonoFace     *text.GoTextFace
	cachedSansFace     *text.GoTextFace
	cachedTileFontSize float64
	cachedUIFontSize   float64

	game     *state.Game
	sched    *scheduler.Scheduler
	onIntent func(engineinput.Intent)
	logger   *zap.Logger

	// flashes maps a switch ID to the time its state last changed
	flashes map[string]time.Time

	keyRepeatState map[string]*keyRepeatInfo
}

