package ebiten

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	engineinput "lightstation/pkg/engine/input"
	"lightstation/pkg/engine/scheduler"
	"lightstation/pkg/game/state"
)

// New creates the graphical renderer. onIntent receives every player intent
// from inside Update, after the scheduler has ticked.
func New(g *state.Game, sched *scheduler.Scheduler, onIntent func(engineinput.Intent), logger *zap.Logger) *EbitenRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EbitenRenderer{
		windowWidth:    defaultWindowWidth,
		windowHeight:   defaultWindowHeight,
		tileSize:       defaultTileSize,
		game:           g,
		sched:          sched,
		onIntent:       onIntent,
		logger:         logger,
		flashes:        make(map[string]time.Time),
		keyRepeatState: make(map[string]*keyRepeatInfo),
	}
}

// Init loads fonts and configures the window
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return err
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle("Light Station")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	e.recalculateViewport()
	return nil
}

// ShowSwitch briefly highlights the switch that changed
func (e *EbitenRenderer) ShowSwitch(switchID string, on bool) {
	e.flashes[switchID] = e.sched.Now()
	e.logger.Debug("switch shown", zap.String("switch", switchID), zap.Bool("on", on))
}

// PlayClick is a no-op: sound is played by the audio presenter
func (e *EbitenRenderer) PlayClick(switchID string) {}

// RenderFrame is a no-op: Ebiten draws every frame from Draw
func (e *EbitenRenderer) RenderFrame(g *state.Game) {}

// Run blocks until the window closes or the player quits
func (e *EbitenRenderer) Run() error {
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}
