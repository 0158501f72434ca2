package ebiten

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	engineinput "lightstation/pkg/engine/input"
)

// repeatKey binds a held key to the input code it produces
type repeatKey struct {
	key  ebiten.Key
	code string
}

// Movement keys repeat while held. S is skipped while Ctrl is down.
var movementKeys = []repeatKey{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyW, "arrow_up"},
	{ebiten.KeyS, "arrow_down"},
	{ebiten.KeyA, "arrow_left"},
	{ebiten.KeyD, "arrow_right"},
	{ebiten.KeyK, "k"},
	{ebiten.KeyJ, "j"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyL, "l"},
	{ebiten.KeyN, "n"},
}

// Update ticks the scheduler and handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	e.sched.Tick()
	if e.game.Quit {
		return ebiten.Termination
	}

	e.handleZoom()

	if intent := e.checkInput(); intent.Action != engineinput.ActionNone && e.onIntent != nil {
		e.onIntent(intent)
	}

	if e.game.Quit {
		e.logger.Info("player quit")
		return ebiten.Termination
	}
	return nil
}

// handleZoom handles =/- for font/tile size adjustment
func (e *EbitenRenderer) handleZoom() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		e.increaseTileSize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		e.decreaseTileSize()
	}
	if inpututil.IsKeyJustPressed(ebiten.Key0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0) {
		e.resetTileSize()
	}
}

// increaseTileSize increases the tile/font size
func (e *EbitenRenderer) increaseTileSize() {
	if e.tileSize < maxTileSize {
		e.tileSize += tileSizeStep
		e.recalculateViewport()
	}
}

// decreaseTileSize decreases the tile/font size
func (e *EbitenRenderer) decreaseTileSize() {
	if e.tileSize > minTileSize {
		e.tileSize -= tileSizeStep
		e.recalculateViewport()
	}
}

// resetTileSize resets tile size to default
func (e *EbitenRenderer) resetTileSize() {
	e.tileSize = defaultTileSize
	e.recalculateViewport()
}

// recalculateViewport recalculates viewport dimensions based on current window and tile size
func (e *EbitenRenderer) recalculateViewport() {
	e.invalidateFontCache()

	w, h := ebiten.WindowSize()
	if w == 0 || h == 0 {
		w, h = e.windowWidth, e.windowHeight
	}

	uiLine := int(e.getUIFontSize()) + 6
	frameBorder := 10
	availableHeight := h - uiLine*footerLines - frameBorder*2
	availableWidth := w - frameBorder*2

	e.viewportCols = availableWidth / e.tileSize
	e.viewportRows = availableHeight / e.tileSize

	if e.viewportCols < 15 {
		e.viewportCols = 15
	}
	if e.viewportRows < 7 {
		e.viewportRows = 7
	}

	// Keep odd numbers for centering
	if e.viewportCols%2 == 0 {
		e.viewportCols--
	}
	if e.viewportRows%2 == 0 {
		e.viewportRows--
	}
}

// shouldRepeatKey checks if a key should trigger (initial press or repeat)
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string, now time.Time) bool {
	state, exists := e.keyRepeatState[code]

	if !isPressed() {
		delete(e.keyRepeatState, code)
		return false
	}

	if !exists {
		e.keyRepeatState[code] = &keyRepeatInfo{firstPress: now, lastRepeat: now}
		return true
	}

	if now.Sub(state.firstPress) >= keyRepeatInitialDelay && now.Sub(state.lastRepeat) >= keyRepeatInterval {
		state.lastRepeat = now
		return true
	}
	return false
}

// checkInput reads the keyboard and returns the corresponding Intent
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	now := time.Now()

	for _, k := range movementKeys {
		key := k.key
		pressed := func() bool {
			if key == ebiten.KeyS && ebiten.IsKeyPressed(ebiten.KeyControl) {
				return false
			}
			return ebiten.IsKeyPressed(key)
		}
		if e.shouldRepeatKey(pressed, key.String(), now) {
			return keyboardIntent(k.code)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyE),
		inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		inpututil.IsKeyJustPressed(ebiten.KeyKPEnter):
		return engineinput.Intent{Action: engineinput.ActionInteract}
	case inpututil.IsKeyJustPressed(ebiten.KeySlash) && ebiten.IsKeyPressed(ebiten.KeyShift):
		return keyboardIntent("?")
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return keyboardIntent("escape")
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		return keyboardIntent("quit")
	}

	// Remaining letters go through the bindings so configured keys work here too
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		name := key.String()
		if len(name) != 1 || name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		if intent := keyboardIntent(strings.ToLower(name)); intent.Action != engineinput.ActionNone {
			return intent
		}
	}

	return engineinput.Intent{Action: engineinput.ActionNone}
}

func keyboardIntent(code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device: engineinput.DeviceKeyboard,
		Code:   code,
	}))
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
		e.recalculateViewport()
		e.logger.Debug("window resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	return outsideWidth, outsideHeight
}
