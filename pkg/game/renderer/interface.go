package renderer

import (
	"lightstation/pkg/game/lightswitch"
	"lightstation/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleCell
	StyleItem
	StyleAction
	StyleActionShort
	StyleDenied
	StyleDoor
	StyleSubtle
	StylePlayer
	StylePowered
)

// Renderer defines the interface for game rendering backends.
// Implementations include the TUI (terminal) and Ebiten.
type Renderer interface {
	lightswitch.Presenter

	// Init initializes the renderer (colors, fonts, window, etc.)
	Init() error

	// RenderFrame renders a complete game frame
	RenderFrame(g *state.Game)
}

// Fanout forwards presenter calls to each presenter in order
type Fanout []lightswitch.Presenter

// ShowSwitch forwards to every presenter
func (f Fanout) ShowSwitch(switchID string, on bool) {
	for _, p := range f {
		p.ShowSwitch(switchID, on)
	}
}

// PlayClick forwards to every presenter
func (f Fanout) PlayClick(switchID string) {
	for _, p := range f {
		p.PlayClick(switchID)
	}
}
