package state

import (
	"lightstation/pkg/engine/scheduler"
	"lightstation/pkg/engine/spatial"
	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/entities"
	"lightstation/pkg/game/lightswitch"
)

// NavStyle represents the navigation key style
type NavStyle int

// Navigation styles
const (
	NavStyleNSEW NavStyle = iota
	NavStyleVim
)

// Game represents the state of one station
type Game struct {
	Grid      *world.Grid
	Space     *spatial.Index
	Scheduler *scheduler.Scheduler

	Switches        *lightswitch.Registry
	APCs            []*entities.APC
	Lights          []*entities.Light
	EmergencyLights []*entities.EmergencyLight
	Doors           []*entities.Door

	Player *entities.Player
	Rooms  int

	// Replica is set on a client; the server owns APC voltages
	Replica bool

	Messages []string

	NavStyle NavStyle

	// Interaction cycling: which neighbour was used last and where the
	// player stood at the time
	LastInteractedRow    int
	LastInteractedCol    int
	InteractionPlayerRow int
	InteractionPlayerCol int

	MovementCount     int
	InteractionsCount int

	// Quit is set when the player asks to leave
	Quit bool
}

// NewGame creates an empty game bound to sched
func NewGame(sched *scheduler.Scheduler) *Game {
	return &Game{
		Scheduler: sched,
		Switches:  lightswitch.NewRegistry(),
		Messages:  make([]string, 0),

		LastInteractedRow:    -1,
		LastInteractedCol:    -1,
		InteractionPlayerRow: -1,
		InteractionPlayerCol: -1,
	}
}

// CurrentCell returns the cell the player stands on
func (g *Game) CurrentCell() *world.Cell {
	if g.Player == nil {
		return nil
	}
	return g.Player.Cell
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// APCByID looks up an APC
func (g *Game) APCByID(id string) *entities.APC {
	for _, a := range g.APCs {
		if a.ID == id {
			return a
		}
	}
	return nil
}
