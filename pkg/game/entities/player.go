package entities

import (
	"lightstation/pkg/engine/world"
)

// ReachDistance is how far (in tiles, centre to centre) a player can touch things
const ReachDistance = 1.5

// Player is the local crew member
type Player struct {
	Name string
	Cell *world.Cell
}

// NewPlayer creates a player standing on cell
func NewPlayer(name string, cell *world.Cell) *Player {
	return &Player{Name: name, Cell: cell}
}

// Position returns the player's world position
func (p *Player) Position() world.Vec2 {
	if p.Cell == nil {
		return world.Vec2{}
	}
	return p.Cell.Center()
}

// IsInReach returns true if pos is close enough to touch
func (p *Player) IsInReach(pos world.Vec2) bool {
	if p == nil || p.Cell == nil {
		return false
	}
	return p.Position().Distance(pos) <= ReachDistance
}
