// Package lightswitch implements the wall-mounted light switch: power source
// discovery, interaction cooldown, power-cut handling and propagation of its
// on/off state to the lights it can reach.
package lightswitch

import (
	"time"

	"lightstation/pkg/engine/spatial"
	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/entities"
	"lightstation/pkg/game/power"
	"lightstation/pkg/game/reach"
)

// Defaults for a freshly mounted switch
const (
	DefaultRadius         = 10.0
	DefaultShutoffVoltage = 50.0
	CooldownDelay         = 200 * time.Millisecond
	DeferredSyncDelay     = 3 * time.Second
)

// Switch is the data the simulation entity owns
type Switch struct {
	ID       string
	Position world.Vec2
	// Facing points from the wall into the room the switch serves.
	Facing      world.Direction
	Radius      float64
	SelfPowered bool
	APC         *entities.APC
	Power       power.State
}

// NewSwitch creates a switch that starts on, with default radius and threshold
func NewSwitch(id string, pos world.Vec2, facing world.Direction) *Switch {
	return &Switch{
		ID:       id,
		Position: pos,
		Facing:   facing,
		Radius:   DefaultRadius,
		Power:    power.New(DefaultShutoffVoltage, true),
	}
}

// IsOn returns the switch's on/off flag
func (s *Switch) IsOn() bool {
	return s.Power.On
}

// CastPos is where reach queries start: one unit from the mount into the room
func (s *Switch) CastPos() world.Vec2 {
	return s.Position.Add(s.Facing.Vector())
}

// Phase is the interaction state
type Phase int

const (
	Idle Phase = iota
	CoolingDown
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case CoolingDown:
		return "CoolingDown"
	default:
		return "Unknown"
	}
}

// Actor is whoever presses the switch
type Actor interface {
	IsInReach(pos world.Vec2) bool
}

// StateChange is published whenever a switch's on/off flag changes locally
type StateChange struct {
	SwitchID string
	On       bool
	// Power is set when the power network rather than a press caused the change
	Power bool
}

// Listener observes local state changes (replication, journaling)
type Listener interface {
	SwitchChanged(change StateChange)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(change StateChange)

// SwitchChanged calls f
func (f ListenerFunc) SwitchChanged(change StateChange) {
	f(change)
}

// ToggleRequester forwards a toggle to whoever has authority over the switch
type ToggleRequester interface {
	RequestToggle(switchID string)
}

// Presenter renders the switch and plays its click
type Presenter interface {
	ShowSwitch(switchID string, on bool)
	PlayClick(switchID string)
}

// RoomResolver maps a tile to a room number, world.UnknownRoom if none
type RoomResolver interface {
	RoomNumberAt(row, col int) int
}

// Space is the spatial service the controller queries
type Space interface {
	reach.Space
	OverlapCircleAll(origin world.Vec2, radius float64, mask world.LayerMask) []*spatial.Body
}

// Masks groups the layer masks a controller uses. Resolved once at setup.
type Masks struct {
	Obstacles world.LayerMask
	Lighting  world.LayerMask
	Mounts    world.LayerMask
}

// DefaultMasks matches the station's standard layers
func DefaultMasks() Masks {
	return Masks{
		Obstacles: world.ObstacleMask,
		Lighting:  world.LightingMask,
		Mounts:    world.MountMask,
	}
}

// Timing holds the controller's delays
type Timing struct {
	Cooldown     time.Duration
	DeferredSync time.Duration
}

// DefaultTiming returns the standard delays
func DefaultTiming() Timing {
	return Timing{Cooldown: CooldownDelay, DeferredSync: DeferredSyncDelay}
}
