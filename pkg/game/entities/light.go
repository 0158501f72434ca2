package entities

import (
	"lightstation/pkg/engine/world"
)

// LightSwitchData is what a switch sends to the lights it reaches
type LightSwitchData struct {
	State       bool
	SwitchID    string
	APC         *APC
	SelfPowered bool
}

// LightStateReceiver is implemented by lights that follow a switch's on/off state
type LightStateReceiver interface {
	ReceiveLightState(data LightSwitchData)
}

// EmergencyStateReceiver is implemented by lights that track the power source
// behind a switch so they can take over when it fails
type EmergencyStateReceiver interface {
	ReceiveEmergencyState(data LightSwitchData)
}

// LightRadius is how far (in tiles) a powered light illuminates
const LightRadius = 3

// Light is an ordinary ceiling light
type Light struct {
	ID       string
	Position world.Vec2
	On       bool
	SwitchID string
	APC      *APC
}

// NewLight creates a light that starts on, as fitted
func NewLight(id string, pos world.Vec2) *Light {
	return &Light{ID: id, Position: pos, On: true}
}

// ReceiveLightState follows the switch
func (l *Light) ReceiveLightState(data LightSwitchData) {
	l.On = data.State
	l.SwitchID = data.SwitchID
	l.APC = data.APC
}

// Emitting returns true if the light is switched on and its power source (if known) has voltage
func (l *Light) Emitting() bool {
	if !l.On {
		return false
	}
	return l.APC == nil || l.APC.Powered()
}

// EmergencyLight stays dark while mains power is present and lights up when
// the APC behind its switch loses voltage
type EmergencyLight struct {
	ID          string
	Position    world.Vec2
	SwitchID    string
	APC         *APC
	SelfPowered bool
}

// NewEmergencyLight creates an emergency light with no power source yet
func NewEmergencyLight(id string, pos world.Vec2) *EmergencyLight {
	return &EmergencyLight{ID: id, Position: pos}
}

// ReceiveEmergencyState records the switch's power source
func (e *EmergencyLight) ReceiveEmergencyState(data LightSwitchData) {
	e.SwitchID = data.SwitchID
	e.APC = data.APC
	e.SelfPowered = data.SelfPowered
}

// Emitting returns true when the emergency light should be on
func (e *EmergencyLight) Emitting() bool {
	if e.APC == nil || e.SelfPowered {
		return false
	}
	return !e.APC.Powered()
}
