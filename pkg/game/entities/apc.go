package entities

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"lightstation/pkg/engine/world"
)

// APC is an area power controller: the power source light switches draw from.
// One APC feeds many switches.
type APC struct {
	ID       string
	Position world.Vec2
	Facing   world.Direction
	Voltage  float64
	// Rated is the voltage restored when the breaker closes
	Rated float64

	// ConnectedSwitchesAndLights maps a switch ID to the lights it reached
	// while this APC powered it.
	ConnectedSwitchesAndLights map[string]mapset.Set[LightStateReceiver]
}

// NewAPC creates an APC at the given wall position
func NewAPC(id string, pos world.Vec2, facing world.Direction, voltage float64) *APC {
	return &APC{
		ID:                         id,
		Position:                   pos,
		Facing:                     facing,
		Voltage:                    voltage,
		Rated:                      voltage,
		ConnectedSwitchesAndLights: make(map[string]mapset.Set[LightStateReceiver]),
	}
}

// RegisterSwitch starts a fresh, empty light set for the switch
func (a *APC) RegisterSwitch(switchID string) {
	a.ConnectedSwitchesAndLights[switchID] = mapset.New[LightStateReceiver]()
}

// UnregisterSwitch forgets the switch and the lights it drove
func (a *APC) UnregisterSwitch(switchID string) {
	delete(a.ConnectedSwitchesAndLights, switchID)
}

// ConnectLight records that the switch drives the light. Registers the switch if needed.
func (a *APC) ConnectLight(switchID string, light LightStateReceiver) {
	set, ok := a.ConnectedSwitchesAndLights[switchID]
	if !ok {
		set = mapset.New[LightStateReceiver]()
		a.ConnectedSwitchesAndLights[switchID] = set
	}
	set.Put(light)
}

// HasSwitch returns true if the switch is registered with this APC
func (a *APC) HasSwitch(switchID string) bool {
	_, ok := a.ConnectedSwitchesAndLights[switchID]
	return ok
}

// LightCount returns how many lights the switch drives through this APC
func (a *APC) LightCount(switchID string) int {
	set, ok := a.ConnectedSwitchesAndLights[switchID]
	if !ok {
		return 0
	}
	return set.Size()
}

// SwitchIDs returns the registered switch IDs in sorted order
func (a *APC) SwitchIDs() []string {
	ids := make([]string, 0, len(a.ConnectedSwitchesAndLights))
	for id := range a.ConnectedSwitchesAndLights {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetVoltage sets the supplied voltage, clamped at zero
func (a *APC) SetVoltage(v float64) {
	if v < 0 {
		v = 0
	}
	a.Voltage = v
}

// Powered returns true if the APC supplies any voltage
func (a *APC) Powered() bool {
	return a.Voltage > 0
}

// ToggleBreaker cuts the supply, or restores it to the rated voltage
func (a *APC) ToggleBreaker() {
	if a.Powered() {
		a.SetVoltage(0)
		return
	}
	a.SetVoltage(a.Rated)
}
