package entities

import (
	"testing"

	"lightstation/pkg/engine/world"
)

func TestAPC_RegisterSwitchResetsLights(t *testing.T) {
	apc := NewAPC("apc", world.TileCenter(0, 0), world.South, 100)
	light := NewLight("l1", world.TileCenter(1, 1))
	apc.ConnectLight("s1", light)
	apc.ConnectLight("s1", light)
	if got := apc.LightCount("s1"); got != 1 {
		t.Fatalf("LightCount after duplicate connect = %d, want 1", got)
	}
	apc.RegisterSwitch("s1")
	if got := apc.LightCount("s1"); got != 0 {
		t.Errorf("LightCount after RegisterSwitch = %d, want 0", got)
	}
	if !apc.HasSwitch("s1") {
		t.Error("HasSwitch(s1) = false, want true")
	}
}

func TestAPC_SwitchIDsSorted(t *testing.T) {
	apc := NewAPC("apc", world.Vec2{}, world.North, 0)
	apc.RegisterSwitch("b")
	apc.RegisterSwitch("a")
	ids := apc.SwitchIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("SwitchIDs() = %v, want [a b]", ids)
	}
}

func TestAPC_SetVoltageClampsNegative(t *testing.T) {
	apc := NewAPC("apc", world.Vec2{}, world.North, 10)
	apc.SetVoltage(-5)
	if apc.Voltage != 0 || apc.Powered() {
		t.Errorf("Voltage = %v, Powered = %v, want 0 and false", apc.Voltage, apc.Powered())
	}
}

func TestAPC_ToggleBreaker(t *testing.T) {
	apc := NewAPC("apc", world.Vec2{}, world.North, 240)
	apc.ToggleBreaker()
	if apc.Voltage != 0 {
		t.Errorf("Voltage after cut = %v, want 0", apc.Voltage)
	}
	apc.ToggleBreaker()
	if apc.Voltage != 240 {
		t.Errorf("Voltage after restore = %v, want 240", apc.Voltage)
	}
}

func TestLight_EmittingFollowsSwitchAndAPC(t *testing.T) {
	apc := NewAPC("apc", world.Vec2{}, world.North, 100)
	l := NewLight("l", world.Vec2{})
	if !l.Emitting() {
		t.Fatal("new light not emitting")
	}
	l.ReceiveLightState(LightSwitchData{State: false, SwitchID: "s", APC: apc})
	if l.Emitting() {
		t.Error("light emitting after off state")
	}
	l.ReceiveLightState(LightSwitchData{State: true, SwitchID: "s", APC: apc})
	apc.SetVoltage(0)
	if l.Emitting() {
		t.Error("light emitting with dead APC")
	}
}

func TestEmergencyLight_OnlyWhenAPCDead(t *testing.T) {
	apc := NewAPC("apc", world.Vec2{}, world.North, 100)
	e := NewEmergencyLight("e", world.Vec2{})
	if e.Emitting() {
		t.Error("emergency light emitting with no APC")
	}
	e.ReceiveEmergencyState(LightSwitchData{SwitchID: "s", APC: apc})
	if e.Emitting() {
		t.Error("emergency light emitting with mains power")
	}
	apc.SetVoltage(0)
	if !e.Emitting() {
		t.Error("emergency light dark after mains failure")
	}
	e.ReceiveEmergencyState(LightSwitchData{SwitchID: "s", APC: apc, SelfPowered: true})
	if e.Emitting() {
		t.Error("emergency light emitting for self-powered switch")
	}
}

func TestDoor_ToggleFlipsLayer(t *testing.T) {
	cell := world.NewCell(0, 0, "0:0")
	d := NewDoor(cell, false)
	if cell.Layer != world.LayerDoorClosed {
		t.Fatalf("layer = %v, want Door Closed", cell.Layer)
	}
	d.Toggle()
	if !d.Open || cell.Layer != world.LayerDoorOpen {
		t.Errorf("after Toggle open=%v layer=%v, want true and Door Open", d.Open, cell.Layer)
	}
}

func TestPlayer_IsInReach(t *testing.T) {
	p := NewPlayer("crew", world.NewCell(2, 2, "2:2"))
	if !p.IsInReach(world.TileCenter(1, 1)) {
		t.Error("diagonal neighbour out of reach")
	}
	if p.IsInReach(world.TileCenter(2, 4)) {
		t.Error("tile two away in reach")
	}
	var nobody *Player
	if nobody.IsInReach(world.Vec2{}) {
		t.Error("nil player in reach")
	}
}
