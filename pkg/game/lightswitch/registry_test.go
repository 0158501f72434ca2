package lightswitch

import (
	"testing"

	"lightstation/pkg/engine/world"
)

func newRegistryFixture(t *testing.T) (*fixture, *Registry) {
	t.Helper()
	f := newFixture(t)
	r := NewRegistry()
	r.Add(f.controller())
	second := NewSwitch("S2", world.TileCenter(5, 0), world.East)
	r.Add(NewController(second, Deps{Space: f.space, Rooms: f.grid, Scheduler: f.sched}))
	return f, r
}

func TestRegistry_AddRejectsDuplicates(t *testing.T) {
	f, r := newRegistryFixture(t)
	if r.Add(NewController(NewSwitch("S1", world.TileCenter(2, 0), world.East), Deps{Space: f.space, Scheduler: f.sched})) {
		t.Error("Add should reject a duplicate ID")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_AllSorted(t *testing.T) {
	_, r := newRegistryFixture(t)
	all := r.All()
	if len(all) != 2 || all[0].ID() != "S1" || all[1].ID() != "S2" {
		t.Errorf("All() order wrong: %v", all)
	}
}

func TestRegistry_ToggleAndApplyRemote(t *testing.T) {
	_, r := newRegistryFixture(t)
	r.StartAll()

	if r.Toggle("missing") {
		t.Error("Toggle(missing) = true, want false")
	}
	if !r.Toggle("S1") {
		t.Error("Toggle(S1) = false, want true")
	}
	if r.ApplyRemote("missing", true) {
		t.Error("ApplyRemote(missing) = true, want false")
	}
	r.ApplyRemote("S2", false)

	states := r.States()
	if states["S1"] || states["S2"] {
		t.Errorf("States() = %v, want both off", states)
	}
}

func TestRegistry_RestoreBeforeStart(t *testing.T) {
	f, r := newRegistryFixture(t)
	n := r.Restore(map[string]bool{"S1": false, "S2": false, "ghost": true})
	if n != 2 {
		t.Errorf("Restore() = %d, want 2", n)
	}
	r.StartAll()

	c, _ := r.Get("S1")
	if c.IsOn() {
		t.Error("S1 should start off after restore")
	}
	if f.lights[0].On {
		t.Error("restored state should reach the lights on start")
	}
	if len(f.changes) != 0 {
		t.Errorf("changes = %v, want none for a restore", f.changes)
	}
}

func TestRegistry_AddListenerReachesEverySwitch(t *testing.T) {
	_, r := newRegistryFixture(t)
	var got []string
	r.AddListener(ListenerFunc(func(change StateChange) {
		got = append(got, change.SwitchID)
	}))
	r.StartAll()
	r.Toggle("S1")
	r.Toggle("S2")
	if len(got) != 2 || got[0] != "S1" || got[1] != "S2" {
		t.Errorf("listener saw %v, want [S1 S2]", got)
	}
}
