package setup

import (
	"strings"
	"testing"
	"time"

	"lightstation/pkg/engine/scheduler"
	"lightstation/pkg/engine/world"
	gameworld "lightstation/pkg/game/world"
)

const twoRooms = `
##########
#L...#..L#
S..@.D...#
#..E.#...P
###A######
`

func newScheduler() *scheduler.Scheduler {
	return scheduler.New(scheduler.NewManualClock(time.Unix(0, 0)))
}

func TestLoadStation_TwoRooms(t *testing.T) {
	g, err := LoadStation(twoRooms, DefaultOptions(), newScheduler())
	if err != nil {
		t.Fatalf("LoadStation: %v", err)
	}

	if g.Grid.Rows() != 5 || g.Grid.Cols() != 10 {
		t.Errorf("grid = %dx%d, want 5x10", g.Grid.Rows(), g.Grid.Cols())
	}
	if g.Rooms != 2 {
		t.Errorf("Rooms = %d, want 2", g.Rooms)
	}
	if len(g.Lights) != 2 || len(g.EmergencyLights) != 1 || len(g.APCs) != 1 || len(g.Doors) != 1 {
		t.Errorf("entities: lights=%d emergency=%d apcs=%d doors=%d", len(g.Lights), len(g.EmergencyLights), len(g.APCs), len(g.Doors))
	}
	if g.Switches.Len() != 2 {
		t.Fatalf("Switches.Len() = %d, want 2", g.Switches.Len())
	}

	start := g.Grid.StartCell()
	if start.Row != 2 || start.Col != 3 || g.CurrentCell() != start {
		t.Errorf("start = (%d,%d), want (2,3)", start.Row, start.Col)
	}

	sw, _ := g.Switches.Get("switch-1")
	if sw.Switch().Facing != world.East || sw.Switch().SelfPowered {
		t.Errorf("switch-1 facing=%v selfPowered=%v, want East, false", sw.Switch().Facing, sw.Switch().SelfPowered)
	}
	self, _ := g.Switches.Get("switch-2")
	if self.Switch().Facing != world.West || !self.Switch().SelfPowered {
		t.Errorf("switch-2 facing=%v selfPowered=%v, want West, true", self.Switch().Facing, self.Switch().SelfPowered)
	}
	if g.APCs[0].Facing != world.North {
		t.Errorf("apc facing = %v, want North", g.APCs[0].Facing)
	}

	if !gameworld.HasDoor(g.Grid.GetCell(2, 5)) || !gameworld.HasClosedDoor(g.Grid.GetCell(2, 5)) {
		t.Error("expected a closed door at (2,5)")
	}
	if g.Grid.GetCell(2, 5).RoomNumber != world.UnknownRoom {
		t.Error("door cells belong to no room")
	}
	if g.Grid.RoomNumberAt(1, 1) == g.Grid.RoomNumberAt(1, 8) {
		t.Error("the door should separate the two rooms")
	}
}

func TestLoadStation_StartWiresSwitchesToAPC(t *testing.T) {
	g, err := LoadStation(twoRooms, DefaultOptions(), newScheduler())
	if err != nil {
		t.Fatalf("LoadStation: %v", err)
	}
	g.Switches.StartAll()

	west, _ := g.Switches.Get("switch-1")
	if west.Switch().APC != g.APCs[0] {
		t.Error("switch-1 should draw from the APC in its room")
	}
	east, _ := g.Switches.Get("switch-2")
	if east.Switch().APC != nil {
		t.Error("switch-2 has no APC in its room")
	}
	if !east.IsOn() {
		t.Error("self-powered switch-2 should stay on without an APC")
	}
	if g.Lights[1].SwitchID != "switch-2" {
		t.Errorf("light-2 bound to %q, want switch-2", g.Lights[1].SwitchID)
	}
	if g.EmergencyLights[0].APC != g.APCs[0] {
		t.Error("emergency light in room 0 should know its APC")
	}
}

func TestLoadStation_Errors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"empty", "\n\n", "empty"},
		{"no start", "###\n#.#\n###", "start"},
		{"two starts", "####\n#@@#\n####", "start"},
		{"unknown tile", "###\n#@x\n###", "unknown tile"},
		{"blind switch", "#####\n#@#S#\n#####", "does not face"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStation(tt.layout, DefaultOptions(), newScheduler())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadStation error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadStation_AppliesOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.SwitchRadius = 4
	opts.ShutoffVoltage = 30
	opts.APCVoltage = 99
	g, err := LoadStation(twoRooms, opts, newScheduler())
	if err != nil {
		t.Fatalf("LoadStation: %v", err)
	}
	sw, _ := g.Switches.Get("switch-1")
	if sw.Switch().Radius != 4 || sw.Switch().Power.Threshold != 30 {
		t.Errorf("switch radius=%v threshold=%v, want 4, 30", sw.Switch().Radius, sw.Switch().Power.Threshold)
	}
	if g.APCs[0].Voltage != 99 {
		t.Errorf("APC voltage = %v, want 99", g.APCs[0].Voltage)
	}
}

func TestAssignRoomNumbers(t *testing.T) {
	grid := world.NewGrid(3, 7)
	for _, col := range []int{1, 2, 4, 5} {
		grid.MarkAsFloor(1, col)
	}
	grid.SetLayer(1, 3, world.LayerDoorOpen)
	grid.BuildAllCellConnections()

	if n := AssignRoomNumbers(grid); n != 2 {
		t.Fatalf("AssignRoomNumbers = %d, want 2", n)
	}
	want := map[int]int{1: 0, 2: 0, 3: world.UnknownRoom, 4: 1, 5: 1}
	for col, room := range want {
		if got := grid.RoomNumberAt(1, col); got != room {
			t.Errorf("RoomNumberAt(1,%d) = %d, want %d", col, got, room)
		}
	}
	if got := len(RoomCells(grid, 1)); got != 2 {
		t.Errorf("len(RoomCells(1)) = %d, want 2", got)
	}
}

func TestFacingFloor(t *testing.T) {
	grid := world.NewGrid(3, 3)
	grid.MarkAsFloor(1, 1)
	grid.BuildAllCellConnections()

	if dir, ok := FacingFloor(grid.GetCell(0, 1)); !ok || dir != world.South {
		t.Errorf("FacingFloor(0,1) = %v, %v, want South, true", dir, ok)
	}
	if _, ok := FacingFloor(grid.GetCell(0, 0)); ok {
		t.Error("FacingFloor(0,0) should find no floor")
	}
}

func TestParseLayout_TrimsBlankEdges(t *testing.T) {
	got := ParseLayout("\r\n\n###\r\n#@#\n###\n\n")
	if len(got) != 3 || got[1] != "#@#" {
		t.Errorf("ParseLayout = %q", got)
	}
}
