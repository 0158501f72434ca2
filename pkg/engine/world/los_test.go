package world

import "testing"

// openGrid returns a rows x cols grid with every cell marked as floor.
func openGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g := NewGrid(rows, cols)
	g.ForEachCell(func(row, col int, cell *Cell) {
		cell.Layer = LayerFloor
	})
	g.BuildAllCellConnections()
	return g
}

func TestBlocked_ClearLine(t *testing.T) {
	g := openGrid(t, 5, 5)
	if g.Blocked(TileCenter(0, 0), TileCenter(4, 4), ObstacleMask) {
		t.Error("Blocked(open diagonal) = true, want false")
	}
}

func TestBlocked_WallInBetween(t *testing.T) {
	g := openGrid(t, 1, 5)
	g.SetLayer(0, 2, LayerWalls)
	if !g.Blocked(TileCenter(0, 0), TileCenter(0, 4), ObstacleMask) {
		t.Error("Blocked(through wall) = false, want true")
	}
}

func TestBlocked_ClosedAndOpenDoorsBlock(t *testing.T) {
	for _, layer := range []Layer{LayerDoorClosed, LayerDoorOpen} {
		t.Run(layer.String(), func(t *testing.T) {
			g := openGrid(t, 1, 3)
			g.SetLayer(0, 1, layer)
			if !g.Blocked(TileCenter(0, 0), TileCenter(0, 2), ObstacleMask) {
				t.Errorf("Blocked(through %v) = false, want true", layer)
			}
		})
	}
}

func TestBlocked_MaskIgnoresUnlistedLayers(t *testing.T) {
	g := openGrid(t, 1, 3)
	g.SetLayer(0, 1, LayerDoorOpen)
	if g.Blocked(TileCenter(0, 0), TileCenter(0, 2), MaskOf(LayerWalls)) {
		t.Error("Blocked(open door, walls-only mask) = true, want false")
	}
}

func TestBlocked_OriginTileNeverBlocks(t *testing.T) {
	g := openGrid(t, 1, 3)
	g.SetLayer(0, 0, LayerWalls)
	if g.Blocked(TileCenter(0, 0), TileCenter(0, 2), ObstacleMask) {
		t.Error("Blocked(from inside wall tile) = true, want false")
	}
}

func TestBlocked_SameTile(t *testing.T) {
	g := openGrid(t, 1, 1)
	if g.Blocked(Vec2{X: 0.2, Y: 0.2}, Vec2{X: 0.8, Y: 0.8}, ObstacleMask) {
		t.Error("Blocked(same tile) = true, want false")
	}
}

func TestCalculateFOV_WallsVisibleButOpaque(t *testing.T) {
	// 1x5: floor, floor, wall, floor, floor. From (0,0) radius 4.
	g := openGrid(t, 1, 5)
	g.SetLayer(0, 2, LayerWalls)
	visible := CalculateFOV(g, g.GetCell(0, 0), 4, ObstacleMask)

	seen := map[int]bool{}
	for _, c := range visible {
		seen[c.Col] = true
	}
	for col, want := range map[int]bool{0: true, 1: true, 2: true, 3: false, 4: false} {
		if seen[col] != want {
			t.Errorf("visible[col %d] = %v, want %v", col, seen[col], want)
		}
	}
}

func TestCalculateFOV_NilInputs(t *testing.T) {
	if got := CalculateFOV(nil, nil, 3, ObstacleMask); got != nil {
		t.Errorf("CalculateFOV(nil, nil) = %v, want nil", got)
	}
}
