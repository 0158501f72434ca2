package reach

import (
	"fmt"
	"testing"

	"lightstation/pkg/engine/spatial"
	"lightstation/pkg/engine/world"
)

func roomIndex(rows, cols int) (*world.Grid, *spatial.Index) {
	g := world.NewGrid(rows, cols)
	g.ForEachCell(func(row, col int, cell *world.Cell) {
		cell.Layer = world.LayerFloor
	})
	return g, spatial.NewIndex(g)
}

func addLight(ix *spatial.Index, id string, row, col int) *spatial.Body {
	b := &spatial.Body{ID: id, Position: world.TileCenter(row, col), Layer: world.LayerLighting, Tag: world.TagLight}
	ix.Add(b)
	return b
}

func TestFindTargets_SkipsOccluded(t *testing.T) {
	g, ix := roomIndex(1, 7)
	g.SetLayer(0, 3, world.LayerWalls)
	visible := addLight(ix, "visible", 0, 2)
	addLight(ix, "hidden", 0, 5)

	q := NewQuery(ix, world.LightingMask)
	got := q.FindTargets(world.TileCenter(0, 0), 10, world.ObstacleMask)
	if len(got) != 1 || got[0] != visible {
		t.Errorf("FindTargets = %v, want [visible]", got)
	}
}

func TestFindTargets_SkipsOutOfRadius(t *testing.T) {
	_, ix := roomIndex(1, 20)
	addLight(ix, "far", 0, 15)
	q := NewQuery(ix, world.LightingMask)
	if got := q.FindTargets(world.TileCenter(0, 0), 10, world.ObstacleMask); len(got) != 0 {
		t.Errorf("FindTargets = %v, want none", got)
	}
}

func TestFindTargets_NeverMoreThanCapacity(t *testing.T) {
	_, ix := roomIndex(10, 10)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			addLight(ix, fmt.Sprintf("l%d_%d", row, col), row, col)
		}
	}
	q := NewQuery(ix, world.LightingMask)
	got := q.FindTargets(world.TileCenter(5, 5), 20, world.ObstacleMask)
	if len(got) != MaxTargets {
		t.Errorf("len(FindTargets) = %d, want %d", len(got), MaxTargets)
	}
}

func TestFindTargets_IgnoresOtherLayers(t *testing.T) {
	_, ix := roomIndex(1, 3)
	ix.Add(&spatial.Body{ID: "apc", Position: world.TileCenter(0, 1), Layer: world.LayerWallMounts, Tag: world.TagAPC})
	q := NewQuery(ix, world.LightingMask)
	if got := q.FindTargets(world.TileCenter(0, 0), 5, world.ObstacleMask); len(got) != 0 {
		t.Errorf("FindTargets = %v, want none", got)
	}
}

func TestFindTargets_DoesNotAllocate(t *testing.T) {
	_, ix := roomIndex(5, 5)
	addLight(ix, "a", 1, 1)
	addLight(ix, "b", 3, 3)
	q := NewQuery(ix, world.LightingMask)
	origin := world.TileCenter(2, 2)
	allocs := testing.AllocsPerRun(100, func() {
		q.FindTargets(origin, 5, world.ObstacleMask)
	})
	if allocs != 0 {
		t.Errorf("FindTargets allocs = %v, want 0", allocs)
	}
}

func TestFindTargets_ResultsDoNotLeakBetweenCalls(t *testing.T) {
	g, ix := roomIndex(1, 5)
	addLight(ix, "a", 0, 1)
	addLight(ix, "b", 0, 2)
	q := NewQuery(ix, world.LightingMask)
	if got := q.FindTargets(world.TileCenter(0, 0), 5, world.ObstacleMask); len(got) != 2 {
		t.Fatalf("first call len = %d, want 2", len(got))
	}
	g.SetLayer(0, 1, world.LayerDoorClosed)
	got := q.FindTargets(world.TileCenter(0, 0), 5, world.ObstacleMask)
	if len(got) != 0 {
		t.Errorf("second call = %v, want none behind the door", got)
	}
}
