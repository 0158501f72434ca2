package spatial

import (
	"testing"

	"lightstation/pkg/engine/world"
)

func floorGrid(rows, cols int) *world.Grid {
	g := world.NewGrid(rows, cols)
	g.ForEachCell(func(row, col int, cell *world.Cell) {
		cell.Layer = world.LayerFloor
	})
	return g
}

func lightAt(id string, row, col int) *Body {
	return &Body{ID: id, Position: world.TileCenter(row, col), Layer: world.LayerLighting, Tag: world.TagLight}
}

func TestIndex_AddOutOfBounds(t *testing.T) {
	ix := NewIndex(floorGrid(2, 2))
	if ix.Add(lightAt("x", 5, 5)) {
		t.Error("Add(out of bounds) = true, want false")
	}
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ix.Len())
	}
}

func TestIndex_AddTwiceRejected(t *testing.T) {
	ix := NewIndex(floorGrid(2, 2))
	b := lightAt("a", 0, 0)
	ix.Add(b)
	if ix.Add(b) {
		t.Error("second Add = true, want false")
	}
}

func TestOverlapCircle_RadiusAndMask(t *testing.T) {
	ix := NewIndex(floorGrid(1, 10))
	near := lightAt("near", 0, 2)
	far := lightAt("far", 0, 9)
	mount := &Body{ID: "apc", Position: world.TileCenter(0, 1), Layer: world.LayerWallMounts, Tag: world.TagAPC}
	ix.Add(near)
	ix.Add(far)
	ix.Add(mount)

	out := make([]*Body, 8)
	n := ix.OverlapCircle(world.TileCenter(0, 0), 3, world.LightingMask, out)
	if n != 1 || out[0] != near {
		t.Errorf("OverlapCircle = %d %v, want [near]", n, out[:n])
	}
}

func TestOverlapCircle_RespectsCapacity(t *testing.T) {
	ix := NewIndex(floorGrid(1, 1))
	for i := 0; i < 5; i++ {
		ix.Add(lightAt("l", 0, 0))
	}
	out := make([]*Body, 3)
	if n := ix.OverlapCircle(world.TileCenter(0, 0), 1, world.LightingMask, out); n != 3 {
		t.Errorf("OverlapCircle with cap 3 = %d, want 3", n)
	}
}

func TestOverlapCircle_RowMajorDiscoveryOrder(t *testing.T) {
	ix := NewIndex(floorGrid(3, 3))
	b := lightAt("b", 2, 0)
	a := lightAt("a", 0, 2)
	ix.Add(b)
	ix.Add(a)
	out := make([]*Body, 4)
	n := ix.OverlapCircle(world.TileCenter(1, 1), 2, world.LightingMask, out)
	if n != 2 || out[0] != a || out[1] != b {
		t.Errorf("order = %v, want [a b]", out[:n])
	}
}

func TestIndex_RemoveAndMove(t *testing.T) {
	ix := NewIndex(floorGrid(1, 5))
	b := lightAt("a", 0, 0)
	ix.Add(b)
	if !ix.Move(b, world.TileCenter(0, 4)) {
		t.Fatal("Move = false, want true")
	}
	out := make([]*Body, 2)
	if n := ix.OverlapCircle(world.TileCenter(0, 0), 1, world.LightingMask, out); n != 0 {
		t.Errorf("found %d bodies at old position, want 0", n)
	}
	ix.Remove(b)
	if ix.Len() != 0 {
		t.Errorf("Len() after Remove = %d, want 0", ix.Len())
	}
}

func TestRaycast_UsesGridLayers(t *testing.T) {
	g := floorGrid(1, 3)
	g.SetLayer(0, 1, world.LayerWalls)
	ix := NewIndex(g)
	if !ix.Raycast(world.TileCenter(0, 0), world.TileCenter(0, 2), world.ObstacleMask) {
		t.Error("Raycast through wall = false, want true")
	}
}
