package world

// Blocked reports whether a straight line from one position to another passes
// through a tile whose layer is in mask. The origin tile never blocks.
// Uses Bresenham's line algorithm over tile coordinates.
func (g *Grid) Blocked(from, to Vec2, mask LayerMask) bool {
	r0, c0 := from.Tile()
	r1, c1 := to.Tile()
	return !g.hasLineOfSight(r0, c0, r1, c1, mask, true)
}

// hasLineOfSight returns true if there's a clear path from (r0,c0) to (r1,c1).
// When checkTarget is false the destination tile's own layer is ignored.
func (g *Grid) hasLineOfSight(r0, c0, r1, c1 int, mask LayerMask, checkTarget bool) bool {
	dr := r1 - r0
	dc := c1 - c0

	if dr == 0 && dc == 0 {
		return true
	}

	absDr := abs(dr)
	absDc := abs(dc)

	// Bresenham: step along the longer axis
	var stepR, stepC int
	if dr > 0 {
		stepR = 1
	} else if dr < 0 {
		stepR = -1
	}
	if dc > 0 {
		stepC = 1
	} else if dc < 0 {
		stepC = -1
	}

	r, c := r0, c0

	if absDr >= absDc {
		err := 2*absDc - absDr
		for r != r1 {
			r += stepR
			if err > 0 {
				c += stepC
				err -= 2 * absDr
			}
			err += 2 * absDc

			if (checkTarget || r != r1 || c != c1) && g.blocks(r, c, mask) {
				return false
			}
		}
	} else {
		err := 2*absDr - absDc
		for c != c1 {
			c += stepC
			if err > 0 {
				r += stepR
				err -= 2 * absDc
			}
			err += 2 * absDr

			if (checkTarget || r != r1 || c != c1) && g.blocks(r, c, mask) {
				return false
			}
		}
	}

	return true
}

// blocks returns true when the tile is outside the grid or its layer is masked
func (g *Grid) blocks(row, col int, mask LayerMask) bool {
	cell := g.GetCell(row, col)
	if cell == nil {
		return true
	}
	return mask.Has(cell.Layer)
}

// CalculateFOV returns the cells visible from center within a Chebyshev radius.
// Tiles in mask block sight but are themselves visible (walls get lit).
func CalculateFOV(grid *Grid, center *Cell, radius int, mask LayerMask) []*Cell {
	if center == nil || grid == nil {
		return nil
	}

	visible := []*Cell{center}

	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			cell := grid.GetCell(center.Row+dr, center.Col+dc)
			if cell == nil {
				continue
			}
			if grid.hasLineOfSight(center.Row, center.Col, cell.Row, cell.Col, mask, false) {
				visible = append(visible, cell)
			}
		}
	}

	return visible
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
