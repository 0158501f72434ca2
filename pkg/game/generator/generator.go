// Package generator produces procedural station layouts in the ASCII format
// setup.LoadStation reads.
package generator

// LayoutGenerator is an interface for map generation algorithms
type LayoutGenerator interface {
	Generate(rows, cols int) string
	Name() string
}

// Layout tiles written by generators
const (
	tileWall           = '#'
	tileFloor          = '.'
	tileDoorOpen       = 'd'
	tileLight          = 'L'
	tileEmergencyLight = 'E'
	tileAPC            = 'A'
	tileSwitch         = 'S'
	tileSelfPowered    = 'P'
	tileStart          = '@'
)

// floorLike reports whether a tile is floor for the purpose of mount facing
func floorLike(r rune) bool {
	switch r {
	case tileFloor, tileLight, tileEmergencyLight, tileStart:
		return true
	}
	return false
}

// walkable reports whether the player can stand on the tile
func walkable(r rune) bool {
	return floorLike(r) || r == tileDoorOpen
}
