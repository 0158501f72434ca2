package world

// Layer identifies a physics layer. Layers are resolved once when a station
// is configured; nothing looks them up by name at runtime.
type Layer uint8

const (
	LayerFloor Layer = iota
	LayerWalls
	LayerDoorOpen
	LayerDoorClosed
	LayerWallMounts
	LayerLighting
)

// String returns the layer's display name
func (l Layer) String() string {
	switch l {
	case LayerFloor:
		return "Floor"
	case LayerWalls:
		return "Walls"
	case LayerDoorOpen:
		return "Door Open"
	case LayerDoorClosed:
		return "Door Closed"
	case LayerWallMounts:
		return "WallMounts"
	case LayerLighting:
		return "Lighting"
	default:
		return "Unknown"
	}
}

// LayerMask is a set of layers
type LayerMask uint32

// MaskOf builds a mask from the given layers
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Has returns true if the layer is in the mask
func (m LayerMask) Has(l Layer) bool {
	return m&(1<<l) != 0
}

// Common masks
var (
	ObstacleMask = MaskOf(LayerWalls, LayerDoorOpen, LayerDoorClosed)
	LightingMask = MaskOf(LayerLighting)
	MountMask    = MaskOf(LayerWallMounts)
)

// Tag classifies bodies for tag-based filtering of query results
type Tag uint8

const (
	TagNone Tag = iota
	TagAPC
	TagLight
	TagEmergencyLight
	TagSwitch
)

// String returns the tag's display name
func (t Tag) String() string {
	switch t {
	case TagAPC:
		return "APC"
	case TagLight:
		return "Light"
	case TagEmergencyLight:
		return "EmergencyLight"
	case TagSwitch:
		return "LightSwitch"
	default:
		return "Untagged"
	}
}
