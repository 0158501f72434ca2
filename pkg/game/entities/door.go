// Package entities contains station-specific entity types.
// These are space station themed objects that extend the generic engine primitives.
package entities

import (
	"lightstation/pkg/engine/world"
)

// Door sits on a single tile and switches that tile between the open and
// closed door layers. Both layers occlude light.
type Door struct {
	Cell *world.Cell
	Open bool
}

// NewDoor creates a door on the given cell and applies its layer
func NewDoor(cell *world.Cell, open bool) *Door {
	d := &Door{Cell: cell, Open: open}
	d.apply()
	return d
}

// Toggle opens a closed door or closes an open one
func (d *Door) Toggle() {
	d.Open = !d.Open
	d.apply()
}

func (d *Door) apply() {
	if d.Cell == nil {
		return
	}
	if d.Open {
		d.Cell.Layer = world.LayerDoorOpen
	} else {
		d.Cell.Layer = world.LayerDoorClosed
	}
}

// DoorName returns the display name for this door
func (d *Door) DoorName() string {
	if d.Cell == nil {
		return "Door"
	}
	return "Door " + d.Cell.Name
}
