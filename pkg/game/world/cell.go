// Package world provides game-specific world extensions for the station.
// It attaches switches, power controllers, lights and doors to engine cells.
package world

import (
	"lightstation/pkg/engine/world"
	"lightstation/pkg/game/entities"
	"lightstation/pkg/game/lightswitch"
)

// GameCellData holds game-specific entity references for a cell.
// This is stored in the engine Cell's GameData field.
type GameCellData struct {
	Switch         *lightswitch.Controller  // Wall switch mounted on this cell (if any)
	APC            *entities.APC            // Area power controller mounted on this cell (if any)
	Light          *entities.Light          // Ceiling light over this cell (if any)
	EmergencyLight *entities.EmergencyLight // Emergency light over this cell (if any)
	Door           *entities.Door           // Door in this cell (if any)
}

// InitGameData initializes game data for a cell if not already set
func InitGameData(cell *world.Cell) *GameCellData {
	if cell.GameData == nil {
		cell.GameData = &GameCellData{}
	}
	return cell.GameData.(*GameCellData)
}

// GetGameData retrieves game data from a cell, initializing if needed
func GetGameData(cell *world.Cell) *GameCellData {
	return InitGameData(cell)
}

// Helper functions for checking entity presence on cells

// HasSwitch returns true if this cell has a light switch
func HasSwitch(cell *world.Cell) bool {
	return GetGameData(cell).Switch != nil
}

// HasAPC returns true if this cell has an APC
func HasAPC(cell *world.Cell) bool {
	return GetGameData(cell).APC != nil
}

// HasLight returns true if this cell has a ceiling light
func HasLight(cell *world.Cell) bool {
	return GetGameData(cell).Light != nil
}

// HasEmergencyLight returns true if this cell has an emergency light
func HasEmergencyLight(cell *world.Cell) bool {
	return GetGameData(cell).EmergencyLight != nil
}

// HasDoor returns true if this cell contains a door
func HasDoor(cell *world.Cell) bool {
	return GetGameData(cell).Door != nil
}

// HasClosedDoor returns true if this cell has a closed door
func HasClosedDoor(cell *world.Cell) bool {
	data := GetGameData(cell)
	return data.Door != nil && !data.Door.Open
}

// HasOpenDoor returns true if this cell has an open door
func HasOpenDoor(cell *world.Cell) bool {
	data := GetGameData(cell)
	return data.Door != nil && data.Door.Open
}

// IsEmitting returns true if a light on this cell is currently giving off light
func IsEmitting(cell *world.Cell) bool {
	data := GetGameData(cell)
	if data.Light != nil && data.Light.Emitting() {
		return true
	}
	return data.EmergencyLight != nil && data.EmergencyLight.Emitting()
}
