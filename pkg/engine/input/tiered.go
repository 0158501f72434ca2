package input

import (
	"fmt"
	"sort"
	"time"
)

// Device is where a key press came from
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DeviceTerminal
)

// Action is what the player wants done at the station
type Action int

const (
	ActionNone Action = iota

	ActionMoveNorth
	ActionMoveSouth
	ActionMoveWest
	ActionMoveEast

	ActionHint
	ActionQuit
	ActionAction   // confirm
	ActionInteract // press a switch, trip a breaker or work a door
	ActionZoomIn
	ActionZoomOut
)

// Intent is the player's request once bindings are applied
type Intent struct {
	Action Action
}

// RawInput is a key as the device reports it ("arrow_up", "e", "gamepad_a")
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is a RawInput after repeat suppression. Both backends
// already debounce, so this only drops the timestamp.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{Device: raw.Device, Code: raw.Code}
}

// bindings maps key codes to actions. Several codes may share an action.
var bindings = map[string]Action{
	"arrow_up":    ActionMoveNorth,
	"north":       ActionMoveNorth,
	"n":           ActionMoveNorth,
	"k":           ActionMoveNorth,
	"arrow_down":  ActionMoveSouth,
	"south":       ActionMoveSouth,
	"s":           ActionMoveSouth,
	"j":           ActionMoveSouth,
	"arrow_left":  ActionMoveWest,
	"west":        ActionMoveWest,
	"w":           ActionMoveWest,
	"h":           ActionMoveWest,
	"arrow_right": ActionMoveEast,
	"east":        ActionMoveEast,
	"l":           ActionMoveEast,

	"?":    ActionHint,
	"hint": ActionHint,

	"quit":      ActionQuit,
	"q":         ActionQuit,
	"escape":    ActionQuit,
	"gamepad_b": ActionQuit,

	"gamepad_dpad_up":    ActionMoveNorth,
	"gamepad_dpad_down":  ActionMoveSouth,
	"gamepad_dpad_left":  ActionMoveWest,
	"gamepad_dpad_right": ActionMoveEast,

	"e":         ActionInteract,
	"enter":     ActionInteract,
	"gamepad_a": ActionInteract,

	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,

	"action": ActionAction,
}

// reserved codes always keep their default action
var reserved = map[string]bool{
	"arrow_up":    true,
	"arrow_down":  true,
	"arrow_left":  true,
	"arrow_right": true,
	"e":           true,
	"enter":       true,
	"gamepad_a":   true,
}

// actionNames are the names used in the keys section of the config
var actionNames = map[Action]string{
	ActionMoveNorth: "move_north",
	ActionMoveSouth: "move_south",
	ActionMoveWest:  "move_west",
	ActionMoveEast:  "move_east",
	ActionHint:      "hint",
	ActionQuit:      "quit",
	ActionAction:    "action",
	ActionInteract:  "interact",
	ActionZoomIn:    "zoom_in",
	ActionZoomOut:   "zoom_out",
}

// MapToIntent applies the current bindings to a debounced input
func MapToIntent(ev DebouncedInput) Intent {
	return Intent{Action: bindings[ev.Code]}
}

// ActionName returns the config name of an action, or "none"
func ActionName(a Action) string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// ParseAction looks an action up by its config name
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Rebind makes code the only rebindable key for action. Reserved codes
// and the interact/confirm actions keep their defaults.
func Rebind(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] || a == ActionAction || a == ActionInteract {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}

// ApplyKeyBindings rebinds every action named in keys (action name to key
// code). Must run before any input is read.
func ApplyKeyBindings(keys map[string]string) error {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := ParseAction(name)
		if !ok {
			return fmt.Errorf("unknown action %q", name)
		}
		Rebind(action, keys[name])
	}
	return nil
}
