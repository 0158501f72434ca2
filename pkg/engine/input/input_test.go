package input

import (
	"strings"
	"testing"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\x1b[A", "arrow_up"},
		{"\x1bOB", "arrow_down"},
		{"\x1b[C", "arrow_right"},
		{"\x1b[D", "arrow_left"},
		{"\x1b[Z", ""},
		{"\x03", "quit"},
		{"\r", "enter"},
		{"e", "e"},
		{"\x7f", ""},
	}
	for _, tt := range tests {
		got, err := DecodeKey(strings.NewReader(tt.in))
		if err != nil {
			t.Errorf("DecodeKey(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DecodeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeKey_EmptyInput(t *testing.T) {
	if _, err := DecodeKey(strings.NewReader("")); err == nil {
		t.Error("DecodeKey on empty input should return an error")
	}
}

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"arrow_up", ActionMoveNorth},
		{"k", ActionMoveNorth},
		{"e", ActionInteract},
		{"enter", ActionInteract},
		{"quit", ActionQuit},
		{"?", ActionHint},
		{"z", ActionNone},
	}
	for _, tt := range tests {
		got := MapToIntent(NewDebouncedInput(RawInput{Device: DeviceTerminal, Code: tt.code}))
		if got.Action != tt.want {
			t.Errorf("MapToIntent(%q) = %v, want %v", tt.code, ActionName(got.Action), ActionName(tt.want))
		}
	}
}

// keepBindings restores the default bindings when the test ends
func keepBindings(t *testing.T) {
	t.Helper()
	saved := make(map[string]Action, len(bindings))
	for c, a := range bindings {
		saved[c] = a
	}
	t.Cleanup(func() { bindings = saved })
}

func TestRebind_KeepsReservedKeys(t *testing.T) {
	keepBindings(t)
	Rebind(ActionHint, "f1")

	if MapToIntent(DebouncedInput{Code: "f1"}).Action != ActionHint {
		t.Error("f1 not bound to hint")
	}
	if MapToIntent(DebouncedInput{Code: "?"}).Action != ActionNone {
		t.Error("? still bound after rebinding hint")
	}

	Rebind(ActionInteract, "x")
	if MapToIntent(DebouncedInput{Code: "e"}).Action != ActionInteract {
		t.Error("reserved e binding was removed")
	}
}

func TestApplyKeyBindings(t *testing.T) {
	keepBindings(t)

	if err := ApplyKeyBindings(map[string]string{"quit": "x"}); err != nil {
		t.Fatalf("ApplyKeyBindings: %v", err)
	}
	if got := MapToIntent(DebouncedInput{Code: "x"}).Action; got != ActionQuit {
		t.Errorf("x = %v, want %v", ActionName(got), ActionName(ActionQuit))
	}
	if got := MapToIntent(DebouncedInput{Code: "q"}).Action; got != ActionNone {
		t.Errorf("q = %v after rebinding quit, want none", ActionName(got))
	}

	if err := ApplyKeyBindings(map[string]string{"teleport": "t"}); err == nil {
		t.Error("ApplyKeyBindings accepted an unknown action")
	}
}

func TestParseAction(t *testing.T) {
	for a := range actionNames {
		got, ok := ParseAction(ActionName(a))
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", ActionName(a), got, ok)
		}
	}
	if _, ok := ParseAction("none"); ok {
		t.Error("ParseAction(none) should fail")
	}
}
