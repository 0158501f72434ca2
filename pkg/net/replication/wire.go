// Package replication keeps switch states in step between an authoritative
// server and its clients over websockets.
package replication

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message types
const (
	TypeState    = "state"
	TypeSnapshot = "snapshot"
	TypeToggle   = "toggle"
)

// pingPeriod must stay below readWait so idle peers answer in time
const (
	writeWait  = 5 * time.Second
	readWait   = 60 * time.Second
	pingPeriod = readWait * 9 / 10
	queueSize  = 64
)

// Message is the single wire envelope. Which fields are set depends on Type.
type Message struct {
	Type     string          `json:"type"`
	SwitchID string          `json:"switch_id,omitempty"`
	On       bool            `json:"on"`
	States   map[string]bool `json:"states,omitempty"`
}

// Authority is the server-side switch set commands are applied to.
// Called on the scheduler tick only.
type Authority interface {
	Toggle(switchID string) bool
	States() map[string]bool
}

// Replica is the client-side switch set remote states are applied to.
// Called on the scheduler tick only.
type Replica interface {
	ApplyRemote(switchID string, on bool) bool
}

// Poster hands work to the tick goroutine
type Poster interface {
	Post(fn func())
}

func decode(raw []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("decode message: %w", err)
	}
	switch m.Type {
	case TypeState, TypeToggle:
		if m.SwitchID == "" {
			return m, fmt.Errorf("%s message without switch_id", m.Type)
		}
	case TypeSnapshot:
	default:
		return m, fmt.Errorf("unknown message type %q", m.Type)
	}
	return m, nil
}
