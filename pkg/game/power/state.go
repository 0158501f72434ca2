// Package power tracks the voltage-driven on/off state of a light switch.
package power

// State is a switch's on/off flag plus the power-cut latch.
// A power cut turns the switch off; only voltage strictly above the
// threshold restores it. Voltage exactly at the threshold changes nothing.
type State struct {
	Threshold float64
	On        bool
	PowerCut  bool
}

// New creates a state with the given shutoff threshold and initial on flag
func New(threshold float64, on bool) State {
	return State{Threshold: threshold, On: on}
}

// ApplyVoltage feeds a voltage reading and returns true if On changed
func (s *State) ApplyVoltage(v float64) bool {
	if v < s.Threshold && s.On {
		s.On = false
		s.PowerCut = true
		return true
	}
	if s.PowerCut && v > s.Threshold {
		s.On = true
		s.PowerCut = false
		return true
	}
	return false
}

// Set forces the on flag and returns true if it changed. The power-cut latch is untouched.
func (s *State) Set(on bool) bool {
	if s.On == on {
		return false
	}
	s.On = on
	return true
}
