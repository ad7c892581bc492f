// Package board models the scoreboard and applies control frames to it.
package board

// State is the scoreboard model. Scores and timer fields hold the raw
// wire bytes without clamping, exactly as received; clamping to the
// displayable range happens when a Buffer is built from the state.
type State struct {
	TimerMinutes  byte
	TimerSeconds  byte
	RedScore      byte
	BlueScore     byte
	MatchActive   bool
	RedIndicator  bool
	BlueIndicator bool
}

// DefaultState is the power-on state: 2:30 on the clock, scores 0-0,
// match inactive, indicators off.
func DefaultState() State {
	return State{TimerMinutes: 2, TimerSeconds: 30}
}

// RedLamp is the physical level of the red indicator lamp. Lamps are
// gated by MatchActive: an indicator flag set while no match is
// active keeps its lamp dark.
func (s State) RedLamp() bool {
	return s.MatchActive && s.RedIndicator
}

// BlueLamp is the physical level of the blue indicator lamp.
func (s State) BlueLamp() bool {
	return s.MatchActive && s.BlueIndicator
}
