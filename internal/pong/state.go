package pong

import "fmt"

// Side identifies a paddle or a scoring player. SideNone is the zero value and
// stands for "no side" (no winner yet, nobody scored this tick).
type Side uint8

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Phase is the top-level session mode.
type Phase uint8

const (
	PhaseStartScreen Phase = iota
	PhasePlaying
)

func (p Phase) String() string {
	if p == PhasePlaying {
		return "playing"
	}
	return "start_screen"
}

// Score is the (left, right) point pair.
type Score struct {
	Left, Right int
}

// Of returns the points held by side.
func (s Score) Of(side Side) int {
	switch side {
	case SideLeft:
		return s.Left
	case SideRight:
		return s.Right
	}
	return 0
}

func (s *Score) add(side Side) {
	switch side {
	case SideLeft:
		s.Left++
	case SideRight:
		s.Right++
	}
}

func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Left, s.Right)
}

// RoundTimer accumulates playing time since the last speed escalation.
type RoundTimer struct {
	Elapsed float64
}

// PhaseChange describes a transition made by the phase state machine during a
// tick. From == To means nothing changed.
type PhaseChange struct {
	From, To Phase
	Winner   Side
}

// Changed reports whether a transition happened.
func (c PhaseChange) Changed() bool {
	return c.From != c.To
}
