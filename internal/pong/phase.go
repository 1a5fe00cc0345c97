package pong

import "github.com/google/uuid"

// checkWin ends the match once either side reaches the win score.
func (s *Sim) checkWin() PhaseChange {
	winner := SideNone
	if s.score.Left >= s.rules.WinScore {
		winner = SideLeft
	} else if s.score.Right >= s.rules.WinScore {
		winner = SideRight
	}
	if winner == SideNone {
		return PhaseChange{From: PhasePlaying, To: PhasePlaying}
	}
	s.phase = PhaseStartScreen
	s.winner = winner
	s.final = s.score
	s.score = Score{}
	return PhaseChange{From: PhasePlaying, To: PhaseStartScreen, Winner: winner}
}

// handleStartScreen reacts to key presses on the start screen. The exit key
// takes precedence over every other key pressed in the same tick.
func (s *Sim) handleStartScreen(in Input) (PhaseChange, bool) {
	stay := PhaseChange{From: PhaseStartScreen, To: PhaseStartScreen, Winner: s.winner}
	if in.pressed(KeyExit) {
		return stay, true
	}
	if len(in.Pressed) == 0 {
		return stay, false
	}
	s.startMatch()
	return PhaseChange{From: PhaseStartScreen, To: PhasePlaying}, false
}

// startMatch enters Playing with a fresh score, timer and serve.
func (s *Sim) startMatch() {
	s.phase = PhasePlaying
	s.winner = SideNone
	s.score = Score{}
	s.timer = RoundTimer{}
	s.left.contact = false
	s.right.contact = false
	s.match = uuid.New()
	s.serve()
}
