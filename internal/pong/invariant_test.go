package pong

import "testing"

// --- Invariant helpers ---

// checkPaddlesClamped verifies both paddles stay inside the court.
func checkPaddlesClamped(t *testing.T, snap Snapshot) {
	t.Helper()
	for _, p := range []Paddle{snap.Left, snap.Right} {
		if p.Pos.Y < -p.Limit() || p.Pos.Y > p.Limit() {
			t.Errorf("T=%d: %s paddle out of bounds y=%.3f", snap.Tick, p.Side, p.Pos.Y)
		}
	}
}

// checkSpeedBounded verifies base ≤ |v| ≤ max while a match is running.
func checkSpeedBounded(t *testing.T, snap Snapshot, r Rules) {
	t.Helper()
	if snap.Phase != PhasePlaying {
		return
	}
	speed := snap.Ball.Speed()
	if speed < r.BaseSpeed-1e-6 || speed > r.MaxSpeed+1e-6 {
		t.Errorf("T=%d: ball speed %.3f outside [%.0f, %.0f]", snap.Tick, speed, r.BaseSpeed, r.MaxSpeed)
	}
}

// checkScoreBelowWin verifies no side holds the win score during play.
func checkScoreBelowWin(t *testing.T, snap Snapshot, r Rules) {
	t.Helper()
	if snap.Phase != PhasePlaying {
		return
	}
	if snap.Score.Left >= r.WinScore || snap.Score.Right >= r.WinScore {
		t.Errorf("T=%d: score %s reached the win score while playing", snap.Tick, snap.Score)
	}
}

// checkOutcomeShape verifies per-tick event limits.
func checkOutcomeShape(t *testing.T, out Outcome) {
	t.Helper()
	walls, paddles := 0, 0
	for _, c := range out.Collisions {
		if c.Kind == WallHit {
			walls++
		} else {
			paddles++
		}
	}
	if walls > 1 || paddles > 1 {
		t.Errorf("T=%d: too many collisions in one tick: %+v", out.Tick, out.Collisions)
	}
}

func TestInvariants_LongNoiseRun(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		ts := NewTestSim(
			WithSimSeed(seed),
			WithInputDriver(NewNoiseDriver(seed*31)),
		)
		r := ts.Sim.Rules()
		for i := 0; i < 20000; i++ {
			out := ts.Step(ts.nextInput())
			snap := ts.Snapshot()
			checkOutcomeShape(t, out)
			checkPaddlesClamped(t, snap)
			checkSpeedBounded(t, snap, r)
			checkScoreBelowWin(t, snap, r)
			if t.Failed() {
				t.Fatalf("seed %d failed at T=%d\n%s", seed, snap.Tick, ts.SimLog.FormatRange(snap.Tick-30, snap.Tick))
			}
		}
	}
}

func TestInvariants_PointsMatchScore(t *testing.T) {
	ts := NewTestSim(WithSimSeed(11), WithInputDriver(NewNoiseDriver(12)))
	left, right := 0, 0
	for i := 0; i < 15000; i++ {
		out := ts.Step(ts.nextInput())
		switch out.Scorer {
		case SideLeft:
			left++
		case SideRight:
			right++
		}
		if out.Transition.Changed() && out.Transition.To == PhaseStartScreen {
			final := ts.Snapshot().FinalScore
			if final.Left != left || final.Right != right {
				t.Fatalf("T=%d: counted %d-%d points, final score %s", out.Tick, left, right, final)
			}
			left, right = 0, 0
		}
	}
}
