package pong

import (
	"math"
	"testing"
)

func TestRamp_FiresAtInterval(t *testing.T) {
	r := DefaultRules()
	timer := RoundTimer{Elapsed: 9.99}
	b := newBall()
	b.Vel = Vec2{X: 300, Y: 100}
	dirBefore := math.Atan2(b.Vel.Y, b.Vel.X)
	speedBefore := b.Speed()

	if !rampSpeed(&timer, &b, r, 0.02) {
		t.Fatal("expected escalation once 10s accumulated")
	}
	if timer.Elapsed != 0 {
		t.Fatalf("expected timer reset, got %.3f", timer.Elapsed)
	}
	if !nearly(b.Speed(), speedBefore*1.1) {
		t.Fatalf("expected speed ×1.1 (%.3f), got %.3f", speedBefore*1.1, b.Speed())
	}
	if !nearly(math.Atan2(b.Vel.Y, b.Vel.X), dirBefore) {
		t.Fatal("escalation changed the ball direction")
	}
}

func TestRamp_NotBeforeInterval(t *testing.T) {
	timer := RoundTimer{}
	b := newBall()
	b.Vel = Vec2{X: 300}
	for i := 0; i < 59; i++ {
		if rampSpeed(&timer, &b, DefaultRules(), 1.0/6) {
			t.Fatalf("escalation fired early at step %d (elapsed %.3f)", i, timer.Elapsed)
		}
	}
	if b.Vel.X != 300 {
		t.Fatalf("speed changed before the interval: %.3f", b.Vel.X)
	}
}

func TestRamp_ClampsToMaxSpeed(t *testing.T) {
	timer := RoundTimer{Elapsed: 10}
	b := newBall()
	b.Vel = Vec2{X: -850, Y: 0}
	rampSpeed(&timer, &b, DefaultRules(), 0)
	if !nearly(b.Speed(), 900) {
		t.Fatalf("expected speed clamped to 900, got %.3f", b.Speed())
	}
	if b.Vel.X >= 0 {
		t.Fatal("clamping must keep the direction")
	}
}

func TestRamp_RaisesSlowBallToBaseSpeed(t *testing.T) {
	timer := RoundTimer{Elapsed: 10}
	b := newBall()
	b.Vel = Vec2{X: 100, Y: 0}
	rampSpeed(&timer, &b, DefaultRules(), 0)
	if !nearly(b.Speed(), 300) {
		t.Fatalf("expected speed raised to base 300, got %.3f", b.Speed())
	}
}

func TestRamp_OnlyWhilePlaying(t *testing.T) {
	ts := NewTestSim(WithFixedDT(1.0))
	ts.RunTicks(25)
	snap := ts.Snapshot()
	if snap.Round.Elapsed != 0 {
		t.Fatalf("round timer advanced on the start screen: %.2f", snap.Round.Elapsed)
	}
	for _, out := range ts.Outcomes {
		if out.SpeedUp {
			t.Fatalf("escalation fired on the start screen at T=%d", out.Tick)
		}
	}
}

func TestRamp_EscalatesDuringPlay(t *testing.T) {
	// Ball bouncing vertically in the middle never scores.
	ts := NewTestSim(
		WithPlaying(),
		WithFixedDT(0.5),
		WithBall(Vec2{}, Vec2{X: 0, Y: 300}),
	)
	ts.RunTicks(20) // 10s
	if n := ts.SimLog.CountCategory("speed", "ramp"); n != 1 {
		t.Fatalf("expected exactly one escalation after 10s, got %d\n%s", n, ts.SimLog.Format())
	}
	if b := ts.Snapshot().Ball; !nearly(b.Speed(), 330) {
		t.Fatalf("expected speed 330 after one escalation, got %.3f", b.Speed())
	}
}
