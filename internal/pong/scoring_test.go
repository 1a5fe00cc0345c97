package pong

import (
	"math"
	"testing"
)

func TestScoring_BallPastRightEdgeScoresLeft(t *testing.T) {
	ts := NewTestSim(
		WithPlaying(),
		WithFixedDT(1.0),
		WithBall(Vec2{X: 340, Y: 0}, Vec2{X: 80, Y: 0}),
	)
	out := ts.Step(Input{})

	snap := ts.Snapshot()
	if out.Scorer != SideLeft {
		t.Fatalf("expected left to score, got %s", out.Scorer)
	}
	if snap.Score.Left != 1 || snap.Score.Right != 0 {
		t.Fatalf("expected score 1-0, got %s", snap.Score)
	}
	if snap.Ball.Pos != (Vec2{}) {
		t.Fatalf("expected ball reset to (0,0), got (%.2f,%.2f)", snap.Ball.Pos.X, snap.Ball.Pos.Y)
	}
	if !nearly(snap.Ball.Speed(), DefaultRules().BaseSpeed) {
		t.Fatalf("expected serve at base speed, got %.3f", snap.Ball.Speed())
	}
}

func TestScoring_BallPastLeftEdgeScoresRight(t *testing.T) {
	ts := NewTestSim(
		WithPlaying(),
		WithFixedDT(1.0),
		WithBall(Vec2{X: -340, Y: 120}, Vec2{X: -80, Y: 0}),
	)
	out := ts.Step(Input{})
	snap := ts.Snapshot()
	if out.Scorer != SideRight || snap.Score.Right != 1 || snap.Score.Left != 0 {
		t.Fatalf("expected right to score once, got scorer=%s score=%s", out.Scorer, snap.Score)
	}
}

func TestScoring_BoundsAreExclusive(t *testing.T) {
	cases := []struct {
		x    float64
		want Side
	}{
		{-351, SideRight},
		{-350, SideNone},
		{0, SideNone},
		{350, SideNone},
		{351, SideLeft},
		{math.Inf(1), SideLeft},
	}
	for _, c := range cases {
		b := newBall()
		b.Pos.X = c.x
		if got := outOfBounds(&b); got != c.want {
			t.Errorf("x=%.0f: expected %s, got %s", c.x, c.want, got)
		}
	}
}

func TestScoring_NoPointInsideCourt(t *testing.T) {
	ts := NewTestSim(
		WithPlaying(),
		WithBall(Vec2{X: 0, Y: 0}, Vec2{X: 300, Y: 0}),
	)
	ts.RunTicks(30)
	for _, out := range ts.Outcomes {
		if out.Scorer != SideNone {
			t.Fatalf("unexpected point at T=%d", out.Tick)
		}
	}
}

func TestServe_DirectionIsRandomAtBaseSpeed(t *testing.T) {
	s := NewSim(DefaultRules(), WithSeed(99))
	var leftward, rightward int
	for i := 0; i < 200; i++ {
		s.serve()
		if s.ball.Pos != (Vec2{}) {
			t.Fatalf("serve %d: ball not at centre", i)
		}
		if s.ball.Vel.Y != 0 || math.Abs(s.ball.Vel.X) != 300 {
			t.Fatalf("serve %d: expected (±300,0), got (%.1f,%.1f)", i, s.ball.Vel.X, s.ball.Vel.Y)
		}
		if s.ball.Vel.X < 0 {
			leftward++
		} else {
			rightward++
		}
	}
	if leftward < 60 || rightward < 60 {
		t.Fatalf("serve directions look biased: left=%d right=%d", leftward, rightward)
	}
}

func TestServe_SameSeedSameSequence(t *testing.T) {
	a := NewSim(DefaultRules(), WithSeed(5))
	b := NewSim(DefaultRules(), WithSeed(5))
	for i := 0; i < 50; i++ {
		a.serve()
		b.serve()
		if a.ball.Vel != b.ball.Vel {
			t.Fatalf("serve %d diverged: %+v vs %+v", i, a.ball.Vel, b.ball.Vel)
		}
	}
}
