package pong

import (
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Outcome is everything a tick produced besides the new state. It is only
// valid for the tick that returned it.
type Outcome struct {
	Tick       int
	Collisions []CollisionEvent
	Scorer     Side // SideNone when no point was scored
	SpeedUp    bool
	Transition PhaseChange
	Exit       bool // exit key pressed on the start screen
}

// Sim owns the whole simulation state. It is not safe for concurrent use; the
// host loop calls Step once per frame and hands Snapshot values to readers.
type Sim struct {
	rules Rules

	left, right Paddle
	ball        Ball
	score       Score
	final       Score // score at the end of the last match
	phase       Phase
	winner      Side
	timer       RoundTimer

	tick  int
	match uuid.UUID
	seed  uint64
	rng   *rand.Rand
}

// Option configures a Sim at construction.
type Option func(*Sim)

// WithSeed makes serve directions reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Sim) {
		s.seed = seed
	}
}

// NewSim returns a simulation on the start screen with no winner.
func NewSim(rules Rules, opts ...Option) *Sim {
	s := &Sim{
		rules: rules,
		left:  newPaddle(SideLeft),
		right: newPaddle(SideRight),
		ball:  newBall(),
		seed:  uint64(time.Now().UnixNano()),
	}
	for _, o := range opts {
		o(s)
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	return s
}

// Step advances the simulation by one tick of dt seconds. dt must already be
// sanitized (finite, non-negative); see SanitizeDT.
func (s *Sim) Step(in Input, dt float64) Outcome {
	s.tick++
	out := Outcome{Tick: s.tick}

	switch s.phase {
	case PhasePlaying:
		s.play(in, dt, &out)

	case PhaseStartScreen:
		out.Transition, out.Exit = s.handleStartScreen(in)
	}
	return out
}

// maxSliceTravel is the furthest the ball moves between two collision checks.
// It is half the width of the band in which ball and paddle overlap, so a ball
// crossing a paddle is always seen overlapping it.
const maxSliceTravel = PaddleHalfWidth + BallHalfSize

// maxSlices bounds the work of a single tick.
const maxSlices = 256

// slices returns how many physics slices a tick of dt needs at speed.
func slices(speed, dt float64) int {
	n := int(math.Ceil(speed * dt / maxSliceTravel))
	if n < 1 {
		return 1
	}
	if n > maxSlices {
		return maxSlices
	}
	return n
}

// play runs the Playing stages over dt, split into slices short enough that the
// ball cannot pass a paddle unseen. A point ends the tick, so a serve always
// starts from the centre on the next one.
func (s *Sim) play(in Input, dt float64, out *Outcome) {
	n := slices(s.ball.Speed(), dt)
	h := dt / float64(n)
	for i := 0; i < n; i++ {
		// 1. PADDLES
		movePaddle(&s.left, in.Held, s.rules.PaddleSpeed, h)
		movePaddle(&s.right, in.Held, s.rules.PaddleSpeed, h)

		// 2. BALL
		s.ball.integrate(h)

		// 3. COLLISIONS: walls first, then paddles.
		if ev, ok := resolveWall(&s.ball); ok {
			out.Collisions = append(out.Collisions, ev)
		}
		for _, p := range []*Paddle{&s.left, &s.right} {
			if ev, ok := resolvePaddle(&s.ball, p, s.rules.MaxBounceAngle); ok {
				out.Collisions = append(out.Collisions, ev)
			}
		}

		// 4. SCORING
		out.Scorer = s.scorePoint()

		// 5. SPEED RAMP
		if rampSpeed(&s.timer, &s.ball, s.rules, h) {
			out.SpeedUp = true
		}

		// 6. PHASE
		out.Transition = s.checkWin()

		if out.Scorer != SideNone || s.phase != PhasePlaying {
			return
		}
	}
}

// Snapshot is a frozen copy of the state for presentation and recording.
type Snapshot struct {
	Tick       int
	Phase      Phase
	Winner     Side
	Left       Paddle
	Right      Paddle
	Ball       Ball
	Score      Score
	FinalScore Score // result of the last finished match
	Round      RoundTimer
	Match      uuid.UUID
}

func (s *Sim) Snapshot() Snapshot {
	return Snapshot{
		Tick:       s.tick,
		Phase:      s.phase,
		Winner:     s.winner,
		Left:       s.left,
		Right:      s.right,
		Ball:       s.ball,
		Score:      s.score,
		FinalScore: s.final,
		Round:      s.timer,
		Match:      s.match,
	}
}

// Rules returns the tuning the simulation was built with.
func (s *Sim) Rules() Rules {
	return s.rules
}

// Seed returns the serve RNG seed.
func (s *Sim) Seed() uint64 {
	return s.seed
}
