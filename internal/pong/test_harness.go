package pong

import "golang.org/x/exp/rand"

// TestSim is a headless harness around Sim used by tests and the headless
// report. It drives Step with a fixed dt and an optional InputDriver and logs
// every outcome to SimLog.
type TestSim struct {
	Sim    *Sim
	SimLog *SimLog
	DT     float64

	// Outcomes of the most recent RunTicks/RunUntil call, oldest first.
	Outcomes []Outcome

	rules  Rules
	seed   uint64
	driver InputDriver
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // rules, seed, dt, verbose, driver, applied first
	simOptPhase                      // phase changes, applied once the Sim exists
	simOptState                      // state overrides, applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithRules replaces the default match tuning.
func WithRules(r Rules) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rules = r
	}}
}

// WithSimSeed sets the serve RNG seed for deterministic runs.
func WithSimSeed(seed uint64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithFixedDT sets the per-tick dt used by RunTicks and RunUntil.
func WithFixedDT(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.DT = dt
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithInputDriver sets the source of per-tick input.
func WithInputDriver(d InputDriver) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.driver = d
	}}
}

// WithPlaying starts a match immediately, as if a key had been pressed on the
// start screen. The opening serve consumes one RNG draw.
func WithPlaying() SimOption {
	return SimOption{simOptPhase, func(ts *TestSim) {
		ts.Sim.startMatch()
	}}
}

// WithBall places the ball and sets its velocity.
func WithBall(pos, vel Vec2) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.Sim.ball.Pos = pos
		ts.Sim.ball.Vel = vel
	}}
}

// WithPaddleY moves a paddle centre vertically.
func WithPaddleY(side Side, y float64) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.Sim.paddle(side).Pos.Y = y
	}}
}

// WithScore overrides the current score.
func WithScore(left, right int) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.Sim.score = Score{Left: left, Right: right}
	}}
}

// WithRoundElapsed preloads the speed-ramp accumulator.
func WithRoundElapsed(sec float64) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.Sim.timer.Elapsed = sec
	}}
}

// NewTestSim constructs a TestSim from the given options in three ordered passes:
//  1. Infrastructure (rules, seed, dt, verbose, driver), then the Sim is built
//  2. Phase (WithPlaying)
//  3. State overrides (ball, paddles, score, timer)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		DT:     1.0 / 60,
		rules:  DefaultRules(),
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Sim = NewSim(ts.rules, WithSeed(ts.seed))
	for _, o := range opts {
		if o.kind == simOptPhase {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptState {
			o.fn(ts)
		}
	}
	return ts
}

func (s *Sim) paddle(side Side) *Paddle {
	if side == SideLeft {
		return &s.left
	}
	return &s.right
}

// Step runs one tick with explicit input and the harness dt.
func (ts *TestSim) Step(in Input) Outcome {
	out := ts.Sim.Step(in, ts.DT)
	ts.SimLog.Record(out, ts.Sim.Snapshot())
	return out
}

// RunTicks advances the simulation n ticks, taking input from the driver.
func (ts *TestSim) RunTicks(n int) {
	ts.Outcomes = ts.Outcomes[:0]
	for i := 0; i < n; i++ {
		ts.Outcomes = append(ts.Outcomes, ts.Step(ts.nextInput()))
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	ts.Outcomes = ts.Outcomes[:0]
	for i := 0; i < maxTicks; i++ {
		ts.Outcomes = append(ts.Outcomes, ts.Step(ts.nextInput()))
		if predicate(ts) {
			return ts.Sim.tick
		}
	}
	return -1
}

func (ts *TestSim) nextInput() Input {
	if ts.driver == nil {
		return Input{}
	}
	return ts.driver.Next(ts.Sim.Snapshot())
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Sim.tick
}

// Snapshot returns the current simulation state.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Sim.Snapshot()
}

// InputDriver produces the input for the next tick from the current state.
type InputDriver interface {
	Next(snap Snapshot) Input
}

// InputFunc adapts a function to InputDriver.
type InputFunc func(snap Snapshot) Input

func (f InputFunc) Next(snap Snapshot) Input {
	return f(snap)
}

// ScriptDriver replays fixed inputs keyed by the tick they apply to (the tick
// number Step is about to produce). Ticks without an entry get empty input.
type ScriptDriver map[int]Input

func (d ScriptDriver) Next(snap Snapshot) Input {
	return d[snap.Tick+1]
}

// NoiseDriver holds random paddle keys for random durations and presses a
// non-exit key on the start screen so headless runs play match after match.
// It exercises the simulation; it does not try to return the ball.
type NoiseDriver struct {
	MinHold, MaxHold int // ticks a choice is held, inclusive

	rng   *rand.Rand
	held  [2]Key
	left  [2]int
	delay int
}

// NewNoiseDriver returns a NoiseDriver seeded for reproducible runs.
func NewNoiseDriver(seed uint64) *NoiseDriver {
	return &NoiseDriver{
		MinHold: 5,
		MaxHold: 40,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (d *NoiseDriver) Next(snap Snapshot) Input {
	if snap.Phase == PhaseStartScreen {
		// Linger a few ticks so the start screen is observable in logs.
		d.delay++
		if d.delay < 30 {
			return Input{}
		}
		d.delay = 0
		return Input{Pressed: []Key{KeyOther}}
	}

	choices := [2][3]Key{
		{KeyOther, KeyLeftUp, KeyLeftDown},
		{KeyOther, KeyRightUp, KeyRightDown},
	}
	var in Input
	for i := range d.held {
		if d.left[i] <= 0 {
			prev := d.held[i]
			d.held[i] = choices[i][d.rng.Intn(3)]
			d.left[i] = d.MinHold + d.rng.Intn(d.MaxHold-d.MinHold+1)
			if d.held[i] != KeyOther && d.held[i] != prev {
				in.Pressed = append(in.Pressed, d.held[i])
			}
		}
		d.left[i]--
		if d.held[i] != KeyOther {
			in.Held.Add(d.held[i])
		}
	}
	return in
}
