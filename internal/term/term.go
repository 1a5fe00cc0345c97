// Package term runs the simulation in a terminal using tcell.
package term

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/pong"
	"github.com/Garsondee/Pong/internal/sound"
)

// DefaultFrame is the redraw and simulation period (~60 FPS).
const DefaultFrame = 16 * time.Millisecond

// CuePlayer plays sound cues. *sound.Beeper satisfies it.
type CuePlayer interface {
	Play(sound.Cue)
}

type Options struct {
	Rules pong.Rules
	Seed  uint64 // 0 picks a time-based seed
	Keys  config.Keys
	Cues  CuePlayer // optional
	Log   *slog.Logger
	Frame time.Duration
	Now   func() time.Time // defaults to time.Now
}

// Terminal hosts a pong.Sim on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	sim    *pong.Sim
	clock  *pong.Clock
	keys   config.Keys
	hold   *KeyHold
	cues   CuePlayer
	log    *slog.Logger
	now    func() time.Time
	frame  time.Duration

	pending []pong.Key // presses since the last tick
	status  string     // most recent event, shown under the court
}

// New wraps an initialised screen.
func New(screen tcell.Screen, opts Options) *Terminal {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Frame <= 0 {
		opts.Frame = DefaultFrame
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var simOpts []pong.Option
	if opts.Seed != 0 {
		simOpts = append(simOpts, pong.WithSeed(opts.Seed))
	}
	return &Terminal{
		screen: screen,
		sim:    pong.NewSim(opts.Rules, simOpts...),
		clock:  pong.NewClock(opts.Now),
		keys:   opts.Keys,
		hold:   NewKeyHold(),
		cues:   opts.Cues,
		log:    opts.Log,
		now:    opts.Now,
		frame:  opts.Frame,
	}
}

// Run polls events and ticks the simulation until the exit key is pressed on
// the start screen, Ctrl+C is pressed, or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()
	t.log.Info("terminal ready", "seed", t.sim.Seed())
	t.draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if t.tick() {
				t.log.Info("exit requested")
				return nil
			}
			t.draw()
		}
	}
}

// handleEvent records key presses and reports whether to quit immediately.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true
		}
		k := pong.KeyOther
		if name := keyName(ev); name != "" {
			k = t.keys.Lookup(name)
		}
		t.hold.Press(k, t.now())
		t.pending = append(t.pending, k)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

// tick steps the simulation once and reports whether the exit key fired.
func (t *Terminal) tick() bool {
	dt := t.clock.Tick()
	in := pong.Input{Held: t.hold.Held(t.now()), Pressed: t.pending}
	t.pending = nil
	out := t.sim.Step(in, dt)
	t.report(out)
	return out.Exit
}

func (t *Terminal) report(out pong.Outcome) {
	snap := t.sim.Snapshot()
	if t.cues != nil {
		for _, c := range sound.CuesFor(out) {
			t.cues.Play(c)
		}
	}
	if out.SpeedUp {
		t.status = fmt.Sprintf("speed up: %.0f u/s", snap.Ball.Speed())
		t.log.Debug("speed up", "tick", out.Tick, "speed", snap.Ball.Speed())
	}
	if out.Scorer != pong.SideNone {
		t.status = fmt.Sprintf("point %s", out.Scorer)
		t.log.Info("point", "match", snap.Match, "side", out.Scorer, "tick", out.Tick)
	}
	if tr := out.Transition; tr.Changed() {
		switch tr.To {
		case pong.PhasePlaying:
			t.status = "serve"
			t.log.Info("match started", "match", snap.Match)
		case pong.PhaseStartScreen:
			t.status = fmt.Sprintf("%s wins %s", tr.Winner, snap.FinalScore)
			t.log.Info("match won", "match", snap.Match, "winner", tr.Winner, "score", snap.FinalScore.String())
		}
	}
}
