package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/pong"
	"github.com/Garsondee/Pong/internal/sound"
)

// fakeClock advances by a fixed step each time it is read.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

type cueRecorder []sound.Cue

func (r *cueRecorder) Play(c sound.Cue) { *r = append(*r, c) }

func newTestTerminal(t *testing.T, cues CuePlayer) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	scr := tcell.NewSimulationScreen("UTF-8")
	if err := scr.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(80, 24)
	clk := &fakeClock{t: time.Unix(1000, 0), step: 8 * time.Millisecond}
	term := New(scr, Options{
		Rules: pong.DefaultRules(),
		Seed:  1,
		Keys:  config.DefaultKeys(),
		Cues:  cues,
		Now:   clk.now,
	})
	return term, scr
}

func rowText(scr tcell.SimulationScreen, y int) string {
	w, _ := scr.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := scr.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(scr tcell.SimulationScreen) string {
	_, h := scr.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(scr, y)
	}
	return strings.Join(rows, "\n")
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyName(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{key('w'), "W"},
		{key('S'), "S"},
		{key('7'), "Digit7"},
		{key(' '), "Space"},
		{key('é'), ""},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "ArrowUp"},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), "ArrowDown"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape"},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ""},
	}
	for _, c := range cases {
		if got := keyName(c.ev); got != c.want {
			t.Errorf("keyName(%s) = %q, want %q", c.ev.Name(), got, c.want)
		}
	}
}

func TestKeyHold_Windows(t *testing.T) {
	h := NewKeyHold()
	t0 := time.Unix(0, 0)
	h.Press(pong.KeyLeftUp, t0)

	if !h.Held(t0.Add(DefaultInitialHold - time.Millisecond)).Has(pong.KeyLeftUp) {
		t.Error("key released before the initial window ended")
	}
	if h.Held(t0.Add(DefaultInitialHold)).Has(pong.KeyLeftUp) {
		t.Error("key still held after the initial window")
	}

	// A repeat extends from the repeat event, not the first press.
	h.Press(pong.KeyLeftUp, t0)
	rep := t0.Add(450 * time.Millisecond)
	h.Press(pong.KeyLeftUp, rep)
	if !h.Held(rep.Add(DefaultRepeatHold - time.Millisecond)).Has(pong.KeyLeftUp) {
		t.Error("repeat did not extend the hold")
	}
	if h.Held(rep.Add(DefaultRepeatHold)).Has(pong.KeyLeftUp) {
		t.Error("hold outlived the repeat window")
	}
}

func TestKeyHold_OppositeReleases(t *testing.T) {
	h := NewKeyHold()
	t0 := time.Unix(0, 0)
	h.Press(pong.KeyRightUp, t0)
	h.Press(pong.KeyLeftDown, t0)
	h.Press(pong.KeyRightDown, t0.Add(10*time.Millisecond))

	held := h.Held(t0.Add(20 * time.Millisecond))
	if held != pong.Keys(pong.KeyRightDown, pong.KeyLeftDown) {
		t.Errorf("held = %08b, want right_down|left_down", held)
	}
}

func TestKeyHold_IgnoresNonPaddleKeys(t *testing.T) {
	h := NewKeyHold()
	t0 := time.Unix(0, 0)
	h.Press(pong.KeyExit, t0)
	h.Press(pong.KeyOther, t0)
	if held := h.Held(t0); held != 0 {
		t.Errorf("held = %08b, want empty", held)
	}
}

func TestGrid_Mapping(t *testing.T) {
	g := newGrid(80, 24)
	if c := g.col(-pong.CourtHalfWidth); c != g.x0 {
		t.Errorf("left edge col = %d, want %d", c, g.x0)
	}
	if c := g.col(pong.CourtHalfWidth); c != g.x0+g.w-1 {
		t.Errorf("right edge col = %d, want %d", c, g.x0+g.w-1)
	}
	if r := g.row(pong.CourtHalfHeight); r != g.y0 {
		t.Errorf("top row = %d, want %d", r, g.y0)
	}
	if r := g.row(-pong.CourtHalfHeight); r != g.y0+g.h-1 {
		t.Errorf("bottom row = %d, want %d", r, g.y0+g.h-1)
	}
	if g.row(100) >= g.row(-100) {
		t.Error("+y does not map upward")
	}
	if c := g.col(10 * pong.CourtHalfWidth); c != g.x0+g.w-1 {
		t.Errorf("out-of-court x maps to col %d, want clamped %d", c, g.x0+g.w-1)
	}
}

func TestTerminal_StartScreen(t *testing.T) {
	term, scr := newTestTerminal(t, nil)
	term.draw()
	text := screenText(scr)
	for _, want := range []string{"P O N G", "press any key to serve", "left W/S", "Escape quits here"} {
		if !strings.Contains(text, want) {
			t.Errorf("start screen missing %q:\n%s", want, text)
		}
	}
}

func TestTerminal_AnyKeyStartsMatch(t *testing.T) {
	term, scr := newTestTerminal(t, nil)
	if term.handleEvent(key('x')) {
		t.Fatal("ordinary key requested quit")
	}
	if term.tick() {
		t.Fatal("ordinary key triggered exit")
	}
	if term.sim.Snapshot().Phase != pong.PhasePlaying {
		t.Fatal("match did not start")
	}
	term.draw()
	if !strings.Contains(rowText(scr, 0), "LEFT  0  :  0  RIGHT") {
		t.Errorf("score line = %q", rowText(scr, 0))
	}
}

func TestTerminal_ExitOnStartScreen(t *testing.T) {
	term, _ := newTestTerminal(t, nil)
	term.handleEvent(key('x'))
	term.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !term.tick() {
		t.Error("escape on the start screen did not exit")
	}
	if term.sim.Snapshot().Phase != pong.PhaseStartScreen {
		t.Error("exit tick also started a match")
	}
}

func TestTerminal_EscapeIgnoredWhilePlaying(t *testing.T) {
	term, _ := newTestTerminal(t, nil)
	term.handleEvent(key('x'))
	term.tick()
	term.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if term.tick() {
		t.Error("escape during play exited")
	}
}

func TestTerminal_CtrlCQuits(t *testing.T) {
	term, _ := newTestTerminal(t, nil)
	if !term.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("Ctrl+C did not quit")
	}
}

func TestTerminal_HeldKeyMovesPaddle(t *testing.T) {
	term, _ := newTestTerminal(t, nil)
	term.handleEvent(key('x'))
	term.tick()

	term.handleEvent(key('w'))
	for i := 0; i < 10; i++ {
		term.tick()
	}
	if y := term.sim.Snapshot().Left.Pos.Y; y <= 0 {
		t.Errorf("left paddle y = %.2f after holding W, want > 0", y)
	}
	if y := term.sim.Snapshot().Right.Pos.Y; y != 0 {
		t.Errorf("right paddle moved to %.2f", y)
	}
}

func TestTerminal_PlaysCues(t *testing.T) {
	var rec cueRecorder
	term, _ := newTestTerminal(t, &rec)
	term.handleEvent(key('x'))
	// The serve moves at 300 u/s and the fake clock steps 16ms per tick
	// (two reads), so the ball reaches a wall or paddle within a few seconds.
	for i := 0; i < 600 && len(rec) == 0; i++ {
		term.tick()
	}
	if len(rec) == 0 {
		t.Fatal("no cue played")
	}
	switch rec[0] {
	case sound.CuePaddle, sound.CuePoint:
	default:
		t.Errorf("first cue = %s, want paddle or point", rec[0])
	}
}
