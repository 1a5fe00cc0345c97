package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Pong/internal/pong"
)

const (
	logPanelWidth = 260
	logMaxEntries = 40
	logLineHeight = 14
)

// EventEntry is a single line in the match event panel.
type EventEntry struct {
	Tick    int
	Side    pong.Side
	Message string
}

// EventLog is a ring buffer of recent match events rendered beside the court.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(e EventEntry) {
	el.entries[el.head] = e
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// sideColor is the indicator dot colour for each side.
func sideColor(s pong.Side) color.RGBA {
	switch s {
	case pong.SideLeft:
		return color.RGBA{R: 210, G: 90, B: 70, A: 255}
	case pong.SideRight:
		return color.RGBA{R: 70, G: 130, B: 210, A: 255}
	}
	return color.RGBA{R: 140, G: 140, B: 140, A: 255}
}

// Draw renders the panel at panelX, newest entry at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 70, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 26, B: 32, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "MATCH LOG", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 70, B: 80, A: 200}, false)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const recent = 3

	y := 20
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 28, G: 34, B: 40, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, sideColor(e.Side), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y-1)
		y += logLineHeight
	}
}

// describe turns a tick's outcome into panel entries. snap is the state after
// the tick.
func describe(out pong.Outcome, snap pong.Snapshot) []EventEntry {
	var es []EventEntry
	add := func(side pong.Side, format string, args ...any) {
		es = append(es, EventEntry{Tick: out.Tick, Side: side, Message: fmt.Sprintf(format, args...)})
	}
	for _, ev := range out.Collisions {
		if ev.Kind == pong.PaddleHit {
			add(ev.Side, "%s paddle", ev.Side)
		}
	}
	if out.Scorer != pong.SideNone {
		score := snap.Score
		if out.Transition.Changed() {
			score = snap.FinalScore
		}
		add(out.Scorer, "point %s  %s", out.Scorer, score)
	}
	if out.SpeedUp {
		add(pong.SideNone, "speed up %.0f", snap.Ball.Speed())
	}
	if t := out.Transition; t.Changed() {
		switch t.To {
		case pong.PhasePlaying:
			add(pong.SideNone, "match %s", snap.Match.String()[:8])
		case pong.PhaseStartScreen:
			add(t.Winner, "%s wins %s", t.Winner, snap.FinalScore)
		}
	}
	return es
}
