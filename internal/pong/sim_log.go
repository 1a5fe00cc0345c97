package pong

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event of a simulation run.
type SimLogEntry struct {
	Tick     int
	Side     string  // "left", "right" or "--" for court-wide events
	Category string  // collision, score, speed, phase, ball
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0420] left  score     point            3-2
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-5s %-9s %-16s %s",
		e.Tick, e.Side, e.Category, e.Key, e.Value)
}

// SimLog collects structured events from Sim outcomes. It is unbounded and
// meant for tests and headless reports, not for the live game.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick ball position and
// speed entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, side, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, side, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, side, category, key, value, numVal)
}

// Record appends entries for everything that happened in one tick. snap must be
// the state right after the tick.
func (sl *SimLog) Record(out Outcome, snap Snapshot) {
	for _, c := range out.Collisions {
		side := "--"
		if c.Kind == PaddleHit {
			side = c.Side.String()
		}
		sl.Add(out.Tick, side, "collision", c.Kind.String(),
			fmt.Sprintf("speed %.1f", snap.Ball.Speed()), snap.Ball.Speed())
	}
	if out.Scorer != SideNone {
		// A winning point resets the live score in the same tick.
		score := snap.Score
		if out.Transition.Changed() {
			score = snap.FinalScore
		}
		sl.Add(out.Tick, out.Scorer.String(), "score", "point", score.String(), float64(score.Of(out.Scorer)))
	}
	if out.SpeedUp {
		sl.Add(out.Tick, "--", "speed", "ramp", fmt.Sprintf("%.1f", snap.Ball.Speed()), snap.Ball.Speed())
	}
	if out.Transition.Changed() {
		side := "--"
		if out.Transition.Winner != SideNone {
			side = out.Transition.Winner.String()
		}
		sl.Add(out.Tick, side, "phase", "change",
			fmt.Sprintf("%s → %s", out.Transition.From, out.Transition.To), 0)
	}
	if snap.Phase == PhasePlaying {
		sl.AddVerbose(out.Tick, "--", "ball", "position",
			fmt.Sprintf("(%.1f,%.1f)", snap.Ball.Pos.X, snap.Ball.Pos.Y), snap.Ball.Speed())
	}
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Query selects log entries. Empty strings and a zero ToTick match anything.
type Query struct {
	Category      string
	Key           string
	Side          string
	ValueContains string
	FromTick      int
	ToTick        int
}

func (q Query) matches(e SimLogEntry) bool {
	switch {
	case q.Category != "" && e.Category != q.Category,
		q.Key != "" && e.Key != q.Key,
		q.Side != "" && e.Side != q.Side,
		q.ValueContains != "" && !strings.Contains(e.Value, q.ValueContains),
		e.Tick < q.FromTick,
		q.ToTick > 0 && e.Tick > q.ToTick:
		return false
	}
	return true
}

// Select returns the entries matching q in log order.
func (sl *SimLog) Select(q Query) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns entries matching the given category and/or key.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.Select(Query{Category: category, Key: key})
}

func (sl *SimLog) FilterSide(side Side) []SimLogEntry {
	return sl.Select(Query{Side: side.String()})
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	if toTick < 1 || toTick < fromTick {
		return nil
	}
	return sl.Select(Query{FromTick: fromTick, ToTick: toTick})
}

func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if e := sl.entries[i]; e.Category == category && e.Key == key {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any entry matches category, key and a substring
// of its value.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	q := Query{Category: category, Key: key, ValueContains: valueSubstr}
	for _, e := range sl.entries {
		if q.matches(e) {
			return true
		}
	}
	return false
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Format renders the whole log, one entry per line.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

// Summary returns a short human-readable summary of the run so far.
func (sl *SimLog) Summary(snap Snapshot) string {
	count := func(side Side, category, key string) int {
		return len(sl.Select(Query{Category: category, Key: key, Side: side.String()}))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", snap.Tick)
	fmt.Fprintf(&sb, "phase: %s  score: %s", snap.Phase, snap.Score)
	if snap.Winner != SideNone {
		fmt.Fprintf(&sb, "  last winner: %s (%s)", snap.Winner, snap.FinalScore)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "points: left=%d right=%d\n",
		count(SideLeft, "score", "point"), count(SideRight, "score", "point"))
	fmt.Fprintf(&sb, "hits: wall=%d left_paddle=%d right_paddle=%d  ramps=%d\n",
		sl.CountCategory("collision", WallHit.String()),
		count(SideLeft, "collision", PaddleHit.String()),
		count(SideRight, "collision", PaddleHit.String()),
		sl.CountCategory("speed", "ramp"))
	return sb.String()
}
