package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/pong"
	"github.com/Garsondee/Pong/internal/replay"
)

type runStats struct {
	runIndex int
	seed     uint64
	ticks    int

	firstServeTick int
	firstPointTick int
	firstRampTick  int
	firstWinTick   int

	pointsLeft  int
	pointsRight int
	winsLeft    int
	winsRight   int
	wallHits    int
	paddleHits  int
	speedUps    int

	maxSpeed     float64
	longestRally int
	matches      []string // match ids started during the run
}

func main() {
	var runs int
	var ticks int
	var seedBase uint64
	var seedStep uint64
	var dt float64
	var configPath string
	var recordDir string
	var verifyPath string
	var toClipboard bool
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 36000, "ticks per run")
	flag.Uint64Var(&seedBase, "seed-base", 42, "serve RNG seed for run 1")
	flag.Uint64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&dt, "dt", 1.0/60, "fixed seconds per tick")
	flag.StringVar(&configPath, "config", config.DefaultFile, "TOML config supplying [rules]")
	flag.StringVar(&recordDir, "record", "", "directory to write one replay per run")
	flag.StringVar(&verifyPath, "verify", "", "verify a replay file and exit")
	flag.BoolVar(&toClipboard, "clipboard", false, "copy the report to the clipboard")
	flag.BoolVar(&verbose, "verbose", false, "print every match log entry")
	flag.Parse()

	if verifyPath != "" {
		n, err := verifyFile(verifyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d frames replayed identically\n", verifyPath, n)
		return
	}

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if dt <= 0 || dt > pong.DefaultMaxDT {
		fmt.Printf("error: -dt must be in (0, %g]\n", pong.DefaultMaxDT)
		return
	}

	cfg, _, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	rules := cfg.ToRules()

	if recordDir != "" {
		if err := os.MkdirAll(recordDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== Headless Match Report ===\n")
	fmt.Fprintf(&b, "runs=%d ticks=%d dt=%.4f seed_base=%d seed_step=%d win_score=%d\n\n",
		runs, ticks, dt, seedBase, seedStep, rules.WinScore)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + uint64(i)*seedStep
		var rec io.Writer
		var f *os.File
		if recordDir != "" {
			f, err = os.Create(filepath.Join(recordDir, fmt.Sprintf("run-%03d.pong", i+1)))
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			rec = f
		}
		stats, log, err := runMatch(i+1, seed, ticks, dt, rules, rec)
		if f != nil {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, stats)
		printRun(&b, stats)
		if verbose {
			b.WriteString(log.Format())
			b.WriteString("\n")
		}
	}
	printAggregate(&b, all)

	report := b.String()
	fmt.Print(report)
	if toClipboard {
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Fprintf(os.Stderr, "clipboard: %v\n", err)
		}
	}
}

// runMatch plays ticks ticks of noise-driven input and collects statistics.
// When rec is non-nil every tick is recorded as a replay.
func runMatch(runIndex int, seed uint64, ticks int, dt float64, rules pong.Rules, rec io.Writer) (runStats, *pong.SimLog, error) {
	ts := pong.NewTestSim(
		pong.WithRules(rules),
		pong.WithSimSeed(seed),
		pong.WithFixedDT(dt),
	)
	driver := pong.NewNoiseDriver(seed)

	var w *replay.Writer
	if rec != nil {
		var err error
		w, err = replay.NewWriter(rec, replay.Header{
			Session: uuid.New().String(),
			Seed:    ts.Sim.Seed(),
			Rules:   ts.Sim.Rules(),
		})
		if err != nil {
			return runStats{}, nil, err
		}
	}

	rs := runStats{runIndex: runIndex, seed: seed, ticks: ticks}
	for i := 0; i < ticks; i++ {
		in := driver.Next(ts.Snapshot())
		out := ts.Step(in)
		snap := ts.Snapshot()
		if t := out.Transition; t.Changed() && t.To == pong.PhasePlaying {
			rs.matches = append(rs.matches, snap.Match.String())
		}
		if sp := snap.Ball.Speed(); sp > rs.maxSpeed {
			rs.maxSpeed = sp
		}
		if w != nil {
			if err := w.WriteFrame(replay.NewFrame(in, dt, snap)); err != nil {
				return runStats{}, nil, err
			}
		}
	}
	if w != nil {
		if err := w.Flush(); err != nil {
			return runStats{}, nil, fmt.Errorf("flush replay: %w", err)
		}
	}

	sl := ts.SimLog
	entries := sl.Entries()
	rs.firstServeTick = firstTick(entries, "phase", "change", "→ playing")
	rs.firstPointTick = firstTick(entries, "score", "point", "")
	rs.firstRampTick = firstTick(entries, "speed", "ramp", "")
	rs.firstWinTick = firstTick(entries, "phase", "change", "→ start_screen")
	rs.pointsLeft = len(sl.Select(pong.Query{Category: "score", Key: "point", Side: "left"}))
	rs.pointsRight = len(sl.Select(pong.Query{Category: "score", Key: "point", Side: "right"}))
	rs.winsLeft = len(sl.Select(pong.Query{Category: "phase", Key: "change", Side: "left"}))
	rs.winsRight = len(sl.Select(pong.Query{Category: "phase", Key: "change", Side: "right"}))
	rs.wallHits = sl.CountCategory("collision", "wall_hit")
	rs.paddleHits = sl.CountCategory("collision", "paddle_hit")
	rs.speedUps = sl.CountCategory("speed", "ramp")
	rs.longestRally = longestRally(entries)
	return rs, sl, nil
}

// verifyFile replays a recording and returns the number of matching frames.
func verifyFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	r, err := replay.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	n, err := replay.Verify(r)
	if errors.Is(err, replay.ErrDiverged) {
		return n, fmt.Errorf("%s: after %d good frames: %w", path, n, err)
	}
	return n, err
}

func firstTick(entries []pong.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// longestRally is the most paddle hits between two consecutive points or
// match boundaries.
func longestRally(entries []pong.SimLogEntry) int {
	best, cur := 0, 0
	for _, e := range entries {
		switch {
		case e.Category == "collision" && e.Key == "paddle_hit":
			cur++
			best = max(best, cur)
		case e.Category == "score", e.Category == "phase":
			cur = 0
		}
	}
	return best
}

func printRun(b *strings.Builder, rs runStats) {
	fmt.Fprintf(b, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(b, "phase_markers: first_serve=%d first_point=%d first_ramp=%d first_win=%d\n",
		rs.firstServeTick, rs.firstPointTick, rs.firstRampTick, rs.firstWinTick)
	fmt.Fprintf(b, "points: left=%d right=%d  wins: left=%d right=%d\n",
		rs.pointsLeft, rs.pointsRight, rs.winsLeft, rs.winsRight)
	fmt.Fprintf(b, "collisions: wall_hit=%d paddle_hit=%d longest_rally=%d\n",
		rs.wallHits, rs.paddleHits, rs.longestRally)
	fmt.Fprintf(b, "speed: ramps=%d max=%.1f\n", rs.speedUps, rs.maxSpeed)
	fmt.Fprintf(b, "matches: %s\n\n", joinIDs(rs.matches))
}

func printAggregate(b *strings.Builder, all []runStats) {
	var points, wins, walls, paddles, ramps int
	var winsLeft, winsRight int
	pointTicks := make([]int, 0, len(all))
	winTicks := make([]int, 0, len(all))
	rallies := make([]int, 0, len(all))
	maxSpeed := 0.0
	for _, rs := range all {
		points += rs.pointsLeft + rs.pointsRight
		wins += rs.winsLeft + rs.winsRight
		winsLeft += rs.winsLeft
		winsRight += rs.winsRight
		walls += rs.wallHits
		paddles += rs.paddleHits
		ramps += rs.speedUps
		maxSpeed = max(maxSpeed, rs.maxSpeed)
		if rs.firstPointTick >= 0 {
			pointTicks = append(pointTicks, rs.firstPointTick)
		}
		if rs.firstWinTick >= 0 {
			winTicks = append(winTicks, rs.firstWinTick)
		}
		rallies = append(rallies, rs.longestRally)
	}

	fmt.Fprintln(b, "=== Aggregate ===")
	fmt.Fprintf(b, "runs=%d\n", len(all))
	fmt.Fprintf(b, "avg_per_run: points=%.1f wins=%.1f wall_hit=%.1f paddle_hit=%.1f ramps=%.1f\n",
		avg(points, len(all)), avg(wins, len(all)), avg(walls, len(all)), avg(paddles, len(all)), avg(ramps, len(all)))
	fmt.Fprintf(b, "wins_by_side: left=%d right=%d\n", winsLeft, winsRight)
	fmt.Fprintf(b, "phase_marker_avg_ticks: first_point=%s first_win=%s\n",
		avgTickString(pointTicks), avgTickString(winTicks))
	fmt.Fprintf(b, "longest_rally: median=%s max_speed=%.1f\n", medianString(rallies), maxSpeed)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func medianString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	s := append([]int(nil), vals...)
	sort.Ints(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return fmt.Sprintf("%d", s[mid])
	}
	return fmt.Sprintf("%.1f", float64(s[mid-1]+s[mid])/2)
}

// joinIDs lists the first 8 characters of each match id.
func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	short := make([]string, len(ids))
	for i, id := range ids {
		short[i] = id[:min(8, len(id))]
	}
	return strings.Join(short, ",")
}
