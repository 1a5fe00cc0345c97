package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Pong/internal/pong"
)

func TestLongestRally(t *testing.T) {
	hit := pong.SimLogEntry{Category: "collision", Key: "paddle_hit"}
	wall := pong.SimLogEntry{Category: "collision", Key: "wall_hit"}
	point := pong.SimLogEntry{Category: "score", Key: "point"}
	entries := []pong.SimLogEntry{hit, wall, hit, point, hit, hit, wall, hit, point, hit}
	if got := longestRally(entries); got != 3 {
		t.Fatalf("longestRally = %d, want 3", got)
	}
	if got := longestRally(nil); got != 0 {
		t.Fatalf("longestRally(nil) = %d, want 0", got)
	}
}

func TestFirstTick(t *testing.T) {
	entries := []pong.SimLogEntry{
		{Tick: 5, Category: "phase", Key: "change", Value: "start_screen → playing"},
		{Tick: 90, Category: "score", Key: "point", Value: "1-0"},
		{Tick: 400, Category: "phase", Key: "change", Value: "playing → start_screen"},
	}
	if got := firstTick(entries, "phase", "change", "→ start_screen"); got != 400 {
		t.Errorf("first win tick = %d, want 400", got)
	}
	if got := firstTick(entries, "score", "point", ""); got != 90 {
		t.Errorf("first point tick = %d, want 90", got)
	}
	if got := firstTick(entries, "speed", "ramp", ""); got != -1 {
		t.Errorf("missing event tick = %d, want -1", got)
	}
}

func TestMedianString(t *testing.T) {
	if got := medianString([]int{5, 1, 3}); got != "3" {
		t.Errorf("odd median = %s, want 3", got)
	}
	if got := medianString([]int{4, 1, 2, 3}); got != "2.5" {
		t.Errorf("even median = %s, want 2.5", got)
	}
	if got := medianString(nil); got != "n/a" {
		t.Errorf("empty median = %s, want n/a", got)
	}
}

func TestRunMatch_Deterministic(t *testing.T) {
	a, _, err := runMatch(1, 9, 6000, 1.0/60, pong.DefaultRules(), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := runMatch(1, 9, 6000, 1.0/60, pong.DefaultRules(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.pointsLeft != b.pointsLeft || a.pointsRight != b.pointsRight ||
		a.paddleHits != b.paddleHits || a.wallHits != b.wallHits || a.firstPointTick != b.firstPointTick {
		t.Errorf("same seed gave different runs:\n%+v\n%+v", a, b)
	}
	if a.firstServeTick < 0 {
		t.Error("noise driver never started a match")
	}
	if a.pointsLeft+a.pointsRight == 0 {
		t.Error("no points in 100 seconds of noise play")
	}
	if len(a.matches) == 0 {
		t.Error("no match ids recorded")
	}
}

func TestRunMatch_RecordAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.pong")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := runMatch(1, 11, 1200, 1.0/60, pong.DefaultRules(), f); err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	n, err := verifyFile(path)
	if err != nil {
		t.Fatalf("verifyFile: %v", err)
	}
	if n != 1200 {
		t.Errorf("verified %d frames, want 1200", n)
	}
}

func TestPrintAggregate(t *testing.T) {
	var b strings.Builder
	printAggregate(&b, []runStats{
		{pointsLeft: 10, pointsRight: 4, winsLeft: 1, firstPointTick: 100, longestRally: 6, maxSpeed: 399.3},
		{pointsLeft: 3, pointsRight: 10, winsRight: 1, firstPointTick: 300, longestRally: 2, maxSpeed: 330},
	})
	out := b.String()
	for _, want := range []string{
		"runs=2",
		"points=13.5",
		"wins_by_side: left=1 right=1",
		"first_point=200.0",
		"median=4.0",
		"max_speed=399.3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("aggregate missing %q:\n%s", want, out)
		}
	}
}
