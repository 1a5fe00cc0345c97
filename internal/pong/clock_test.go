package pong

import (
	"math"
	"testing"
	"time"
)

func TestSanitizeDT(t *testing.T) {
	cases := []struct {
		in, max, want float64
	}{
		{0.016, 0.1, 0.016},
		{-1, 0.1, 0},
		{math.NaN(), 0.1, 0},
		{math.Inf(1), 0.1, 0},
		{0.5, 0.1, 0.1},
		{0.5, 0, 0.5},
	}
	for _, c := range cases {
		if got := SanitizeDT(c.in, c.max); got != c.want {
			t.Errorf("SanitizeDT(%v, %v) = %v, want %v", c.in, c.max, got, c.want)
		}
	}
}

func TestClock_FirstTickIsZero(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClock(func() time.Time { return now })
	if dt := c.Tick(); dt != 0 {
		t.Fatalf("expected first tick 0, got %v", dt)
	}
}

func TestClock_MeasuresAndCaps(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClock(func() time.Time { return now })
	c.Tick()

	now = now.Add(20 * time.Millisecond)
	if dt := c.Tick(); math.Abs(dt-0.02) > 1e-9 {
		t.Fatalf("expected 0.02s, got %v", dt)
	}

	now = now.Add(3 * time.Second)
	if dt := c.Tick(); dt != DefaultMaxDT {
		t.Fatalf("expected cap %v, got %v", DefaultMaxDT, dt)
	}

	now = now.Add(-time.Second)
	if dt := c.Tick(); dt != 0 {
		t.Fatalf("expected backwards clock to yield 0, got %v", dt)
	}
}
