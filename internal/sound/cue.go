// Package sound maps simulation outcomes to short synthesized cues and plays
// them. Both front ends share the cue table; the desktop build feeds PCM16 to
// ebiten's audio context and the terminal build plays through Beeper.
package sound

import (
	"time"

	"github.com/Garsondee/Pong/internal/pong"
)

type Cue uint8

const (
	CueWall Cue = iota
	CuePaddle
	CuePoint
	CueWin
	numCues
)

func (c Cue) String() string {
	switch c {
	case CueWall:
		return "wall"
	case CuePaddle:
		return "paddle"
	case CuePoint:
		return "point"
	case CueWin:
		return "win"
	}
	return "unknown"
}

// AllCues lists every cue in table order.
func AllCues() []Cue {
	cues := make([]Cue, numCues)
	for i := range cues {
		cues[i] = Cue(i)
	}
	return cues
}

// Tone is one note of a cue.
type Tone struct {
	Freq float64 // Hz
	Dur  time.Duration
}

var cueTable = [numCues][]Tone{
	CueWall:   {{Freq: 440, Dur: 40 * time.Millisecond}},
	CuePaddle: {{Freq: 880, Dur: 50 * time.Millisecond}},
	CuePoint:  {{Freq: 330, Dur: 90 * time.Millisecond}, {Freq: 220, Dur: 160 * time.Millisecond}},
	CueWin: {
		{Freq: 523.25, Dur: 120 * time.Millisecond},
		{Freq: 659.25, Dur: 120 * time.Millisecond},
		{Freq: 783.99, Dur: 260 * time.Millisecond},
	},
}

// Tones returns the notes of c in play order.
func (c Cue) Tones() []Tone {
	if c >= numCues {
		return nil
	}
	return cueTable[c]
}

// Duration is the total length of c.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, t := range c.Tones() {
		d += t.Dur
	}
	return d
}

// CuesFor lists the cues an outcome should sound, in tick order: collisions,
// then the point, then the match win.
func CuesFor(out pong.Outcome) []Cue {
	var cues []Cue
	for _, ev := range out.Collisions {
		switch ev.Kind {
		case pong.WallHit:
			cues = append(cues, CueWall)
		case pong.PaddleHit:
			cues = append(cues, CuePaddle)
		}
	}
	if out.Scorer != pong.SideNone {
		cues = append(cues, CuePoint)
	}
	if t := out.Transition; t.Changed() && t.To == pong.PhaseStartScreen && t.Winner != pong.SideNone {
		cues = append(cues, CueWin)
	}
	return cues
}
