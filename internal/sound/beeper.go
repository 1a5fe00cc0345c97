package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// BeeperRate is the speaker sample rate used by Beeper.
const BeeperRate = beep.SampleRate(44100)

// Beeper plays cues on the system speaker. A Beeper whose speaker could not be
// opened stays usable and silently drops cues.
type Beeper struct {
	mu     sync.Mutex
	volume float64
	ready  bool
}

// NewBeeper opens the speaker. On failure it returns a silent Beeper together
// with the error, so callers may log and carry on.
func NewBeeper(volume float64) (*Beeper, error) {
	b := &Beeper{volume: volume}
	if err := speaker.Init(BeeperRate, BeeperRate.N(time.Second/10)); err != nil {
		return b, fmt.Errorf("init speaker: %w", err)
	}
	b.ready = true
	return b, nil
}

// Play queues c. It does not block.
func (b *Beeper) Play(c Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return
	}
	s, err := Streamer(c, BeeperRate, b.volume)
	if err != nil {
		return
	}
	speaker.Play(s)
}

func (b *Beeper) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ready {
		speaker.Close()
		b.ready = false
	}
}

// Streamer builds a finite beep streamer for c at the given rate. volume is
// linear in [0, 1]; 0 yields a silent streamer of the same length.
func Streamer(c Cue, sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	tones := c.Tones()
	if len(tones) == 0 {
		return nil, fmt.Errorf("cue %s has no tones", c)
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sr, t.Freq)
		if err != nil {
			return nil, fmt.Errorf("cue %s: %w", c, err)
		}
		parts = append(parts, beep.Take(sr.N(t.Dur), sine))
	}
	vol := &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
	}
	if volume <= 0 {
		vol.Silent = true
	} else {
		vol.Volume = math.Log2(math.Min(volume, 1))
	}
	return vol, nil
}
