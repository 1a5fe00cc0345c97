package game

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/Pong/internal/sound"
)

const sampleRate = 44100

// audioBank holds one pre-rendered player per cue.
type audioBank struct {
	players map[sound.Cue]*audio.Player
}

func newAudioBank(volume float64) *audioBank {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	b := &audioBank{players: make(map[sound.Cue]*audio.Player)}
	for _, c := range sound.AllCues() {
		b.players[c] = ctx.NewPlayerFromBytes(sound.PCM16(c, sampleRate, volume))
	}
	return b
}

// play restarts the cue from the beginning.
func (b *audioBank) play(c sound.Cue) {
	p, ok := b.players[c]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}
