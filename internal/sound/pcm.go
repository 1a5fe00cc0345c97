package sound

import "math"

// decay is the exponential envelope rate per second applied to each note.
const decay = 3.0

// PCM16 renders c as interleaved 16-bit little-endian stereo samples, the
// format ebiten's audio context plays. volume is clamped to [0, 1].
func PCM16(c Cue, sampleRate int, volume float64) []byte {
	volume = math.Max(0, math.Min(1, volume))
	amp := 12000 * volume

	n := 0
	for _, t := range c.Tones() {
		n += int(float64(sampleRate) * t.Dur.Seconds())
	}
	buf := make([]byte, 0, n*4)
	for _, t := range c.Tones() {
		samples := int(float64(sampleRate) * t.Dur.Seconds())
		for i := 0; i < samples; i++ {
			x := float64(i) / float64(sampleRate)
			v := int16(math.Sin(2*math.Pi*t.Freq*x) * amp * math.Exp(-decay*x))
			for ch := 0; ch < 2; ch++ {
				buf = append(buf, byte(v), byte(v>>8))
			}
		}
	}
	return buf
}
