package pong

// rampSpeed accumulates play time and, every RampInterval seconds, scales the
// ball velocity by RampFactor. The resulting speed is kept within
// [BaseSpeed, MaxSpeed]; a non-positive MaxSpeed disables the upper bound.
func rampSpeed(t *RoundTimer, b *Ball, r Rules, dt float64) bool {
	t.Elapsed += dt
	if t.Elapsed < r.RampInterval {
		return false
	}
	t.Elapsed = 0

	b.Vel = b.Vel.Scale(r.RampFactor)
	speed := b.Speed()
	if speed == 0 {
		return true
	}
	bounded := speed
	if bounded < r.BaseSpeed {
		bounded = r.BaseSpeed
	}
	if r.MaxSpeed > 0 && bounded > r.MaxSpeed {
		bounded = r.MaxSpeed
	}
	if bounded != speed {
		b.Vel = b.Vel.WithLen(bounded)
	}
	return true
}
