package pong

// Ball is the single ball in play.
type Ball struct {
	Pos  Vec2
	Vel  Vec2
	Half Vec2
}

func newBall() Ball {
	return Ball{Half: Vec2{X: BallHalfSize, Y: BallHalfSize}}
}

// Speed returns the current velocity magnitude.
func (b Ball) Speed() float64 {
	return b.Vel.Len()
}

// integrate advances the ball along its velocity. It is the only place the
// position changes outside of a serve.
func (b *Ball) integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}
