package pong

// Paddle is one player's bat. Only Pos.Y moves after construction.
type Paddle struct {
	Side    Side
	Pos     Vec2
	Half    Vec2
	UpKey   Key
	DownKey Key

	// contact is set while the ball overlaps this paddle after a bounce,
	// so a sustained overlap remaps the velocity only once.
	contact bool
}

func newPaddle(side Side) Paddle {
	p := Paddle{
		Side: side,
		Half: Vec2{X: PaddleHalfWidth, Y: PaddleHalfHeight},
	}
	if side == SideLeft {
		p.Pos.X = -PaddleOffsetX
		p.UpKey, p.DownKey = KeyLeftUp, KeyLeftDown
	} else {
		p.Pos.X = PaddleOffsetX
		p.UpKey, p.DownKey = KeyRightUp, KeyRightDown
	}
	return p
}

// Limit returns the largest |y| the paddle centre may reach.
func (p Paddle) Limit() float64 {
	return CourtHalfHeight - p.Half.Y
}

// movePaddle applies held-key displacement and clamps to the court. Holding
// both keys moves up then down by the same amount, so there is no net motion.
func movePaddle(p *Paddle, held KeySet, speed, dt float64) {
	if held.Has(p.UpKey) {
		p.Pos.Y += speed * dt
	}
	if held.Has(p.DownKey) {
		p.Pos.Y -= speed * dt
	}
	lim := p.Limit()
	p.Pos.Y = clamp(p.Pos.Y, -lim, lim)
}
