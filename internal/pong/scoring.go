package pong

// outOfBounds returns the side that wins the point when the ball has left the
// court horizontally, or SideNone. The two checks are exclusive.
func outOfBounds(b *Ball) Side {
	if b.Pos.X < -CourtHalfWidth {
		return SideRight
	} else if b.Pos.X > CourtHalfWidth {
		return SideLeft
	}
	return SideNone
}

// scorePoint awards a point and re-serves when the ball is out. It returns the
// scoring side or SideNone.
func (s *Sim) scorePoint() Side {
	scorer := outOfBounds(&s.ball)
	if scorer == SideNone {
		return SideNone
	}
	s.score.add(scorer)
	s.serve()
	return scorer
}

// serve puts the ball at the centre moving horizontally at base speed, toward a
// side chosen uniformly at random.
func (s *Sim) serve() {
	dir := float64(s.rng.Intn(2)*2 - 1)
	s.ball.Pos = Vec2{}
	s.ball.Vel = Vec2{X: dir * s.rules.BaseSpeed}
}
