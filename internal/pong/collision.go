package pong

import "math"

// CollisionKind tags a CollisionEvent.
type CollisionKind uint8

const (
	WallHit CollisionKind = iota
	PaddleHit
)

func (k CollisionKind) String() string {
	if k == PaddleHit {
		return "paddle_hit"
	}
	return "wall_hit"
}

// CollisionEvent is emitted for the tick in which a contact happened. Side is
// set for paddle hits and SideNone for walls.
type CollisionEvent struct {
	Kind CollisionKind
	Side Side
}

// resolveWall reflects the ball off the top or bottom wall. The reflection only
// fires while the ball is still travelling outward, so a ball that is already
// heading back into the court is not flipped again on the next tick.
func resolveWall(b *Ball) (CollisionEvent, bool) {
	if math.Abs(b.Pos.Y)+b.Half.Y <= CourtHalfHeight {
		return CollisionEvent{}, false
	}
	if b.Pos.Y*b.Vel.Y <= 0 {
		return CollisionEvent{}, false
	}
	b.Vel.Y = -b.Vel.Y
	return CollisionEvent{Kind: WallHit}, true
}

// resolvePaddle bounces the ball off p if their boxes overlap. A bounce fires
// on the first tick of an overlap only; p.contact suppresses repeats until the
// boxes separate.
func resolvePaddle(b *Ball, p *Paddle, maxAngle float64) (CollisionEvent, bool) {
	if !aabbOverlap(b.Pos, b.Half, p.Pos, p.Half) {
		p.contact = false
		return CollisionEvent{}, false
	}
	if p.contact {
		return CollisionEvent{}, false
	}
	p.contact = true
	bounceOffPaddle(b, p, maxAngle)
	return CollisionEvent{Kind: PaddleHit, Side: p.Side}, true
}

// bounceOffPaddle remaps the ball direction from the impact offset, keeping the
// speed. Centre hits leave horizontally, edge hits leave at ±maxAngle.
func bounceOffPaddle(b *Ball, p *Paddle, maxAngle float64) {
	intersect := clamp((b.Pos.Y-p.Pos.Y)/p.Half.Y, -1, 1)
	angle := intersect * maxAngle

	// Send the ball back toward the court centre.
	dir := 1.0
	if p.Pos.X > 0 {
		dir = -1
	}

	speed := b.Speed()
	b.Vel = Vec2{
		X: dir * speed * math.Cos(angle),
		Y: speed * math.Sin(angle),
	}
}
