package game

import "github.com/Garsondee/Pong/internal/pong"

// view maps court coordinates (origin at centre, +y up) to screen pixels
// (origin top-left, +y down). One court unit is one logical pixel.
type view struct {
	offX, offY float64
}

func (v view) toScreen(p pong.Vec2) (float32, float32) {
	return float32(v.offX + p.X + pong.CourtHalfWidth),
		float32(v.offY + pong.CourtHalfHeight - p.Y)
}

// rect returns the top-left corner and size of a box given its centre and
// half extents.
func (v view) rect(centre, half pong.Vec2) (x, y, w, h float32) {
	x, y = v.toScreen(pong.Vec2{X: centre.X - half.X, Y: centre.Y + half.Y})
	return x, y, float32(2 * half.X), float32(2 * half.Y)
}
