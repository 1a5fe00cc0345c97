// Package replay records simulation runs as length-delimited protobuf-wire
// messages and verifies that a recording replays to the same states.
//
// A recording is one Header record followed by one Frame record per tick. Each
// record is a varint byte length followed by the message bytes.
package replay

import (
	"errors"
	"fmt"

	"github.com/Garsondee/Pong/internal/pong"
)

// ErrDiverged is returned by Verify when a replayed state differs from the
// recorded one.
var ErrDiverged = errors.New("replay diverged")

// Header opens a recording.
type Header struct {
	Session string // recording id
	Seed    uint64
	Rules   pong.Rules
}

// Frame is one recorded tick: the input that was fed to Step and the state
// right after it.
type Frame struct {
	Tick    int
	DT      float64
	Held    pong.KeySet
	Pressed []pong.Key

	BallPos pong.Vec2
	BallVel pong.Vec2
	LeftY   float64
	RightY  float64
	Score   pong.Score
	Phase   pong.Phase
	Winner  pong.Side
}

// NewFrame captures a tick from its input and the post-tick snapshot.
func NewFrame(in pong.Input, dt float64, snap pong.Snapshot) Frame {
	return Frame{
		Tick:    snap.Tick,
		DT:      dt,
		Held:    in.Held,
		Pressed: append([]pong.Key(nil), in.Pressed...),
		BallPos: snap.Ball.Pos,
		BallVel: snap.Ball.Vel,
		LeftY:   snap.Left.Pos.Y,
		RightY:  snap.Right.Pos.Y,
		Score:   snap.Score,
		Phase:   snap.Phase,
		Winner:  snap.Winner,
	}
}

// Input returns the recorded input.
func (f Frame) Input() pong.Input {
	return pong.Input{Held: f.Held, Pressed: f.Pressed}
}

// diff returns a description of the first field that differs, or "".
func (f Frame) diff(o Frame) string {
	switch {
	case f.BallPos != o.BallPos:
		return fmt.Sprintf("ball position %+v != %+v", f.BallPos, o.BallPos)
	case f.BallVel != o.BallVel:
		return fmt.Sprintf("ball velocity %+v != %+v", f.BallVel, o.BallVel)
	case f.LeftY != o.LeftY || f.RightY != o.RightY:
		return fmt.Sprintf("paddles (%.3f,%.3f) != (%.3f,%.3f)", f.LeftY, f.RightY, o.LeftY, o.RightY)
	case f.Score != o.Score:
		return fmt.Sprintf("score %s != %s", f.Score, o.Score)
	case f.Phase != o.Phase || f.Winner != o.Winner:
		return fmt.Sprintf("phase %s/%s != %s/%s", f.Phase, f.Winner, o.Phase, o.Winner)
	}
	return ""
}
