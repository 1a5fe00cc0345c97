package pong

import "math"

// Court geometry. The origin is the court centre, +x right, +y up.
const (
	CourtHalfWidth  = 350.0
	CourtHalfHeight = 250.0

	PaddleHalfWidth  = 10.0
	PaddleHalfHeight = 75.0
	PaddleOffsetX    = 300.0 // |x| of each paddle centre

	BallHalfSize = 10.0
)

// Rules holds the tuning values of a match. Court geometry is fixed and lives in
// the constants above.
type Rules struct {
	PaddleSpeed    float64 // units/s
	BaseSpeed      float64 // serve speed and lower speed bound, units/s
	MaxSpeed       float64 // upper speed bound applied after each escalation
	RampInterval   float64 // seconds of play between escalations
	RampFactor     float64 // velocity multiplier per escalation
	MaxBounceAngle float64 // radians
	WinScore       int
}

// DefaultRules returns the standard match tuning.
func DefaultRules() Rules {
	return Rules{
		PaddleSpeed:    400,
		BaseSpeed:      300,
		MaxSpeed:       900,
		RampInterval:   10,
		RampFactor:     1.1,
		MaxBounceAngle: math.Pi / 8,
		WinScore:       10,
	}
}
