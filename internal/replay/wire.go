package replay

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Garsondee/Pong/internal/pong"
)

// Header fields.
const (
	hdrSession protowire.Number = 1
	hdrSeed    protowire.Number = 2
	hdrRules   protowire.Number = 3
)

// Rules fields.
const (
	rulesPaddleSpeed    protowire.Number = 1
	rulesBaseSpeed      protowire.Number = 2
	rulesMaxSpeed       protowire.Number = 3
	rulesRampInterval   protowire.Number = 4
	rulesRampFactor     protowire.Number = 5
	rulesMaxBounceAngle protowire.Number = 6
	rulesWinScore       protowire.Number = 7
)

// Frame fields.
const (
	frTick       protowire.Number = 1
	frDT         protowire.Number = 2
	frHeld       protowire.Number = 3
	frPressed    protowire.Number = 4 // packed varints
	frBallX      protowire.Number = 5
	frBallY      protowire.Number = 6
	frBallVX     protowire.Number = 7
	frBallVY     protowire.Number = 8
	frLeftY      protowire.Number = 9
	frRightY     protowire.Number = 10
	frScoreLeft  protowire.Number = 11
	frScoreRight protowire.Number = 12
	frPhase      protowire.Number = 13
	frWinner     protowire.Number = 14
)

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendUvarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func marshalRules(r pong.Rules) []byte {
	var b []byte
	b = appendDouble(b, rulesPaddleSpeed, r.PaddleSpeed)
	b = appendDouble(b, rulesBaseSpeed, r.BaseSpeed)
	b = appendDouble(b, rulesMaxSpeed, r.MaxSpeed)
	b = appendDouble(b, rulesRampInterval, r.RampInterval)
	b = appendDouble(b, rulesRampFactor, r.RampFactor)
	b = appendDouble(b, rulesMaxBounceAngle, r.MaxBounceAngle)
	b = appendUvarint(b, rulesWinScore, uint64(r.WinScore))
	return b
}

func marshalHeader(h Header) []byte {
	var b []byte
	b = protowire.AppendTag(b, hdrSession, protowire.BytesType)
	b = protowire.AppendString(b, h.Session)
	b = appendUvarint(b, hdrSeed, h.Seed)
	b = protowire.AppendTag(b, hdrRules, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalRules(h.Rules))
	return b
}

func marshalFrame(f Frame) []byte {
	var b []byte
	b = appendUvarint(b, frTick, uint64(f.Tick))
	b = appendDouble(b, frDT, f.DT)
	b = appendUvarint(b, frHeld, uint64(f.Held))
	if len(f.Pressed) > 0 {
		var packed []byte
		for _, k := range f.Pressed {
			packed = protowire.AppendVarint(packed, uint64(k))
		}
		b = protowire.AppendTag(b, frPressed, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	b = appendDouble(b, frBallX, f.BallPos.X)
	b = appendDouble(b, frBallY, f.BallPos.Y)
	b = appendDouble(b, frBallVX, f.BallVel.X)
	b = appendDouble(b, frBallVY, f.BallVel.Y)
	b = appendDouble(b, frLeftY, f.LeftY)
	b = appendDouble(b, frRightY, f.RightY)
	b = appendUvarint(b, frScoreLeft, uint64(f.Score.Left))
	b = appendUvarint(b, frScoreRight, uint64(f.Score.Right))
	b = appendUvarint(b, frPhase, uint64(f.Phase))
	b = appendUvarint(b, frWinner, uint64(f.Winner))
	return b
}

// field is one decoded tag/value pair. Exactly one of the value fields is
// meaningful, depending on typ.
type field struct {
	num   protowire.Number
	typ   protowire.Type
	u64   uint64
	bytes []byte
}

func (f field) double() float64 {
	return math.Float64frombits(f.u64)
}

// walk calls fn for every field in a message. Group types are rejected.
func walk(b []byte, fn func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.u64, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.u64, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			f.u64 = uint64(v)
		default:
			return fmt.Errorf("field %d: unsupported wire type %d", num, typ)
		}
		if n < 0 {
			return fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalRules(b []byte) (pong.Rules, error) {
	var r pong.Rules
	err := walk(b, func(f field) error {
		switch f.num {
		case rulesPaddleSpeed:
			r.PaddleSpeed = f.double()
		case rulesBaseSpeed:
			r.BaseSpeed = f.double()
		case rulesMaxSpeed:
			r.MaxSpeed = f.double()
		case rulesRampInterval:
			r.RampInterval = f.double()
		case rulesRampFactor:
			r.RampFactor = f.double()
		case rulesMaxBounceAngle:
			r.MaxBounceAngle = f.double()
		case rulesWinScore:
			r.WinScore = int(f.u64)
		}
		return nil
	})
	return r, err
}

func unmarshalHeader(b []byte) (Header, error) {
	var h Header
	err := walk(b, func(f field) error {
		switch f.num {
		case hdrSession:
			h.Session = string(f.bytes)
		case hdrSeed:
			h.Seed = f.u64
		case hdrRules:
			r, err := unmarshalRules(f.bytes)
			if err != nil {
				return fmt.Errorf("rules: %w", err)
			}
			h.Rules = r
		}
		return nil
	})
	return h, err
}

func unmarshalFrame(b []byte) (Frame, error) {
	var fr Frame
	err := walk(b, func(f field) error {
		switch f.num {
		case frTick:
			fr.Tick = int(f.u64)
		case frDT:
			fr.DT = f.double()
		case frHeld:
			fr.Held = pong.KeySet(f.u64)
		case frPressed:
			packed := f.bytes
			for len(packed) > 0 {
				v, n := protowire.ConsumeVarint(packed)
				if n < 0 {
					return fmt.Errorf("pressed keys: %w", protowire.ParseError(n))
				}
				fr.Pressed = append(fr.Pressed, pong.Key(v))
				packed = packed[n:]
			}
		case frBallX:
			fr.BallPos.X = f.double()
		case frBallY:
			fr.BallPos.Y = f.double()
		case frBallVX:
			fr.BallVel.X = f.double()
		case frBallVY:
			fr.BallVel.Y = f.double()
		case frLeftY:
			fr.LeftY = f.double()
		case frRightY:
			fr.RightY = f.double()
		case frScoreLeft:
			fr.Score.Left = int(f.u64)
		case frScoreRight:
			fr.Score.Right = int(f.u64)
		case frPhase:
			fr.Phase = pong.Phase(f.u64)
		case frWinner:
			fr.Winner = pong.Side(f.u64)
		}
		return nil
	})
	return fr, err
}
