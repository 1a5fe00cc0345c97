package term

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Pong/internal/pong"
)

// Terminals report key presses and auto-repeats but never releases, so a
// paddle key counts as held for a window after its last event. The first
// window is long enough to bridge the terminal's initial repeat delay.
const (
	DefaultInitialHold = 500 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

// keyName maps a tcell key event to the key names used by config bindings.
// It returns "" for keys with no name.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == ' ':
			return "Space"
		case r >= '0' && r <= '9':
			return "Digit" + string(r)
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			return string(unicode.ToUpper(r))
		}
	}
	return ""
}

// KeyHold turns a stream of key events into a held-key set.
type KeyHold struct {
	Initial time.Duration
	Repeat  time.Duration

	until map[pong.Key]time.Time
}

func NewKeyHold() *KeyHold {
	return &KeyHold{
		Initial: DefaultInitialHold,
		Repeat:  DefaultRepeatHold,
		until:   make(map[pong.Key]time.Time),
	}
}

// opposite returns the other direction key of the same paddle.
func opposite(k pong.Key) (pong.Key, bool) {
	switch k {
	case pong.KeyLeftUp:
		return pong.KeyLeftDown, true
	case pong.KeyLeftDown:
		return pong.KeyLeftUp, true
	case pong.KeyRightUp:
		return pong.KeyRightDown, true
	case pong.KeyRightDown:
		return pong.KeyRightUp, true
	}
	return pong.KeyOther, false
}

// Press records an event for k at now. Only paddle keys are tracked; a press
// releases the opposite direction of the same paddle.
func (h *KeyHold) Press(k pong.Key, now time.Time) {
	opp, ok := opposite(k)
	if !ok {
		return
	}
	delete(h.until, opp)
	window := h.Repeat
	if !h.held(k, now) {
		window = h.Initial
	}
	if t := now.Add(window); t.After(h.until[k]) {
		h.until[k] = t
	}
}

func (h *KeyHold) held(k pong.Key, now time.Time) bool {
	t, ok := h.until[k]
	return ok && now.Before(t)
}

// Held returns the keys still within their hold window at now and forgets
// the expired ones.
func (h *KeyHold) Held(now time.Time) pong.KeySet {
	var s pong.KeySet
	for k, t := range h.until {
		if now.Before(t) {
			s.Add(k)
		} else {
			delete(h.until, k)
		}
	}
	return s
}
