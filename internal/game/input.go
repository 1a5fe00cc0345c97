package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Pong/internal/config"
	"github.com/Garsondee/Pong/internal/pong"
)

// keyMap translates ebiten keys to simulation keys.
type keyMap struct {
	table    map[ebiten.Key]pong.Key
	reserved map[ebiten.Key]bool // front-end keys never passed to the simulation
	buf      []ebiten.Key
}

// newKeyMap resolves the configured names against ebiten's key names.
func newKeyMap(k config.Keys, reserved ...ebiten.Key) *keyMap {
	names := k.Table()
	m := &keyMap{
		table:    make(map[ebiten.Key]pong.Key, len(names)),
		reserved: make(map[ebiten.Key]bool, len(reserved)),
	}
	for _, key := range reserved {
		m.reserved[key] = true
	}
	for key := ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		if pk, ok := names[key.String()]; ok {
			m.table[key] = pk
		}
	}
	return m
}

// lookup returns KeyOther for unbound keys.
func (m *keyMap) lookup(k ebiten.Key) pong.Key {
	if pk, ok := m.table[k]; ok {
		return pk
	}
	return pong.KeyOther
}

// input builds the tick input from a held-state query and the keys that went
// down this frame.
func (m *keyMap) input(isHeld func(ebiten.Key) bool, justPressed []ebiten.Key) pong.Input {
	var in pong.Input
	for key, pk := range m.table {
		if isHeld(key) {
			in.Held.Add(pk)
		}
	}
	for _, key := range justPressed {
		if m.reserved[key] {
			continue
		}
		in.Pressed = append(in.Pressed, m.lookup(key))
	}
	return in
}

// poll reads the keyboard. Must be called from Update.
func (m *keyMap) poll() pong.Input {
	m.buf = inpututil.AppendJustPressedKeys(m.buf[:0])
	return m.input(ebiten.IsKeyPressed, m.buf)
}
