package config

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Pong/internal/pong"
)

// Keys binds each simulation key to a physical key name. Names follow
// ebiten's key naming ("W", "ArrowUp", "Digit1", "Escape") and are matched
// case-insensitively.
type Keys struct {
	LeftUp    string `toml:"left_up"`
	LeftDown  string `toml:"left_down"`
	RightUp   string `toml:"right_up"`
	RightDown string `toml:"right_down"`
	Exit      string `toml:"exit"`
}

func DefaultKeys() Keys {
	return Keys{
		LeftUp:    "W",
		LeftDown:  "S",
		RightUp:   "ArrowUp",
		RightDown: "ArrowDown",
		Exit:      "Escape",
	}
}

// KeyNames lists the physical key names both front ends can report.
var KeyNames = func() []string {
	names := []string{
		"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight",
		"Space", "Enter", "Escape", "Tab", "Backspace",
	}
	for c := 'A'; c <= 'Z'; c++ {
		names = append(names, string(c))
	}
	for d := '0'; d <= '9'; d++ {
		names = append(names, "Digit"+string(d))
	}
	return names
}()

var canonical = func() map[string]string {
	m := make(map[string]string, len(KeyNames))
	for _, n := range KeyNames {
		m[strings.ToLower(n)] = n
	}
	return m
}()

// CanonicalKey returns the canonical spelling of a key name.
func CanonicalKey(name string) (string, error) {
	c, ok := canonical[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return c, nil
}

func (k Keys) bindings() []struct {
	name string
	key  pong.Key
} {
	return []struct {
		name string
		key  pong.Key
	}{
		{k.LeftUp, pong.KeyLeftUp},
		{k.LeftDown, pong.KeyLeftDown},
		{k.RightUp, pong.KeyRightUp},
		{k.RightDown, pong.KeyRightDown},
		{k.Exit, pong.KeyExit},
	}
}

// Validate rejects unknown names and keys bound twice.
func (k Keys) Validate() error {
	seen := make(map[string]pong.Key)
	for _, b := range k.bindings() {
		c, err := CanonicalKey(b.name)
		if err != nil {
			return fmt.Errorf("keys.%s: %w", b.key, err)
		}
		if prev, dup := seen[c]; dup {
			return fmt.Errorf("%w: %s is bound to both %s and %s", ErrInvalid, c, prev, b.key)
		}
		seen[c] = b.key
	}
	return nil
}

// Lookup maps a physical key name to its simulation key. Unbound names map to
// KeyOther.
func (k Keys) Lookup(name string) pong.Key {
	c, err := CanonicalKey(name)
	if err != nil {
		return pong.KeyOther
	}
	for _, b := range k.bindings() {
		if bc, err := CanonicalKey(b.name); err == nil && bc == c {
			return b.key
		}
	}
	return pong.KeyOther
}

// Table returns the canonical-name to key map for every bound key.
func (k Keys) Table() map[string]pong.Key {
	t := make(map[string]pong.Key, 5)
	for _, b := range k.bindings() {
		if c, err := CanonicalKey(b.name); err == nil {
			t[c] = b.key
		}
	}
	return t
}
