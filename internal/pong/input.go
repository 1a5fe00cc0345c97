package pong

// Key is a logical key as seen by the simulation. Front ends translate physical
// keys through their bindings; anything unbound arrives as KeyOther.
type Key uint8

const (
	KeyOther Key = iota
	KeyLeftUp
	KeyLeftDown
	KeyRightUp
	KeyRightDown
	KeyExit
)

func (k Key) String() string {
	switch k {
	case KeyLeftUp:
		return "left_up"
	case KeyLeftDown:
		return "left_down"
	case KeyRightUp:
		return "right_up"
	case KeyRightDown:
		return "right_down"
	case KeyExit:
		return "exit"
	default:
		return "other"
	}
}

// KeySet is a small bitset of logical keys.
type KeySet uint8

// Keys builds a KeySet from the given keys.
func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

func (s *KeySet) Add(k Key) {
	*s |= 1 << k
}

func (s *KeySet) Remove(k Key) {
	*s &^= 1 << k
}

// Input is the per-tick snapshot supplied by the input collaborator.
type Input struct {
	Held    KeySet // keys currently down
	Pressed []Key  // keys that went from up to down this tick
}

// pressed reports whether k is among the newly pressed keys.
func (in Input) pressed(k Key) bool {
	for _, p := range in.Pressed {
		if p == k {
			return true
		}
	}
	return false
}
