package tui

// nav implements vim-style list movement: j/k with an optional count
// prefix, gg/G jumps, and ctrl-d/ctrl-u half-page moves. Movement wraps
// around the list.
type nav struct {
	count    int
	hasCount bool
	pendingG bool
}

// navResult reports how a key was consumed.
type navResult int

const (
	// navIgnored means the key is not a navigation key.
	navIgnored navResult = iota
	// navPrefix means the key extended a pending count or g prefix.
	navPrefix
	// navMoved means the selection index changed (or stayed, for a
	// same-position jump).
	navMoved
)

// handle processes one key against the current selection. half is the
// half-page size for ctrl-d/ctrl-u.
func (n *nav) handle(key string, index, length, half int) (int, navResult) {
	if length == 0 {
		return index, navIgnored
	}
	if n.pendingG {
		n.pendingG = false
		n.reset()
		if key == "g" {
			return 0, navMoved
		}
		// Fall through: the key after a dangling g is handled normally.
	}

	switch key {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n.count = n.count*10 + int(key[0]-'0')
		n.hasCount = true
		return index, navPrefix
	case "0":
		if n.hasCount {
			n.count *= 10
			return index, navPrefix
		}
		return index, navIgnored
	}

	steps := 1
	if n.hasCount {
		steps = n.count
	}
	n.reset()

	switch key {
	case "j":
		return (index + steps) % length, navMoved
	case "k":
		return ((index-steps)%length + length) % length, navMoved
	case "g":
		n.pendingG = true
		return index, navPrefix
	case "G":
		return length - 1, navMoved
	case "ctrl+d":
		if half < 1 {
			half = 1
		}
		return (index + half) % length, navMoved
	case "ctrl+u":
		if half < 1 {
			half = 1
		}
		return ((index-half)%length + length) % length, navMoved
	}
	return index, navIgnored
}

func (n *nav) reset() {
	n.count = 0
	n.hasCount = false
}
