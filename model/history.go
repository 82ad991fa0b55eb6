package model

const (
	// historyDepth bounds how many recent generation hashes are retained.
	historyDepth = 5
	// cycleWindow is how far back a repeated hash counts as stagnation,
	// which catches static boards and period-2/3 oscillators.
	cycleWindow = 3
)

// History tracks the hashes of recent generations for stagnation and cycle
// detection. Grid itself is immutable, so the runner owns the history and
// records each generation it adopts.
type History struct {
	hashes []string
}

func NewHistory() *History {
	return &History{}
}

// Record appends a generation hash, discarding the oldest beyond the
// retained depth.
func (h *History) Record(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historyDepth {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether the given hash matches any of the most recent
// recorded generations, meaning the board is static or cycling.
func (h *History) IsStagnant(current string) bool {
	if len(h.hashes) < cycleWindow {
		return false
	}
	for i := 1; i <= cycleWindow && i <= len(h.hashes); i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset clears the recorded history, used after a board restart.
func (h *History) Reset() {
	h.hashes = nil
}
