package airlock

// window is a fixed-capacity ring of probe outcomes. A write cursor evicts
// the oldest entry once capacity is reached, and a running count of the
// healthy entries avoids rescanning the ring on every health check.
type window struct {
	outcomes []bool
	cursor   int
	length   int
	healthy  int
}

func newWindow(capacity int) *window {
	return &window{outcomes: make([]bool, capacity)}
}

// push records one outcome, evicting the oldest when the ring is full.
func (w *window) push(healthy bool) {
	if w.length == len(w.outcomes) {
		if w.outcomes[w.cursor] {
			w.healthy--
		}
	} else {
		w.length++
	}
	w.outcomes[w.cursor] = healthy
	if healthy {
		w.healthy++
	}
	w.cursor = (w.cursor + 1) % len(w.outcomes)
}

func (w *window) healthyCount() int { return w.healthy }

func (w *window) len() int { return w.length }
