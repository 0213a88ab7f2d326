package airlock

import (
	"math/rand"
	"testing"
)

func TestWindowEmpty(t *testing.T) {
	// No recorded history, no healthy outcomes.
	w := newWindow(3)
	if want, have := 0, w.len(); want != have {
		t.Errorf("len: want %d, have %d", want, have)
	}
	if want, have := 0, w.healthyCount(); want != have {
		t.Errorf("healthyCount: want %d, have %d", want, have)
	}
}

func TestWindowEviction(t *testing.T) {
	w := newWindow(2)
	w.push(true)
	w.push(false)
	w.push(false) // evicts the first, healthy outcome
	if want, have := 2, w.len(); want != have {
		t.Errorf("len: want %d, have %d", want, have)
	}
	if want, have := 0, w.healthyCount(); want != have {
		t.Errorf("healthyCount: want %d, have %d", want, have)
	}
	w.push(true) // evicts an unhealthy outcome
	if want, have := 1, w.healthyCount(); want != have {
		t.Errorf("healthyCount: want %d, have %d", want, have)
	}
}

func TestWindowLengthBounded(t *testing.T) {
	w := newWindow(5)
	for i := 0; i < 100; i++ {
		w.push(i%3 == 0)
		if w.len() > 5 {
			t.Fatalf("after %d pushes, len %d exceeds capacity", i+1, w.len())
		}
	}
	if want, have := 5, w.len(); want != have {
		t.Errorf("len: want %d, have %d", want, have)
	}
}

func TestWindowCountMatchesContents(t *testing.T) {
	// The running count must agree with a naive recount of the ring after
	// any sequence of pushes.
	r := rand.New(rand.NewSource(29))
	w := newWindow(7)
	for i := 0; i < 1000; i++ {
		w.push(r.Intn(2) == 0)
		var recount int
		for j := 0; j < w.length; j++ {
			if w.outcomes[j] {
				recount++
			}
		}
		if want, have := recount, w.healthyCount(); want != have {
			t.Fatalf("after %d pushes: want %d, have %d", i+1, want, have)
		}
	}
}
