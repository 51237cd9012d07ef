package tsp

import (
	"math"
	"sync"
)

// incumbent is the best complete tour found so far. It is the only state
// shared between sibling branches: read before descending, written at leaves.
// The mutex makes replacement atomic (cost and tour change together) and
// keeps the parallel root fan-out race-free.
type incumbent struct {
	mu   sync.RWMutex
	cost float64
	tour []int
}

func newIncumbent() *incumbent {
	return &incumbent{cost: math.Inf(1)}
}

// best returns the current incumbent cost (+Inf before the first leaf).
func (in *incumbent) best() float64 {
	in.mu.RLock()
	defer in.mu.RUnlock()

	return in.cost
}

// offer records tour if cost is strictly lower than the incumbent.
// The check is repeated under the write lock so concurrent leaves cannot
// overwrite a better tour with a worse one.
func (in *incumbent) offer(cost float64, tour []int) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !(cost < in.cost) {
		return false
	}
	in.cost = cost
	in.tour = tour

	return true
}

// snapshot returns the incumbent cost and tour.
func (in *incumbent) snapshot() (float64, []int) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	return in.cost, in.tour
}
