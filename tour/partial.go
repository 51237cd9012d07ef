// Package tour holds tour representations: the immutable Partial tour grown
// by the branch-and-bound search, and helpers over closed tours.
//
// A closed tour over n points is a slice of length n+1 that starts and ends
// at the origin and visits every other index exactly once.
package tour

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Partial is an ordered, append-only sequence of point indices starting at a
// fixed origin. Values are immutable: Add returns a new Partial and never
// touches the receiver, so siblings derived from one parent cannot observe
// each other's extensions.
//
// The zero value is an empty tour; use At to obtain a usable one.
type Partial struct {
	seq  []int    // visiting order; seq[0] is the origin
	seen []uint64 // membership bitset over indices
}

// At returns the singleton tour containing only origin.
// It panics if origin is negative.
func At(origin int) Partial {
	mustIndex(origin)
	seen := make([]uint64, origin/64+1)
	seen[origin/64] |= 1 << (uint(origin) % 64)

	return Partial{seq: []int{origin}, seen: seen}
}

// Add returns a new tour with i appended. The receiver is left unchanged.
// Adding an index already on the tour, or a negative one, panics: it would
// break the one-visit-per-point invariant.
//
// Complexity: O(len + maxIndex/64).
func (p Partial) Add(i int) Partial {
	mustIndex(i)
	if len(p.seq) == 0 {
		panic("tour: Add on empty Partial; use At")
	}
	if p.Has(i) {
		panic(fmt.Sprintf("tour: index %d already visited in %v", i, p))
	}

	seq := make([]int, len(p.seq)+1)
	copy(seq, p.seq)
	seq[len(p.seq)] = i

	words := len(p.seen)
	if need := i/64 + 1; need > words {
		words = need
	}
	seen := make([]uint64, words)
	copy(seen, p.seen)
	seen[i/64] |= 1 << (uint(i) % 64)

	return Partial{seq: seq, seen: seen}
}

// Has reports whether index i is already on the tour.
func (p Partial) Has(i int) bool {
	if i < 0 || i/64 >= len(p.seen) {
		return false
	}

	return p.seen[i/64]&(1<<(uint(i)%64)) != 0
}

// Last returns the most recently added index.
func (p Partial) Last() int { return p.seq[len(p.seq)-1] }

// Origin returns the first index of the tour.
func (p Partial) Origin() int { return p.seq[0] }

// Size returns the number of indices on the tour.
func (p Partial) Size() int { return len(p.seq) }

// Visited returns the number of distinct indices (always equal to Size).
func (p Partial) Visited() int {
	c := 0
	for _, w := range p.seen {
		c += bits.OnesCount64(w)
	}

	return c
}

// Indices returns a copy of the visiting order.
func (p Partial) Indices() []int {
	out := make([]int, len(p.seq))
	copy(out, p.seq)

	return out
}

// Closed returns the visiting order with the origin appended.
func (p Partial) Closed() []int {
	out := make([]int, len(p.seq)+1)
	copy(out, p.seq)
	out[len(p.seq)] = p.seq[0]

	return out
}

// String renders the tour as "[0 3 1]".
func (p Partial) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for k, v := range p.seq {
		if k > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(']')

	return sb.String()
}

func mustIndex(i int) {
	if i < 0 {
		panic(fmt.Sprintf("tour: negative index %d", i))
	}
}
