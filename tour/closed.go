package tour

import (
	"errors"

	"github.com/katalvlaran/salesman/geom"
)

// Sentinel errors returned by Validate.
var (
	// ErrLength indicates len(t) != n+1 or n <= 0.
	ErrLength = errors.New("tour: length must be n+1")

	// ErrNotClosed indicates the tour does not start and end at the origin.
	ErrNotClosed = errors.New("tour: must start and end at the origin")

	// ErrOutOfRange indicates an index outside [0, n).
	ErrOutOfRange = errors.New("tour: index out of range")

	// ErrDuplicate indicates an index visited more than once.
	ErrDuplicate = errors.New("tour: index visited twice")
)

// Validate enforces the closed Hamiltonian cycle invariants:
// len(t) == n+1, t[0] == t[n] == origin, and t[0:n] is a permutation of [0, n).
//
// Complexity: O(n) time, O(n) space.
func Validate(t []int, n, origin int) error {
	if n <= 0 || len(t) != n+1 {
		return ErrLength
	}
	if origin < 0 || origin >= n {
		return ErrOutOfRange
	}
	if t[0] != origin || t[n] != origin {
		return ErrNotClosed
	}

	seen := make([]bool, n)
	var (
		i, v int
	)
	for i = 0; i < n; i++ {
		v = t[i]
		if v < 0 || v >= n {
			return ErrOutOfRange
		}
		if seen[v] {
			return ErrDuplicate
		}
		seen[v] = true
	}

	return nil
}

// Length sums the Euclidean legs of t over points. t is walked as given, so a
// closed tour yields the cycle length and an open one the path length.
//
// Complexity: O(len(t)).
func Length(points []geom.Point, t []int) float64 {
	var sum float64
	for k := 1; k < len(t); k++ {
		sum += points[t[k-1]].DistanceTo(points[t[k]])
	}

	return sum
}
