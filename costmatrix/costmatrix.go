// Package costmatrix implements the reduced-cost matrix used as the bounding
// function of the branch-and-bound solver (Little's algorithm).
//
// A CostMatrix is an n×n row-major matrix of edge costs. Self-edges and
// resolved edges hold Sentinel, a value no real distance can take. The two
// mutating operations are:
//
//   - ReduceAndCost: subtract per-row then per-column minima (ignoring
//     Sentinel), returning their sum as an admissible lower-bound addition.
//   - ExcludePath: commit an edge from→to and forbid any further departure
//     from 'from' or arrival at 'to'.
//
// Both mutate in place. Every search node owns its own Copy, so siblings
// never observe each other's reductions.
//
// Index errors are programming defects and panic; there is no recoverable
// error path once a matrix has been built.
package costmatrix

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/salesman/geom"
)

// Sentinel marks an edge that must be ignored (self-edge or already resolved).
// Real distances are non-negative, so -1 can never collide with one.
const Sentinel = -1.0

// Sentinel errors for constructors.
var (
	// ErrInvalidSize indicates a non-positive matrix order.
	ErrInvalidSize = errors.New("costmatrix: size must be > 0")

	// ErrNotSquare indicates ragged or non-square input rows.
	ErrNotSquare = errors.New("costmatrix: rows must form a square matrix")

	// ErrNegativeCost indicates a negative (non-Sentinel) or NaN entry.
	ErrNegativeCost = errors.New("costmatrix: entries must be non-negative or Sentinel")
)

// CostMatrix is a square matrix of edge costs stored row-major.
type CostMatrix struct {
	n    int
	data []float64 // len == n*n
}

// New returns an n×n matrix with Sentinel on the diagonal and zeros elsewhere.
func New(n int) (*CostMatrix, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	m := &CostMatrix{n: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = Sentinel
	}

	return m, nil
}

// FromPoints builds the symmetric distance matrix of points.
// The diagonal holds Sentinel; [i][j] == [j][i] == points[i].DistanceTo(points[j]).
//
// Complexity: O(n²).
func FromPoints(points []geom.Point) *CostMatrix {
	n := len(points)
	m := &CostMatrix{n: n, data: make([]float64, n*n)}
	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		m.data[i*n+i] = Sentinel
		for j = i + 1; j < n; j++ {
			d = points[i].DistanceTo(points[j])
			m.data[i*n+j] = d
			m.data[j*n+i] = d
		}
	}

	return m
}

// FromRows copies a hand-made square matrix. Entries must be non-negative or
// exactly Sentinel; the diagonal is forced to Sentinel.
func FromRows(rows [][]float64) (*CostMatrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrInvalidSize
	}
	m := &CostMatrix{n: n, data: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrNotSquare, i, len(row), n)
		}
		for j, v := range row {
			if i == j {
				m.data[i*n+j] = Sentinel
				continue
			}
			if v != Sentinel && (v < 0 || math.IsNaN(v)) {
				return nil, fmt.Errorf("%w: [%d][%d]=%v", ErrNegativeCost, i, j, v)
			}
			m.data[i*n+j] = v
		}
	}

	return m, nil
}

// Size returns the matrix order n.
func (m *CostMatrix) Size() int { return m.n }

// At returns the entry at (i, j).
func (m *CostMatrix) At(i, j int) float64 {
	m.check(i, j)

	return m.data[i*m.n+j]
}

// Row returns a copy of row i.
func (m *CostMatrix) Row(i int) []float64 {
	m.check(i, 0)
	out := make([]float64, m.n)
	copy(out, m.data[i*m.n:(i+1)*m.n])

	return out
}

// ReduceAndCost reduces the matrix in place and returns the reduction cost.
//
// Row pass: for each row take the minimum over non-Sentinel entries (0 if
// there are none), subtract it from every non-Sentinel entry and add it to
// the cost. Column pass: the same over the row-reduced matrix.
//
// Afterwards every row and column that is not entirely Sentinel holds at
// least one zero, and a second call returns 0.
//
// Complexity: O(n²).
func (m *CostMatrix) ReduceAndCost() float64 {
	var (
		n         = m.n
		cost      float64
		i, j      int
		lowest, v float64
	)

	// Rows.
	for i = 0; i < n; i++ {
		row := m.data[i*n : (i+1)*n]
		lowest = math.Inf(1)
		for _, v = range row {
			if v != Sentinel && v < lowest {
				lowest = v
			}
		}
		if math.IsInf(lowest, 1) || lowest == 0 {
			continue // all Sentinel or already reduced
		}
		for j = range row {
			if row[j] != Sentinel {
				row[j] -= lowest
			}
		}
		cost += lowest
	}

	// Columns.
	for j = 0; j < n; j++ {
		lowest = math.Inf(1)
		for i = 0; i < n; i++ {
			v = m.data[i*n+j]
			if v != Sentinel && v < lowest {
				lowest = v
			}
		}
		if math.IsInf(lowest, 1) || lowest == 0 {
			continue
		}
		for i = 0; i < n; i++ {
			if m.data[i*n+j] != Sentinel {
				m.data[i*n+j] -= lowest
			}
		}
		cost += lowest
	}

	return cost
}

// ExcludePath commits the edge from→to.
//
// [from][to] and [to][from] become Sentinel, then the whole row 'from'
// (no further departures) and the whole column 'to' (no further arrivals).
//
// Complexity: O(n).
func (m *CostMatrix) ExcludePath(from, to int) {
	m.check(from, to)
	n := m.n
	m.data[from*n+to] = Sentinel
	m.data[to*n+from] = Sentinel
	for k := 0; k < n; k++ {
		m.data[from*n+k] = Sentinel
		m.data[k*n+to] = Sentinel
	}
}

// Copy returns an independent deep copy.
func (m *CostMatrix) Copy() *CostMatrix {
	if len(m.data) != m.n*m.n {
		panic(fmt.Sprintf("costmatrix: corrupt matrix, %d entries for order %d", len(m.data), m.n))
	}
	cp := &CostMatrix{n: m.n, data: make([]float64, len(m.data))}
	copy(cp.data, m.data)

	return cp
}

// IsSymmetric reports whether |[i][j]−[j][i]| ≤ tol for all i≠j.
// Sentinel entries must mirror Sentinel entries.
func (m *CostMatrix) IsSymmetric(tol float64) bool {
	n := m.n
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := m.data[i*n+j], m.data[j*n+i]
			if (a == Sentinel) != (b == Sentinel) {
				return false
			}
			if math.Abs(a-b) > tol {
				return false
			}
		}
	}

	return true
}

// String renders the matrix one row per line, "-" for Sentinel.
func (m *CostMatrix) String() string {
	var buf []byte
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if j > 0 {
				buf = append(buf, ' ')
			}
			if v := m.data[i*m.n+j]; v == Sentinel {
				buf = append(buf, '-')
			} else {
				buf = fmt.Appendf(buf, "%g", v)
			}
		}
		buf = append(buf, '\n')
	}

	return string(buf)
}

func (m *CostMatrix) check(i, j int) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(fmt.Sprintf("costmatrix: index (%d,%d) out of range for order %d", i, j, m.n))
	}
}
