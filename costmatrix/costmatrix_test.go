package costmatrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/salesman/costmatrix"
	"github.com/katalvlaran/salesman/geom"
)

// square is the 10×10 square used across the solver tests.
var square = []geom.Point{geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(10, 10), geom.Pt(10, 0)}

func randomPoints(r *rand.Rand, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(float64(r.Intn(100)), float64(r.Intn(100)))
	}

	return pts
}

// lineHasZero reports whether a non-Sentinel zero exists in row (col=false)
// or column (col=true) k, and whether the line is entirely Sentinel.
func lineHasZero(m *costmatrix.CostMatrix, k int, col bool) (zero, allSentinel bool) {
	allSentinel = true
	for x := 0; x < m.Size(); x++ {
		v := m.At(k, x)
		if col {
			v = m.At(x, k)
		}
		if v == costmatrix.Sentinel {
			continue
		}
		allSentinel = false
		if v == 0 {
			zero = true
		}
	}

	return zero, allSentinel
}

type CostMatrixSuite struct {
	suite.Suite
}

func TestCostMatrixSuite(t *testing.T) {
	suite.Run(t, new(CostMatrixSuite))
}

func (s *CostMatrixSuite) TestFromPointsShape() {
	m := costmatrix.FromPoints(square)
	require.Equal(s.T(), 4, m.Size())
	for i := 0; i < 4; i++ {
		require.Equal(s.T(), costmatrix.Sentinel, m.At(i, i), "diagonal %d", i)
	}
	require.Equal(s.T(), 10.0, m.At(0, 1))
	require.InDelta(s.T(), 14.142135623730951, m.At(0, 2), 1e-12)
	require.True(s.T(), m.IsSymmetric(0))
}

func (s *CostMatrixSuite) TestNewAndFromRows() {
	_, err := costmatrix.New(0)
	require.ErrorIs(s.T(), err, costmatrix.ErrInvalidSize)

	m, err := costmatrix.New(3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), costmatrix.Sentinel, m.At(2, 2))
	require.Equal(s.T(), 0.0, m.At(0, 2))

	_, err = costmatrix.FromRows(nil)
	require.ErrorIs(s.T(), err, costmatrix.ErrInvalidSize)
	_, err = costmatrix.FromRows([][]float64{{0, 1}, {1}})
	require.ErrorIs(s.T(), err, costmatrix.ErrNotSquare)
	_, err = costmatrix.FromRows([][]float64{{0, -2}, {1, 0}})
	require.ErrorIs(s.T(), err, costmatrix.ErrNegativeCost)

	m, err = costmatrix.FromRows([][]float64{{7, 1}, {costmatrix.Sentinel, 0}})
	require.NoError(s.T(), err)
	require.Equal(s.T(), costmatrix.Sentinel, m.At(0, 0), "diagonal forced to Sentinel")
	require.Equal(s.T(), costmatrix.Sentinel, m.At(1, 0))
}

func (s *CostMatrixSuite) TestReduceKnownMatrix() {
	// Classic textbook instance; row minima 10+2+2+3+4, column minima 1+0+3+0+0.
	m, err := costmatrix.FromRows([][]float64{
		{0, 20, 30, 10, 11},
		{15, 0, 16, 4, 2},
		{3, 5, 0, 2, 4},
		{19, 6, 18, 0, 3},
		{16, 4, 7, 16, 0},
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 25.0, m.ReduceAndCost())
	require.Equal(s.T(), []float64{costmatrix.Sentinel, 10, 17, 0, 1}, m.Row(0))
	require.Equal(s.T(), []float64{11, 0, 0, 12, costmatrix.Sentinel}, m.Row(4))
}

func (s *CostMatrixSuite) TestReduceSquare() {
	m := costmatrix.FromPoints(square)
	// Every row minimum is 10, columns are already reduced afterwards.
	require.Equal(s.T(), 40.0, m.ReduceAndCost())
	require.Equal(s.T(), 0.0, m.ReduceAndCost(), "second reduction must be free")
}

func (s *CostMatrixSuite) TestReduceLeavesZeroPerLine() {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 25; round++ {
		n := 2 + r.Intn(8)
		m := costmatrix.FromPoints(randomPoints(r, n))
		if n > 2 {
			m.ExcludePath(0, 1+r.Intn(n-1))
		}

		// Remember which lines were entirely Sentinel before reducing.
		before := make([][2]bool, n)
		for k := 0; k < n; k++ {
			_, before[k][0] = lineHasZero(m, k, false)
			_, before[k][1] = lineHasZero(m, k, true)
		}

		cost := m.ReduceAndCost()
		require.GreaterOrEqual(s.T(), cost, 0.0)

		for k := 0; k < n; k++ {
			zr, allR := lineHasZero(m, k, false)
			zc, allC := lineHasZero(m, k, true)
			require.Equal(s.T(), before[k][0], allR)
			require.Equal(s.T(), before[k][1], allC)
			if !allR {
				require.True(s.T(), zr, "row %d lacks a zero\n%s", k, m)
			}
			if !allC {
				require.True(s.T(), zc, "column %d lacks a zero\n%s", k, m)
			}
		}
		require.Equal(s.T(), 0.0, m.ReduceAndCost())
	}
}

func (s *CostMatrixSuite) TestExcludePath() {
	m := costmatrix.FromPoints(square)
	m.ExcludePath(0, 2)
	for k := 0; k < 4; k++ {
		require.Equal(s.T(), costmatrix.Sentinel, m.At(0, k), "row 0 col %d", k)
		require.Equal(s.T(), costmatrix.Sentinel, m.At(k, 2), "col 2 row %d", k)
	}
	require.Equal(s.T(), costmatrix.Sentinel, m.At(2, 0), "reverse edge")
	// Untouched entries survive.
	require.Equal(s.T(), 10.0, m.At(1, 0))
	require.Equal(s.T(), 10.0, m.At(2, 1))
	require.Equal(s.T(), 10.0, m.At(3, 0))
}

func (s *CostMatrixSuite) TestExcludeThenReduceNonNegative() {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		n := 2 + r.Intn(7)
		m := costmatrix.FromPoints(randomPoints(r, n))
		m.ReduceAndCost()
		from := r.Intn(n)
		to := (from + 1 + r.Intn(n-1)) % n
		m.ExcludePath(from, to)
		require.GreaterOrEqual(s.T(), m.ReduceAndCost(), 0.0)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := m.At(i, j)
				require.True(s.T(), v == costmatrix.Sentinel || v >= 0, "[%d][%d]=%v", i, j, v)
			}
		}
	}
}

func (s *CostMatrixSuite) TestCopyIsIndependent() {
	m := costmatrix.FromPoints(square)
	cp := m.Copy()
	cp.ExcludePath(1, 2)
	cp.ReduceAndCost()

	require.Equal(s.T(), 10.0, m.At(1, 2))
	require.Equal(s.T(), 10.0, m.At(1, 0))
	require.True(s.T(), m.IsSymmetric(0))
	require.Equal(s.T(), m.Size(), cp.Size())
}

func (s *CostMatrixSuite) TestOutOfRangePanics() {
	m := costmatrix.FromPoints(square)
	require.Panics(s.T(), func() { m.At(4, 0) })
	require.Panics(s.T(), func() { m.ExcludePath(-1, 2) })
	require.Panics(s.T(), func() { m.Row(9) })
}

func (s *CostMatrixSuite) TestString() {
	m, err := costmatrix.FromRows([][]float64{{0, 1.5}, {2, 0}})
	require.NoError(s.T(), err)
	require.Equal(s.T(), "- 1.5\n2 -\n", m.String())
}
