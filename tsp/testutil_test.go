// Package tsp_test provides lightweight helpers shared across *_test.go files
// in this package: instance generators, a brute-force oracle and tour checks.
package tsp_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/salesman/geom"
	"github.com/katalvlaran/salesman/tour"
)

const (
	// epsCost is the tolerance for comparing independently summed tour lengths.
	epsCost = 1e-9

	// timeAmple is a budget no small instance comes close to.
	timeAmple = time.Minute

	// seedDet is the deterministic seed for random instances.
	seedDet = int64(20240601)
)

// square is the 10×10 square; its optimal tour is the perimeter, 40.
func square() []geom.Point {
	return []geom.Point{geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(10, 10), geom.Pt(10, 0)}
}

// randomPoints returns n integer-coordinate points in [0,1000)².
func randomPoints(r *rand.Rand, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(float64(r.Intn(1000)), float64(r.Intn(1000)))
	}

	return pts
}

// circle returns n points evenly spaced on a circle of the given radius.
// The optimal tour walks the circle in order.
func circle(n int, radius float64) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		th := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(radius*math.Cos(th), radius*math.Sin(th))
	}

	return pts
}

// bruteForce enumerates every permutation of 1..n-1 and returns the optimal
// closed tour length. Feasible for n ≤ 9.
func bruteForce(points []geom.Point) float64 {
	n := len(points)
	if n <= 1 {
		return 0
	}
	rest := make([]int, n-1)
	for i := range rest {
		rest[i] = i + 1
	}
	best := math.Inf(1)
	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			t := append(append([]int{0}, rest...), 0)
			if l := tour.Length(points, t); l < best {
				best = l
			}
			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)

	return best
}

// mustValidTour asserts t is a closed tour over points whose length matches cost.
func mustValidTour(t *testing.T, points []geom.Point, got []int, cost float64) {
	t.Helper()
	require.NoError(t, tour.Validate(got, len(points), 0), "tour %v", got)
	require.InDelta(t, cost, tour.Length(points, got), epsCost, "reported cost vs walked length")
}
