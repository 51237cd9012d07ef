// Package geom provides the planar point type shared by every solver.
//
// A Point is an immutable value; throughout the module a point is identified
// by its index in the input slice, never by a separate id.
package geom

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for point validation.
var (
	// ErrNoPoints is returned when the input holds no points at all.
	ErrNoPoints = errors.New("geom: no points")

	// ErrNonFinite is returned when a coordinate is NaN or ±Inf.
	ErrNonFinite = errors.New("geom: non-finite coordinate")
)

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}

// Pt is a shorthand constructor, handy in tables and examples.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// DistanceTo returns the Euclidean distance between p and q.
// The result is always non-negative for finite inputs.
//
// Complexity: O(1).
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// String renders the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Validate checks that points is non-empty and that every coordinate is
// finite. Coincident points are allowed (their distance is simply 0).
//
// Complexity: O(n).
func Validate(points []Point) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	var (
		i int
		p Point
	)
	for i, p = range points {
		if !finite(p.X) || !finite(p.Y) {
			return fmt.Errorf("%w: point %d %v", ErrNonFinite, i, p)
		}
	}

	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
