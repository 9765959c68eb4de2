// Package d3 holds a small set of r3.Vec helpers that gonum's r3
// package doesn't already provide directly. No other package in this
// repository imports it.
package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EqualWithin reports whether a and b are componentwise within tol of
// each other.
func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

// ProjectToSphere returns v scaled to lie at distance radius from the
// origin, along v's own direction from the origin.
func ProjectToSphere(v r3.Vec, radius float64) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return v
	}
	return r3.Scale(radius/n, v)
}
