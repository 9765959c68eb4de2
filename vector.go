package terraskel

import "gonum.org/v1/gonum/spatial/r3"

// Vec3i is a fixed-point 3-vector: world units scaled by 2^Skeleton.scale,
// stored as 64-bit signed components so that sums of vertex positions
// cannot overflow during the center-of-triangle average in center.go.
type Vec3i struct {
	X, Y, Z int64
}

func (a Vec3i) Add(b Vec3i) Vec3i {
	return Vec3i{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3i) Sub(b Vec3i) Vec3i {
	return Vec3i{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vec3i) DivScalar(s int64) Vec3i {
	return Vec3i{a.X / s, a.Y / s, a.Z / s}
}

func (a Vec3i) ToVec3() r3.Vec {
	return r3.Vec{X: float64(a.X), Y: float64(a.Y), Z: float64(a.Z)}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// isDistanceNear is a Chebyshev (max-component) distance test: it
// never needs to square a fixed-point difference, so it cannot
// overflow int64 regardless of world scale. It is inclusive at the
// boundary (<=), which keeps hysteresis well defined when an observer
// sits exactly on a threshold.
func isDistanceNear(pos, center Vec3i, threshold int64) bool {
	d := pos.Sub(center)
	m := abs64(d.X)
	if v := abs64(d.Y); v > m {
		m = v
	}
	if v := abs64(d.Z); v > m {
		m = v
	}
	return m <= threshold
}
