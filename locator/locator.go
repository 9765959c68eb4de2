// Package locator answers "which leaf triangle is nearest to this
// point" queries against a terraskel skeleton, backed by a gonum
// k-d tree over leaf-triangle centers.
package locator

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/terraskel"
)

// Locator answers nearest-leaf queries against a snapshot of a
// skeleton's leaf set. It does not track skeleton mutations; call
// Rebuild after a subdivide/unsubdivide pass changes the leaf set.
type Locator struct {
	points kdPoints
	tree   *kdtree.Tree
}

// New returns an empty Locator. Call Rebuild before using it.
func New() *Locator { return &Locator{} }

// Rebuild collects every current leaf triangle's cached center from
// centers and re-indexes them into a fresh k-d tree.
func (l *Locator) Rebuild(sk *terraskel.Skeleton, centers *terraskel.Centers) {
	l.points = l.points[:0]
	triCapacity := sk.TriCapacity()
	for i := 0; i < triCapacity; i++ {
		triId := terraskel.TriId(i)
		if !sk.GroupExists(triId.TriGroupId()) {
			continue
		}
		if !sk.TriAt(triId).Corners[0].Valid() {
			continue // unused slot of a root group
		}
		if sk.IsTriSubdivided(triId) {
			continue
		}
		l.points = append(l.points, kdPoint{
			id:  triId,
			pos: centers.Get(triId).ToVec3(),
		})
	}
	l.tree = kdtree.New(l.points, true)
}

// Nearest returns the leaf triangle whose cached center is closest to
// pos. ok is false if the locator has never been built or the
// skeleton has no leaves. A host uses this to warm-start a distance
// floodfill near an observer instead of scanning every level's
// bitset from scratch when the observer jumps a long distance in one
// frame.
func (l *Locator) Nearest(pos terraskel.Vec3i) (id terraskel.TriId, ok bool) {
	if l.tree == nil || len(l.points) == 0 {
		return 0, false
	}
	got, _ := l.tree.Nearest(kdPoint{pos: pos.ToVec3()})
	if got == nil {
		return 0, false
	}
	return got.(kdPoint).id, true
}

type kdPoint struct {
	id  terraskel.TriId
	pos r3.Vec
}

type kdPoints []kdPoint

func (k kdPoints) Index(i int) kdtree.Comparable { return k[i] }
func (k kdPoints) Len() int                      { return len(k) }

func (k kdPoints) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), points: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (k kdPoints) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

func (k kdPoints) Bounds() *kdtree.Bounding {
	if len(k) == 0 {
		return nil
	}
	min, max := k[0].pos, k[0].pos
	for _, p := range k[1:] {
		min = minElem(min, p.pos)
		max = maxElem(max, p.pos)
	}
	return &kdtree.Bounding{
		Min: kdPoint{pos: min},
		Max: kdPoint{pos: max},
	}
}

func (a kdPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return pointComp(a, b.(kdPoint), int(d))
}

func (a kdPoint) Dims() int { return 3 }

func (a kdPoint) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.pos, b.(kdPoint).pos))
}

func pointComp(a, b kdPoint, dim int) float64 {
	switch dim {
	case 0:
		return a.pos.X - b.pos.X
	case 1:
		return a.pos.Y - b.pos.Y
	default:
		return a.pos.Z - b.pos.Z
	}
}

type kdPlane struct {
	dim    int
	points kdPoints
}

func (p kdPlane) Less(i, j int) bool {
	return pointComp(p.points[i], p.points[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p kdPlane) Len() int      { return len(p.points) }
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

func minElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: minF(a.X, b.X), Y: minF(a.Y, b.Y), Z: minF(a.Z, b.Z)}
}
func maxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: maxF(a.X, b.X), Y: maxF(a.Y, b.Y), Z: maxF(a.Z, b.Z)}
}
func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
