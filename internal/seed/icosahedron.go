// Package seed builds the 20-root-group icosahedron a terraskel
// skeleton starts from.
package seed

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/terraskel"
)

// icosahedron vertex positions, unnormalized. This is the standard
// golden-rectangle construction: 12 vertices at the corners of three
// mutually orthogonal golden rectangles.
var icoVerts = func() [12]r3.Vec {
	phi := (1 + math.Sqrt(5)) / 2
	return [12]r3.Vec{
		{X: -1, Y: phi, Z: 0}, {X: 1, Y: phi, Z: 0}, {X: -1, Y: -phi, Z: 0}, {X: 1, Y: -phi, Z: 0},
		{X: 0, Y: -1, Z: phi}, {X: 0, Y: 1, Z: phi}, {X: 0, Y: -1, Z: -phi}, {X: 0, Y: 1, Z: -phi},
		{X: phi, Y: 0, Z: -1}, {X: phi, Y: 0, Z: 1}, {X: -phi, Y: 0, Z: -1}, {X: -phi, Y: 0, Z: 1},
	}
}()

// icoFaces lists the 20 faces as index triples into icoVerts, wound
// consistently outward.
var icoFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// Icosahedron is the result of seeding a fresh skeleton: the 20 root
// triangle ids, one per face, in icoFaces order.
type Icosahedron struct {
	Roots [20]terraskel.TriId
}

// Build creates the 12 icosahedron vertices at the given radius and 20
// root triangle groups in sk, with full neighbor topology already
// wired, so a host can start subdividing immediately.
func Build(sk *terraskel.Skeleton, radius float64) Icosahedron {
	scaleFactor := float64(int64(1) << sk.Scale())

	var vids [12]terraskel.VertexId
	for i, v := range icoVerts {
		n := r3.Scale(1/r3.Norm(v), v)
		p := r3.Scale(radius*scaleFactor, n)
		vids[i] = sk.NewVertex(
			terraskel.Vec3i{X: int64(p.X), Y: int64(p.Y), Z: int64(p.Z)},
			n,
		)
	}

	var out Icosahedron
	for f, face := range icoFaces {
		corners := [3]terraskel.VertexId{vids[face[0]], vids[face[1]], vids[face[2]]}
		out.Roots[f] = sk.NewRootGroup(corners)
	}

	linkNeighbors(sk, out.Roots, icoFaces)
	return out
}

// linkNeighbors wires the neighbor slot for every edge of every root
// face by matching shared vertex pairs between faces, the same
// vertex-identity approach Skeleton.TriGroupSetNeighboring uses one
// level down.
func linkNeighbors(sk *terraskel.Skeleton, roots [20]terraskel.TriId, faces [20][3]int) {
	type edgeKey struct{ lo, hi int }
	key := func(a, b int) edgeKey {
		if a > b {
			a, b = b, a
		}
		return edgeKey{a, b}
	}

	type owner struct {
		face int
		edge int
	}
	edgeOwners := make(map[edgeKey][]owner)

	for f, face := range faces {
		for e := 0; e < 3; e++ {
			// edge e is opposite corner e: it connects corners (e+1)%3
			// and (e+2)%3, matching the same convention TriSubdiv uses.
			a, b := face[(e+1)%3], face[(e+2)%3]
			k := key(a, b)
			edgeOwners[k] = append(edgeOwners[k], owner{face: f, edge: e})
		}
	}

	for _, owners := range edgeOwners {
		if len(owners) != 2 {
			fault("icosahedron edge shared by %d faces, expected 2", len(owners))
		}
		o0, o1 := owners[0], owners[1]
		sk.SetNeighbor(roots[o0.face], o0.edge, roots[o1.face])
		sk.SetNeighbor(roots[o1.face], o1.edge, roots[o0.face])
	}
}

func fault(format string, args ...any) {
	panic(fmt.Sprintf("terraskel seed: "+format, args...))
}
