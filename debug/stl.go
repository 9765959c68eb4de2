package debug

import (
	"io"

	"github.com/hschendel/stl"
	"github.com/soypat/terraskel"
)

// WriteSTL writes every leaf triangle currently in sk as a binary STL
// solid, letting a human (or a watertightness checker) inspect the
// current subdivision state directly.
func WriteSTL(w io.Writer, sk *terraskel.Skeleton) error {
	solid := stl.Solid{Name: "terraskel"}
	triCapacity := sk.TriCapacity()
	for i := 0; i < triCapacity; i++ {
		triId := terraskel.TriId(i)
		if !sk.GroupExists(triId.TriGroupId()) {
			continue
		}
		tri := sk.TriAt(triId)
		if !tri.Corners[0].Valid() {
			continue // unused slot of a root group
		}
		if tri.Children.Valid() {
			continue // only leaves are real geometry
		}

		var vertices [3]stl.Vec3
		for k, v := range tri.Corners {
			p := sk.Position(v)
			vertices[k] = stl.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
		}
		n := facetNormal(vertices)
		solid.Triangles = append(solid.Triangles, stl.Triangle{
			Normal:   n,
			Vertices: vertices,
		})
	}
	return solid.WriteAll(w)
}

func facetNormal(v [3]stl.Vec3) stl.Vec3 {
	ux, uy, uz := v[1][0]-v[0][0], v[1][1]-v[0][1], v[1][2]-v[0][2]
	vx, vy, vz := v[2][0]-v[0][0], v[2][1]-v[0][1], v[2][2]-v[0][2]
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	return stl.Vec3{nx, ny, nz}
}
