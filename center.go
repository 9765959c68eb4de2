package terraskel

import "github.com/chewxy/math32"

// Centers caches, for every triangle id, a world-space point roughly
// at the center of that triangle raised partway toward the expected
// terrain surface. It exists purely as an acceleration structure for
// distance floodfills: checking one cached point per triangle is far
// cheaper than re-deriving a triangle's centroid from its three
// corners on every distance test.
type Centers struct {
	values []Vec3i
}

// NewCenters allocates an empty center cache.
func NewCenters() *Centers { return &Centers{} }

// Resize grows the cache to triCapacity entries.
func (c *Centers) Resize(triCapacity int) {
	if triCapacity <= len(c.values) {
		return
	}
	grown := make([]Vec3i, triCapacity)
	copy(grown, c.values)
	c.values = grown
}

func (c *Centers) Get(t TriId) Vec3i   { return c.values[t] }
func (c *Centers) Set(t TriId, v Vec3i) { c.values[t] = v }

// towerOverHorizon[depth] approximates, as a fraction of a sphere's
// radius, how far an icosahedron face's flat plane sags below the
// true sphere surface at subdivision depth 0, shrinking roughly
// fourfold each depth as triangles shrink. CalcSphereTriCenter uses it to lift a
// triangle's cached center enough that distance-to-observer tests
// never mistake a sagging low-LOD face for farther away than it
// really is. Values are generated, not measured, since no reference
// table for this quantity shipped with the material this engine was
// built from; see DESIGN.md.
var towerOverHorizon = buildTowerOverHorizonTable(24)

func buildTowerOverHorizonTable(maxDepth int) []float32 {
	// Angular half-extent of an icosahedron face as seen from its
	// center, approximated by the face's inscribed-circle angle at
	// depth 0 and halved once per additional subdivision depth (edge
	// length halves each level, and for small angles sag grows with
	// the square of angular extent).
	const depth0HalfAngle = 0.3639 // radians, ~ icosahedron face half-angle
	out := make([]float32, maxDepth)
	angle := float32(depth0HalfAngle)
	for d := 0; d < maxDepth; d++ {
		out[d] = 1 - math32.Cos(angle)
		angle *= 0.5
	}
	return out
}

// CalcSphereTriCenter computes and caches the center point of each of
// groupId's four triangles; the unused slots of a root group (which
// have no corners) are skipped. maxRadius and height describe the
// host's terrain shape: height is the nominal terrain elevation above
// the base sphere, maxRadius scales the per-depth sag correction.
func CalcSphereTriCenter(sk *Skeleton, centers *Centers, groupId GroupId, maxRadius, height float32) {
	group := sk.TriGroupAt(groupId)
	if int(group.Depth) >= len(towerOverHorizon) {
		fault("triangle group depth %d exceeds tower-over-horizon table", group.Depth)
	}
	terrainMaxHeight := height + maxRadius*towerOverHorizon[group.Depth]
	scaleFactor := float32(int64(1) << sk.Scale())

	for i := 0; i < 4; i++ {
		tri := &group.Triangles[i]
		if !tri.Corners[0].Valid() {
			continue // unused slot of a root group
		}
		va, vb, vc := tri.Corners[0], tri.Corners[1], tri.Corners[2]

		pa, pb, pc := sk.Position(va), sk.Position(vb), sk.Position(vc)
		posAvg := pa.DivScalar(3).Add(pb.DivScalar(3)).Add(pc.DivScalar(3))

		na, nb, nc := sk.Normal(va), sk.Normal(vb), sk.Normal(vc)
		nrmAvg32 := [3]float32{
			(float32(na.X) + float32(nb.X) + float32(nc.X)) / 3,
			(float32(na.Y) + float32(nb.Y) + float32(nc.Y)) / 3,
			(float32(na.Z) + float32(nb.Z) + float32(nc.Z)) / 3,
		}

		lift := 0.5 * terrainMaxHeight * scaleFactor
		riseToMid := Vec3i{
			X: int64(nrmAvg32[0] * lift),
			Y: int64(nrmAvg32[1] * lift),
			Z: int64(nrmAvg32[2] * lift),
		}

		centers.Set(triID(groupId, i), posAvg.Add(riseToMid))
	}
}
