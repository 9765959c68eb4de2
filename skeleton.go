package terraskel

import "gonum.org/v1/gonum/spatial/r3"

// ChildPair names the two children on one side of a cross-group
// link, the "four child pairs involved" a TriGroupSetNeighboring call
// reports (two children per side).
type ChildPair struct {
	ChildA, ChildB TriId
}

// Skeleton is the process-wide container of vertex and triangle-group
// arenas. It owns id lifecycle, midpoint vertex deduplication, and the
// bidirectional neighbor links between triangles. External code may
// hold VertexId/GroupId/TriId values but must never hold a *Triangle
// or *TriangleGroup across a call that mutates the skeleton: TriSubdiv
// and TriUnsubdiv can grow or repack the backing storage.
type Skeleton struct {
	scale uint8

	vertices    []vertexRecord
	vertexArena idArena
	middleDedup map[vrtxPairKey]VertexId

	groups     []TriangleGroup
	groupArena idArena
}

// NewSkeleton creates an empty skeleton. scale is the fixed-point
// exponent: world positions are stored as integers in units of
// 1/2^scale.
func NewSkeleton(scale uint8) *Skeleton {
	return &Skeleton{
		scale:       scale,
		middleDedup: make(map[vrtxPairKey]VertexId),
	}
}

// Scale returns the fixed-point exponent passed to NewSkeleton.
func (sk *Skeleton) Scale() uint8 { return sk.scale }

// --- vertices ---

func (sk *Skeleton) growVertices(id VertexId) {
	if int(id) >= len(sk.vertices) {
		grown := make([]vertexRecord, int(id)+1)
		copy(grown, sk.vertices)
		sk.vertices = grown
	}
}

// NewVertex allocates a permanent (non-midpoint) vertex, used by a
// host seeding the initial icosahedron. Such vertices are never
// reference counted or released by the skeleton.
func (sk *Skeleton) NewVertex(pos Vec3i, normal r3.Vec) VertexId {
	id := VertexId(sk.vertexArena.alloc())
	sk.growVertices(id)
	sk.vertices[id] = vertexRecord{Position: pos, Normal: normal}
	return id
}

func (sk *Skeleton) vrtx(id VertexId) *vertexRecord {
	if !sk.vertexArena.exists(uint32(id)) {
		fault("vertex %d does not exist", id)
	}
	return &sk.vertices[id]
}

func (sk *Skeleton) Position(id VertexId) Vec3i { return sk.vrtx(id).Position }
func (sk *Skeleton) SetPosition(id VertexId, p Vec3i) {
	sk.vrtx(id).Position = p
}

func (sk *Skeleton) Normal(id VertexId) r3.Vec { return sk.vrtx(id).Normal }
func (sk *Skeleton) SetNormal(id VertexId, n r3.Vec) {
	sk.vrtx(id).Normal = n
}

// VertexCapacity returns one past the highest VertexId ever issued.
func (sk *Skeleton) VertexCapacity() int { return int(sk.vertexArena.capacity()) }

// VrtxCreateMiddles returns the midpoint vertex between each pair of
// corners (c1,c2), (c2,c0), (c0,c1), in that fixed order, creating any
// that do not already exist. Deduplication is keyed on the unordered
// corner pair: two adjacent triangles that both subdivide always end
// up sharing the same midpoint vertex.
func (sk *Skeleton) VrtxCreateMiddles(c0, c1, c2 VertexId) [3]MaybeNewId {
	pairs := [3][2]VertexId{{c1, c2}, {c2, c0}, {c0, c1}}
	var out [3]MaybeNewId
	for i, p := range pairs {
		key := pairKey(p[0], p[1])
		if id, ok := sk.middleDedup[key]; ok {
			out[i] = MaybeNewId{Id: id, IsNew: false}
			continue
		}
		id := VertexId(sk.vertexArena.alloc())
		sk.growVertices(id)
		sk.vertices[id] = vertexRecord{isMidpoint: true, key: key}
		sk.middleDedup[key] = id
		out[i] = MaybeNewId{Id: id, IsNew: true}
	}
	return out
}

// releaseMidpointRef drops one reference to a midpoint vertex,
// releasing it back to the arena once no subdivided triangle still
// references it.
func (sk *Skeleton) releaseMidpointRef(id VertexId) {
	v := sk.vrtx(id)
	if !v.isMidpoint {
		fault("releaseMidpointRef on a non-midpoint vertex")
	}
	v.refs--
	if v.refs < 0 {
		fault("midpoint vertex %d over-released", id)
	}
	if v.refs == 0 {
		delete(sk.middleDedup, v.key)
		sk.vertexArena.release(uint32(id))
	}
}

// --- triangle groups ---

func (sk *Skeleton) growGroups(id GroupId) {
	if int(id) >= len(sk.groups) {
		grown := make([]TriangleGroup, int(id)+1)
		copy(grown, sk.groups)
		sk.groups = grown
	}
}

// TriAt returns the triangle addressed by id. The returned pointer is
// only valid until the next TriSubdiv/TriUnsubdiv call.
func (sk *Skeleton) TriAt(id TriId) *Triangle {
	g := id.TriGroupId()
	if !sk.groupArena.exists(uint32(g)) {
		fault("triangle %d does not exist", id)
	}
	return &sk.groups[g].Triangles[id.SiblingIndex()]
}

// TriGroupAt returns the group addressed by id.
func (sk *Skeleton) TriGroupAt(id GroupId) *TriangleGroup {
	if !sk.groupArena.exists(uint32(id)) {
		fault("triangle group %d does not exist", id)
	}
	return &sk.groups[id]
}

// GroupExists reports whether id still addresses a live group.
func (sk *Skeleton) GroupExists(id GroupId) bool { return sk.groupArena.exists(uint32(id)) }

// TriGroupCapacity returns one past the highest GroupId ever issued.
func (sk *Skeleton) TriGroupCapacity() uint32 { return sk.groupArena.capacity() }

// LiveGroupCount returns how many triangle groups currently exist. It
// walks every id up to TriGroupCapacity, so it is meant for tests and
// debug tooling rather than a per-frame hot path.
func (sk *Skeleton) LiveGroupCount() int {
	n := 0
	capacity := sk.groupArena.capacity()
	for i := uint32(1); i < capacity; i++ {
		if sk.groupArena.exists(i) {
			n++
		}
	}
	return n
}

// TriCapacity returns one past the highest TriId ever addressable.
func (sk *Skeleton) TriCapacity() int { return int(sk.groupArena.capacity()) * 4 }

// IsTriSubdivided reports whether t has children.
func (sk *Skeleton) IsTriSubdivided(t TriId) bool { return sk.TriAt(t).Children.Valid() }

// Depth returns the subdivision depth of the group t belongs to.
func (sk *Skeleton) Depth(t TriId) uint8 { return sk.TriGroupAt(t.TriGroupId()).Depth }

// FindNeighborIndex returns the edge index e such that
// T.Neighbors[e] == other.
func (sk *Skeleton) FindNeighborIndex(t TriId, other TriId) int {
	tri := sk.TriAt(t)
	for e, n := range tri.Neighbors {
		if n == other {
			return e
		}
	}
	fault("triangle %d does not neighbor %d", t, other)
	return -1
}

// SetNeighbor is a direct, unchecked neighbor-link setter for host
// seed construction; the subdivision/unsubdivision engine itself uses
// TriGroupSetNeighboring instead, which keeps both sides consistent.
func (sk *Skeleton) SetNeighbor(t TriId, edge int, neighbor TriId) {
	sk.TriAt(t).Neighbors[edge] = neighbor
}

// NewRootGroup allocates one of the host's root groups (depth 0, no
// parent). Only child index 0 of a root group is a real triangle; the
// other three slots exist only so that triangle addressing stays
// uniform at every depth, and are never referenced by anything.
func (sk *Skeleton) NewRootGroup(corners [3]VertexId) TriId {
	id := GroupId(sk.groupArena.alloc())
	sk.growGroups(id)
	sk.groups[id] = TriangleGroup{Depth: 0}
	sk.groups[id].Triangles[0].Corners = corners
	return triID(id, 0)
}

// edgeOf returns the edge index k of t such that t.Corners[(k+1)%3]
// and t.Corners[(k+2)%3] are {a,b} in either order: edge k is the edge
// opposite corner k.
func edgeOf(t *Triangle, a, b VertexId) int {
	for k := 0; k < 3; k++ {
		x, y := t.Corners[(k+1)%3], t.Corners[(k+2)%3]
		if (x == a && y == b) || (x == b && y == a) {
			return k
		}
	}
	fault("no edge of triangle connects the given corner pair")
	return -1
}

// childOwningCorner returns the corner-child index (0,1,2) of g whose
// unique parent corner is v.
func childOwningCorner(g *TriangleGroup, v VertexId) int {
	for i := 0; i < 3; i++ {
		if g.Triangles[i].Corners[0] == v {
			return i
		}
	}
	fault("no child of group owns corner vertex %d", v)
	return -1
}

// commonVertex returns the single vertex shared by a and b's corner
// sets, other than excl0/excl1.
func commonVertex(a, b *Triangle, excl0, excl1 VertexId) VertexId {
	for _, v := range a.Corners {
		if v == excl0 || v == excl1 {
			continue
		}
		for _, w := range b.Corners {
			if v == w {
				return v
			}
		}
	}
	fault("children do not share a midpoint vertex")
	return 0
}

// TriSubdiv allocates a new group of four children for parentId,
// assigns their corners from the parent's corners and the given
// middles, wires the intra-group neighbor links (the center child
// borders all three corner children; corner children never border
// each other), and sets parentId.Children. Any outstanding *Triangle
// obtained for parentId before this call is invalidated.
func (sk *Skeleton) TriSubdiv(parentId TriId, middles [3]VertexId) GroupId {
	parent := sk.TriAt(parentId)
	if parent.Children.Valid() {
		fault("triangle %d is already subdivided", parentId)
	}
	corners := parent.Corners
	depth := sk.Depth(parentId) + 1

	groupId := GroupId(sk.groupArena.alloc())
	sk.growGroups(groupId)
	g := TriangleGroup{Parent: parentId, Depth: depth}
	for i := 0; i < 3; i++ {
		g.Triangles[i].Corners = [3]VertexId{corners[i], middles[(i+1)%3], middles[(i+2)%3]}
	}
	g.Triangles[3].Corners = [3]VertexId{middles[0], middles[2], middles[1]}
	sk.groups[groupId] = g
	rGroup := &sk.groups[groupId]

	for _, m := range middles {
		sk.vrtx(m).refs++
	}

	for i := 0; i < 3; i++ {
		child := &rGroup.Triangles[i]
		center := &rGroup.Triangles[3]
		m1, m2 := child.Corners[1], child.Corners[2]
		eChild := edgeOf(child, m1, m2)
		eCenter := edgeOf(center, m1, m2)
		child.Neighbors[eChild] = triID(groupId, 3)
		center.Neighbors[eCenter] = triID(groupId, i)
	}

	// parent is invalidated by growGroups/the slice write above if it
	// aliased the same backing array; re-fetch before mutating it.
	sk.TriAt(parentId).Children = groupId
	return groupId
}

// TriUnsubdiv releases the group referenced by id's Children and
// clears it, along with every neighbor slot outside the group that
// still points at one of its children. The caller must ensure every
// child of that group is already a leaf; that precondition is checked
// as a contract violation, not a recoverable error.
func (sk *Skeleton) TriUnsubdiv(id TriId) {
	tri := sk.TriAt(id)
	if !tri.Children.Valid() {
		fault("triangle %d has no children to release", id)
	}
	g := sk.TriGroupAt(tri.Children)
	for i := 0; i < 4; i++ {
		if g.Triangles[i].Children.Valid() {
			fault("triangle group %d child %d still subdivided", tri.Children, i)
		}
	}
	for i := 0; i < 4; i++ {
		child := triID(tri.Children, i)
		for _, n := range g.Triangles[i].Neighbors {
			if !n.Valid() || n.TriGroupId() == tri.Children {
				continue
			}
			rn := sk.TriAt(n)
			for e := range rn.Neighbors {
				if rn.Neighbors[e] == child {
					rn.Neighbors[e] = 0
				}
			}
		}
	}
	center := &g.Triangles[3]
	for _, m := range center.Corners {
		sk.releaseMidpointRef(m)
	}
	sk.groupArena.release(uint32(tri.Children))
	sk.TriAt(id).Children = 0
}

// TriGroupSetNeighboring cross-links the children of two adjacent
// subdivided triangles along their shared edge and reports, for each
// side, the pair of children involved (one per endpoint vertex of the
// shared edge), so the caller can propagate level-index updates one
// level deeper.
func (sk *Skeleton) TriGroupSetNeighboring(selfParent TriId, selfEdge int, neighborParent TriId, neighborEdge int) (self, neighbor ChildPair) {
	pSelf := sk.TriAt(selfParent)
	pNeigh := sk.TriAt(neighborParent)
	a, b := pSelf.Corners[(selfEdge+1)%3], pSelf.Corners[(selfEdge+2)%3]
	a2, b2 := pNeigh.Corners[(neighborEdge+1)%3], pNeigh.Corners[(neighborEdge+2)%3]
	if !((a == a2 && b == b2) || (a == b2 && b == a2)) {
		fault("tri_group_set_neighboring: edges do not share endpoints")
	}

	groupA := sk.TriGroupAt(pSelf.Children)
	groupB := sk.TriGroupAt(pNeigh.Children)

	childA, childB := childOwningCorner(groupA, a), childOwningCorner(groupA, b)
	triA, triB := &groupA.Triangles[childA], &groupA.Triangles[childB]
	mid := commonVertex(triA, triB, a, b)

	childA2, childB2 := childOwningCorner(groupB, a), childOwningCorner(groupB, b)
	triA2, triB2 := &groupB.Triangles[childA2], &groupB.Triangles[childB2]

	edgeA, edgeB := edgeOf(triA, a, mid), edgeOf(triB, b, mid)
	edgeA2, edgeB2 := edgeOf(triA2, a, mid), edgeOf(triB2, b, mid)

	self = ChildPair{ChildA: triID(pSelf.Children, childA), ChildB: triID(pSelf.Children, childB)}
	neighbor = ChildPair{ChildA: triID(pNeigh.Children, childA2), ChildB: triID(pNeigh.Children, childB2)}

	triA.Neighbors[edgeA] = neighbor.ChildA
	triA2.Neighbors[edgeA2] = self.ChildA
	triB.Neighbors[edgeB] = neighbor.ChildB
	triB2.Neighbors[edgeB2] = self.ChildB

	return self, neighbor
}
