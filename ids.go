package terraskel

// VertexId addresses a Vertex owned by a Skeleton. The zero value
// never denotes a live vertex; it is the "absent" sentinel.
type VertexId uint32

// GroupId addresses a TriangleGroup owned by a Skeleton. The zero
// value never denotes a live group; it is the "absent" sentinel.
type GroupId uint32

// TriId addresses one of the four triangles in a group. It packs a
// GroupId and a child index (0,1,2 are corner children, 3 is the
// center child) so that tri_group_id and sibling_index are O(1).
// The zero value is the "absent neighbor" sentinel, matching GroupId
// never issuing id 0.
type TriId uint32

// TriGroupId returns the group a triangle belongs to.
func (t TriId) TriGroupId() GroupId {
	return GroupId(uint32(t) / 4)
}

// SiblingIndex returns t's child index (0-3) within its group.
func (t TriId) SiblingIndex() int {
	return int(uint32(t) % 4)
}

// Valid reports whether t addresses a triangle at all (does not check
// that the triangle still exists in a particular skeleton).
func (t TriId) Valid() bool { return t != 0 }

// Valid reports whether id is a non-sentinel vertex id.
func (id VertexId) Valid() bool { return id != 0 }

// Valid reports whether id is a non-sentinel group id.
func (id GroupId) Valid() bool { return id != 0 }

func triID(group GroupId, child int) TriId {
	if child < 0 || child > 3 {
		fault("child index out of range: %d", child)
	}
	return TriId(uint32(group)*4 + uint32(child))
}

// idArena hands out reusable, dense, 1-based uint32 ids. Released ids
// are kept on a free list and are the first to be reissued, the way a
// mesh's link/tile free lists are threaded through a "next free"
// index rather than garbage collected. Id 0 is never issued so it can
// serve as an "absent" sentinel in the types built on top of it.
type idArena struct {
	freelist []uint32
	alive    bitset
	top      uint32 // highest id ever issued
}

func (a *idArena) alloc() uint32 {
	if n := len(a.freelist); n > 0 {
		id := a.freelist[n-1]
		a.freelist = a.freelist[:n-1]
		a.alive.set(int(id))
		return id
	}
	if a.top == 1<<32-1 {
		fault("id arena exhausted")
	}
	a.top++
	id := a.top
	a.alive.resize(int(id) + 1)
	a.alive.set(int(id))
	return id
}

func (a *idArena) release(id uint32) {
	if !a.exists(id) {
		fault("releasing id %d that is not alive", id)
	}
	a.alive.clear(int(id))
	a.freelist = append(a.freelist, id)
}

func (a *idArena) exists(id uint32) bool {
	return id != 0 && a.alive.test(int(id))
}

// capacity returns one past the highest id ever issued; arrays
// indexed by this arena's ids should be sized to at least this.
func (a *idArena) capacity() uint32 { return a.top + 1 }
