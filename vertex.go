package terraskel

import "gonum.org/v1/gonum/spatial/r3"

// vrtxPairKey is the dedup key for a midpoint vertex: the unordered
// pair of corner ids its edge spans.
type vrtxPairKey struct{ lo, hi VertexId }

func pairKey(a, b VertexId) vrtxPairKey {
	if a > b {
		a, b = b, a
	}
	return vrtxPairKey{lo: a, hi: b}
}

// vertexRecord is a Skeleton-owned vertex. isMidpoint vertices carry
// their dedup key and a reference count so the skeleton can release
// them once no subdivided triangle still needs them; seed vertices
// (isMidpoint == false) live for the life of the skeleton and are
// never reference counted.
type vertexRecord struct {
	Position   Vec3i
	Normal     r3.Vec
	isMidpoint bool
	key        vrtxPairKey
	refs       int8
}

// MaybeNewId conveys a midpoint vertex id and whether this call is
// what created it, so the caller's onSubdiv callback knows which
// midpoints need fresh position/normal initialization.
type MaybeNewId struct {
	Id    VertexId
	IsNew bool
}
