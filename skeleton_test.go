package terraskel

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func newTestVertex(t *testing.T, sk *Skeleton, x, y, z int64) VertexId {
	t.Helper()
	return sk.NewVertex(Vec3i{X: x, Y: y, Z: z}, r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)})
}

func TestVrtxCreateMiddlesDedup(t *testing.T) {
	sk := NewSkeleton(0)
	v0 := newTestVertex(t, sk, 0, 0, 0)
	v1 := newTestVertex(t, sk, 2, 0, 0)
	v2 := newTestVertex(t, sk, 0, 2, 0)

	first := sk.VrtxCreateMiddles(v0, v1, v2)
	for i, m := range first {
		if !m.IsNew {
			t.Fatalf("middle %d should be new on first call", i)
		}
	}

	// Same triangle, corners permuted: each midpoint is keyed by an
	// unordered pair so it must dedup regardless of winding.
	second := sk.VrtxCreateMiddles(v1, v2, v0)
	for i, m := range second {
		if m.IsNew {
			t.Fatalf("middle %d should already exist on second call", i)
		}
	}

	// first[k] = mid(edge_k of (v0,v1,v2)) = mid of pair excluding corner k.
	// second corners are (v1,v2,v0): second[0] = mid(v2,v0) = first[1].
	if second[0].Id != first[1].Id {
		t.Fatalf("expected permuted pair to dedup to the same vertex")
	}
}

func TestTriSubdivChildCornersAndIntraGroupNeighbors(t *testing.T) {
	sk := NewSkeleton(0)
	v0 := newTestVertex(t, sk, 0, 0, 0)
	v1 := newTestVertex(t, sk, 2, 0, 0)
	v2 := newTestVertex(t, sk, 0, 2, 0)
	root := sk.NewRootGroup([3]VertexId{v0, v1, v2})

	middlesNew := sk.VrtxCreateMiddles(v0, v1, v2)
	middles := [3]VertexId{middlesNew[0].Id, middlesNew[1].Id, middlesNew[2].Id}

	groupId := sk.TriSubdiv(root, middles)
	group := sk.TriGroupAt(groupId)

	wantCorners := [4][3]VertexId{
		{v0, middles[1], middles[2]},
		{v1, middles[2], middles[0]},
		{v2, middles[0], middles[1]},
		{middles[0], middles[2], middles[1]},
	}
	for i, want := range wantCorners {
		if group.Triangles[i].Corners != want {
			t.Fatalf("child %d corners = %v, want %v", i, group.Triangles[i].Corners, want)
		}
	}

	// Every corner child must border the center child, and vice versa.
	for i := 0; i < 3; i++ {
		child := triID(groupId, i)
		center := triID(groupId, 3)
		found := false
		for _, n := range group.Triangles[i].Neighbors {
			if n == center {
				found = true
			}
		}
		if !found {
			t.Fatalf("corner child %d does not border the center child", i)
		}
		foundBack := false
		for _, n := range group.Triangles[3].Neighbors {
			if n == child {
				foundBack = true
			}
		}
		if !foundBack {
			t.Fatalf("center child does not border corner child %d", i)
		}
	}

	if !sk.TriAt(root).Children.Valid() || sk.TriAt(root).Children != groupId {
		t.Fatal("parent triangle's Children must be set to the new group")
	}
}

// buildSharedEdgePair creates two root triangles A (v0,v1,v2) and B
// (v1,v0,v3) sharing the edge v0-v1, with that edge's neighbor slots
// already cross-linked, and returns them along with v3.
func buildSharedEdgePair(t *testing.T, sk *Skeleton) (a, b TriId, v0, v1, v2, v3 VertexId) {
	t.Helper()
	v0 = newTestVertex(t, sk, 0, 0, 0)
	v1 = newTestVertex(t, sk, 2, 0, 0)
	v2 = newTestVertex(t, sk, 0, 2, 0)
	v3 = newTestVertex(t, sk, 2, 2, 0)

	a = sk.NewRootGroup([3]VertexId{v0, v1, v2})
	b = sk.NewRootGroup([3]VertexId{v1, v0, v3})

	// edge_k is opposite corner k: edge connecting (v0,v1) is edge 2 on
	// both triangles here (corners[0],corners[1] for each).
	sk.SetNeighbor(a, 2, b)
	sk.SetNeighbor(b, 2, a)
	return a, b, v0, v1, v2, v3
}

func TestTriGroupSetNeighboring(t *testing.T) {
	sk := NewSkeleton(0)
	a, b, v0, v1, _, _ := buildSharedEdgePair(t, sk)

	mA := sk.VrtxCreateMiddles(sk.TriAt(a).Corners[0], sk.TriAt(a).Corners[1], sk.TriAt(a).Corners[2])
	groupA := sk.TriSubdiv(a, [3]VertexId{mA[0].Id, mA[1].Id, mA[2].Id})

	mB := sk.VrtxCreateMiddles(sk.TriAt(b).Corners[0], sk.TriAt(b).Corners[1], sk.TriAt(b).Corners[2])
	groupB := sk.TriSubdiv(b, [3]VertexId{mB[0].Id, mB[1].Id, mB[2].Id})

	selfPair, neighborPair := sk.TriGroupSetNeighboring(a, 2, b, 2)

	// self.ChildA must own corner v0, self.ChildB must own corner v1
	// (childOwningCorner looks up whichever order TriGroupSetNeighboring
	// picked internally); verify the two sides are mutually consistent
	// instead of hard-coding which of v0/v1 is "A".
	childA := sk.TriAt(selfPair.ChildA)
	childB := sk.TriAt(selfPair.ChildB)
	neighA := sk.TriAt(neighborPair.ChildA)
	neighB := sk.TriAt(neighborPair.ChildB)

	shareVertex := func(x, y *Triangle) bool {
		for _, vx := range x.Corners {
			for _, vy := range y.Corners {
				if vx == vy {
					return true
				}
			}
		}
		return false
	}
	if !shareVertex(childA, neighA) {
		t.Fatal("selfPair.ChildA and neighborPair.ChildA must share a corner vertex")
	}
	if !shareVertex(childB, neighB) {
		t.Fatal("selfPair.ChildB and neighborPair.ChildB must share a corner vertex")
	}

	foundBack := false
	for _, n := range childA.Neighbors {
		if n == neighborPair.ChildA {
			foundBack = true
		}
	}
	if !foundBack {
		t.Fatal("TriGroupSetNeighboring must link selfPair.ChildA -> neighborPair.ChildA")
	}
	foundBack = false
	for _, n := range neighA.Neighbors {
		if n == selfPair.ChildA {
			foundBack = true
		}
	}
	if !foundBack {
		t.Fatal("TriGroupSetNeighboring must link neighborPair.ChildA -> selfPair.ChildA")
	}

	_ = groupA
	_ = groupB
	_ = v0
	_ = v1
}

func TestTriUnsubdivReleasesMidpoints(t *testing.T) {
	sk := NewSkeleton(0)
	v0 := newTestVertex(t, sk, 0, 0, 0)
	v1 := newTestVertex(t, sk, 2, 0, 0)
	v2 := newTestVertex(t, sk, 0, 2, 0)
	root := sk.NewRootGroup([3]VertexId{v0, v1, v2})

	first := sk.VrtxCreateMiddles(v0, v1, v2)
	middles := [3]VertexId{first[0].Id, first[1].Id, first[2].Id}
	sk.TriSubdiv(root, middles)

	sk.TriUnsubdiv(root)
	if sk.TriAt(root).Children.Valid() {
		t.Fatal("TriUnsubdiv must clear Children")
	}

	// Midpoint dedup entries must have been released: a fresh
	// VrtxCreateMiddles call must mint an id again instead of finding a
	// stale dedup entry (the id arena's free list may well hand back the
	// same integer value, which is fine — IsNew is what release broke).
	second := sk.VrtxCreateMiddles(v0, v1, v2)
	for i := range second {
		if !second[i].IsNew {
			t.Fatalf("middle %d should be freshly created after release", i)
		}
	}
}

func TestTriUnsubdivFaultsOnSubdividedChild(t *testing.T) {
	sk := NewSkeleton(0)
	v0 := newTestVertex(t, sk, 0, 0, 0)
	v1 := newTestVertex(t, sk, 2, 0, 0)
	v2 := newTestVertex(t, sk, 0, 2, 0)
	root := sk.NewRootGroup([3]VertexId{v0, v1, v2})

	first := sk.VrtxCreateMiddles(v0, v1, v2)
	middles := [3]VertexId{first[0].Id, first[1].Id, first[2].Id}
	groupId := sk.TriSubdiv(root, middles)

	child0 := triID(groupId, 0)
	m2 := sk.VrtxCreateMiddles(sk.TriAt(child0).Corners[0], sk.TriAt(child0).Corners[1], sk.TriAt(child0).Corners[2])
	sk.TriSubdiv(child0, [3]VertexId{m2[0].Id, m2[1].Id, m2[2].Id})

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic unsubdividing a group with a still-subdivided child")
		}
	}()
	sk.TriUnsubdiv(root)
}
