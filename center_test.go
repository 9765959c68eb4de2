package terraskel

import "testing"

func TestCalcSphereTriCenterPopulatesAllFourChildren(t *testing.T) {
	sk := NewSkeleton(4)
	v0 := newTestVertex(t, sk, 100, 0, 0)
	v1 := newTestVertex(t, sk, 0, 100, 0)
	v2 := newTestVertex(t, sk, 0, 0, 100)
	root := sk.NewRootGroup([3]VertexId{v0, v1, v2})

	// Only slot 0 of a root group is a real triangle, so subdivide it to
	// get a group whose four children all have corners.
	m := sk.VrtxCreateMiddles(v0, v1, v2)
	for k, pair := range [3][2]VertexId{{v1, v2}, {v2, v0}, {v0, v1}} {
		sk.SetPosition(m[k].Id, sk.Position(pair[0]).Add(sk.Position(pair[1])).DivScalar(2))
	}
	groupId := sk.TriSubdiv(root, [3]VertexId{m[0].Id, m[1].Id, m[2].Id})

	centers := NewCenters()
	centers.Resize(sk.TriCapacity())

	CalcSphereTriCenter(sk, centers, groupId, 10, 5)

	for i := 0; i < 4; i++ {
		c := centers.Get(triID(groupId, i))
		if c == (Vec3i{}) {
			t.Fatalf("child %d center should not be the zero vector", i)
		}
	}
}

func TestCalcSphereTriCenterFaultsPastTable(t *testing.T) {
	sk := NewSkeleton(0)
	v0 := newTestVertex(t, sk, 0, 0, 0)
	v1 := newTestVertex(t, sk, 1, 0, 0)
	v2 := newTestVertex(t, sk, 0, 1, 0)
	root := sk.NewRootGroup([3]VertexId{v0, v1, v2})
	groupId := root.TriGroupId()
	sk.groups[groupId].Depth = uint8(len(towerOverHorizon))

	centers := NewCenters()
	centers.Resize(sk.TriCapacity())

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic past the tower-over-horizon table")
		}
	}()
	CalcSphereTriCenter(sk, centers, groupId, 10, 5)
}
