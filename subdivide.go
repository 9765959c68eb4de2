package terraskel

// Subdivide splits triId into a new group of four children, repairs
// the per-level acceleration bitsets, and recursively subdivides
// whatever neighbors are required to keep the structural invariants:
// Rule A (a leaf never has two or more subdivided neighbors) and Rule
// B (a corner child's parent-level neighbor on a missing edge must
// already be subdivided). hasNextLevel tells it whether lvl+1 exists,
// since the deepest level never seeds a next wave.
func Subdivide(sk *Skeleton, lv *Levels, centers *Centers, sp *Scratchpad, triId TriId, lvl uint8, hasNextLevel bool) GroupId {
	tri := sk.TriAt(triId)
	if tri.Children.Valid() {
		fault("triangle %d is already subdivided", triId)
	}
	neighbors := tri.Neighbors
	corners := tri.Corners

	middlesNew := sk.VrtxCreateMiddles(corners[0], corners[1], corners[2])
	middles := [3]VertexId{middlesNew[0].Id, middlesNew[1].Id, middlesNew[2].Id}

	groupId := sk.TriSubdiv(triId, middles)

	triCapacity := sk.TriCapacity()
	sp.Resize(triCapacity)
	lv.Resize(triCapacity)
	centers.Resize(triCapacity)

	if hasNextLevel {
		sp.SeedLevel(lvl+1, triID(groupId, 0), triID(groupId, 1), triID(groupId, 2), triID(groupId, 3))
	}

	if sp.OnSubdiv != nil {
		sp.OnSubdiv(sk, triId, groupId, corners, middlesNew, sp.OnSubdivUserData)
	}

	// hasSubdivedNeighbor is only meaningful for non-subdivided
	// triangles; triId just stopped being one.
	lv.SetHasSubdivedNeighbor(int(lvl), triId, false)

	hasNonSubdivNeighbor := false

	for selfEdge := 0; selfEdge < 3; selfEdge++ {
		neighborId := neighbors[selfEdge]
		if !neighborId.Valid() {
			continue
		}
		rNeighbor := sk.TriAt(neighborId)
		if rNeighbor.Children.Valid() {
			neighborEdge := sk.FindNeighborIndex(neighborId, triId)
			selfPair, neighborPair := sk.TriGroupSetNeighboring(triId, selfEdge, neighborId, neighborEdge)

			if hasNextLevel {
				if sk.IsTriSubdivided(neighborPair.ChildA) {
					lv.SetHasSubdivedNeighbor(int(lvl+1), selfPair.ChildA, true)
					lv.SetHasNonSubdivedNeighbor(int(lvl+1), neighborPair.ChildA, true)
				}
				if sk.IsTriSubdivided(neighborPair.ChildB) {
					lv.SetHasSubdivedNeighbor(int(lvl+1), selfPair.ChildB, true)
					lv.SetHasNonSubdivedNeighbor(int(lvl+1), neighborPair.ChildB, true)
				}
			}

			neighborHasNonSubdivedNeighbor := false
			for _, nn := range rNeighbor.Neighbors {
				if nn.Valid() && nn != triId && !sk.IsTriSubdivided(nn) {
					neighborHasNonSubdivedNeighbor = true
					break
				}
			}
			lv.SetHasNonSubdivedNeighbor(int(lvl), neighborId, neighborHasNonSubdivedNeighbor)
		} else {
			hasNonSubdivNeighbor = true
			lv.SetHasSubdivedNeighbor(int(lvl), neighborId, true)
		}
	}

	lv.SetHasNonSubdivedNeighbor(int(lvl), triId, hasNonSubdivNeighbor)

	// Rule A / Rule B repair: this can recursively subdivide other
	// triangles, including ones at the level above.
	for selfEdge := 0; selfEdge < 3; selfEdge++ {
		neighborId := sk.TriAt(triId).Neighbors[selfEdge]
		if neighborId.Valid() {
			rNeighbor := sk.TriAt(neighborId)
			if rNeighbor.Children.Valid() {
				continue // neighbor already subdivided, nothing to do
			}

			isOtherSubdivided := func(other TriId) bool {
				return other.Valid() && other != triId && sk.IsTriSubdivided(other)
			}

			if isOtherSubdivided(rNeighbor.Neighbors[0]) || isOtherSubdivided(rNeighbor.Neighbors[1]) || isOtherSubdivided(rNeighbor.Neighbors[2]) {
				// Rule A violation: neighbor would end up with 2+
				// subdivided neighbors. Subdivide it too.
				Subdivide(sk, lv, centers, sp, neighborId, lvl, hasNextLevel)
				sp.distanceTestDone.resize(sk.TriCapacity())
				sp.distanceTestDone.set(int(neighborId))
			} else if !sp.distanceTestDone.test(int(neighborId)) {
				sp.Levels[lvl].distanceTestNext = append(sp.Levels[lvl].distanceTestNext, neighborId)
				sp.distanceTestDone.set(int(neighborId))
			}
		} else {
			// Neighbor slot absent: its parent isn't subdivided yet.
			if triId.SiblingIndex() == 3 {
				fault("center triangles are always surrounded by their siblings")
			}
			if lvl == 0 {
				fault("no level above level 0")
			}

			parent := sk.TriGroupAt(triId.TriGroupId()).Parent
			if !parent.Valid() {
				fault("root triangle is missing a neighbor and has no parent")
			}
			// triId's local edge index does not match the parent edge
			// it lies on: corner child i's edges 1 and 2 sit on parent
			// edges (i+2)%3 and (i+1)%3 respectively (see TriSubdiv), so
			// the parent edge is the inverse of that mapping.
			parentEdge := (triId.SiblingIndex() + 3 - selfEdge) % 3
			parentNeighbors := sk.TriAt(parent).Neighbors
			if !parentNeighbors[parentEdge].Valid() {
				fault("parent triangle is missing the corresponding neighbor")
			}
			neighborParent := parentNeighbors[parentEdge]

			Subdivide(sk, lv, centers, sp, neighborParent, lvl-1, true)
			sp.distanceTestDone.set(int(neighborParent))

			if lvl-1 < sp.LevelNeedProcess {
				sp.LevelNeedProcess = lvl - 1
			}
		}
	}

	return groupId
}

// SubdivideLevelByDistance drains lvl's floodfill queue, subdividing
// every leaf whose cached center is within DistanceThresholdSubdiv[lvl]
// of pos and enqueuing already-subdivided children for the next level
// down. It must be called in level order (lvl == sp.LevelNeedProcess);
// any Rule B repair that reaches back up a level is drained inline
// before this call returns.
func SubdivideLevelByDistance(sk *Skeleton, lv *Levels, centers *Centers, sp *Scratchpad, pos Vec3i, lvl uint8) {
	if lvl != sp.LevelNeedProcess {
		fault("subdivide level %d called out of order, expected %d", lvl, sp.LevelNeedProcess)
	}
	hasNextLevel := lvl+1 < sp.LevelMax

	for len(sp.Levels[lvl].distanceTestNext) != 0 {
		processing := sp.swapLevel(lvl)
		sp.distanceTestDone.resize(sk.TriCapacity())

		for _, triId := range processing {
			center := centers.Get(triId)
			near := isDistanceNear(pos, center, sp.DistanceThresholdSubdiv[lvl])
			sp.DistanceCheckCount++

			if near {
				tri := sk.TriAt(triId)
				if tri.Children.Valid() {
					if hasNextLevel {
						g := tri.Children
						sp.SeedLevel(lvl+1, triID(g, 0), triID(g, 1), triID(g, 2), triID(g, 3))
					}
				} else {
					Subdivide(sk, lv, centers, sp, triId, lvl, hasNextLevel)
				}
			}

			for sp.LevelNeedProcess != lvl {
				SubdivideLevelByDistance(sk, lv, centers, sp, pos, sp.LevelNeedProcess)
			}
		}
	}

	if lvl != sp.LevelNeedProcess {
		fault("level processing order invariant broken")
	}
	sp.LevelNeedProcess++
}
