package terraskel

// UnsubdivideLevelByDistance floodfills lvl starting from every
// subdivided triangle already known to border a non-subdivided one,
// nominating for unsubdivision (into sp's tryUnsubdiv bitset) every
// fully-leaf group whose cached center has drifted beyond
// DistanceThresholdUnsubdiv[lvl] from pos. It only ever looks at
// triangles whose four children are themselves all leaves: a group
// with a still-subdivided grandchild cannot unsubdivide yet.
func UnsubdivideLevelByDistance(sk *Skeleton, lv *Levels, centers *Centers, sp *Scratchpad, pos Vec3i, lvl uint8) {
	maybeDistanceCheck := func(triId TriId) {
		if sp.distanceTestDone.test(int(triId)) {
			return
		}
		childrenId := sk.TriAt(triId).Children
		if !childrenId.Valid() {
			return
		}
		children := sk.TriGroupAt(childrenId)
		for i := 0; i < 4; i++ {
			if children.Triangles[i].Children.Valid() {
				return
			}
		}
		sp.Levels[lvl].distanceTestNext = append(sp.Levels[lvl].distanceTestNext, triId)
		sp.distanceTestDone.set(int(triId))
	}

	var seeds []int
	seeds = lv.NonSubdivedNeighborOnes(int(lvl), seeds)
	for _, s := range seeds {
		maybeDistanceCheck(TriId(s))
	}

	for len(sp.Levels[lvl].distanceTestNext) != 0 {
		processing := sp.swapLevel(lvl)

		for _, triId := range processing {
			center := centers.Get(triId)
			tooFar := !isDistanceNear(pos, center, sp.DistanceThresholdUnsubdiv[lvl])

			if !sk.IsTriSubdivided(triId) {
				fault("non-subdivided triangle must not be added to the unsubdivide distance test")
			}

			if tooFar {
				sp.tryUnsubdiv.set(int(triId))

				tri := sk.TriAt(triId)
				for _, neighbor := range tri.Neighbors {
					if neighbor.Valid() {
						maybeDistanceCheck(neighbor)
					}
				}
			}
		}
	}
}

// UnsubdivideLevelCheckRules checks the single candidate triId and
// vetoes it (into sp.cantUnsubdiv) if it would break Rule A or Rule B
// if actually unsubdivided, propagating the veto recursively into
// neighboring candidates the same way a subdivision propagates a
// repair. UnsubdivideLevelCheckRulesAll runs it over every candidate.
func UnsubdivideLevelCheckRules(sk *Skeleton, sp *Scratchpad, triId TriId) {
	var violatesRules func(triId TriId) bool
	violatesRules = func(triId TriId) bool {
		tri := sk.TriAt(triId)
		subdivedNeighbors := 0
		for _, neighbor := range tri.Neighbors {
			if !neighbor.Valid() {
				continue
			}
			rNeighbor := sk.TriAt(neighbor)
			if rNeighbor.Children.Valid() &&
				(!sp.tryUnsubdiv.test(int(neighbor)) || sp.cantUnsubdiv.test(int(neighbor))) {
				subdivedNeighbors++

				neighborEdge := sk.FindNeighborIndex(neighbor, triId)
				neighborGroup := sk.TriGroupAt(rNeighbor.Children)

				// Rule B: the neighbor's two children bordering this
				// edge (see TriSubdiv: a parent edge e is bordered by
				// corner children (e+1)%3 and (e+2)%3) must both stay
				// leaves, or this triangle cannot unsubdivide either.
				c0, c1 := (neighborEdge+1)%3, (neighborEdge+2)%3
				if neighborGroup.Triangles[c0].Children.Valid() || neighborGroup.Triangles[c1].Children.Valid() {
					return true
				}
			}
		}
		return subdivedNeighbors >= 2 // Rule A
	}

	var checkRecurse func(triId TriId)
	checkRecurse = func(triId TriId) {
		if violatesRules(triId) {
			sp.cantUnsubdiv.set(int(triId))
			for _, neighbor := range sk.TriAt(triId).Neighbors {
				if neighbor.Valid() && sp.tryUnsubdiv.test(int(neighbor)) && !sp.cantUnsubdiv.test(int(neighbor)) {
					checkRecurse(neighbor)
				}
			}
		}
	}

	if !sp.cantUnsubdiv.test(int(triId)) {
		checkRecurse(triId)
	}
}

// UnsubdivideLevelCheckRulesAll runs UnsubdivideLevelCheckRules over
// every candidate sp.tryUnsubdiv nominated.
func UnsubdivideLevelCheckRulesAll(sk *Skeleton, sp *Scratchpad) {
	var candidates []int
	candidates = sp.tryUnsubdiv.ones(candidates)
	for _, c := range candidates {
		if !sp.cantUnsubdiv.test(c) {
			UnsubdivideLevelCheckRules(sk, sp, TriId(c))
		}
	}
}

// UnsubdivideLevel commits every triangle still marked tryUnsubdiv
// (and not vetoed by cantUnsubdiv) at lvl: it repairs the acceleration
// bitsets for the surviving neighbors, invokes sp.OnUnsubdiv, releases
// the child group, and finally clears both scratchpad bitsets ready
// for the next pass.
func UnsubdivideLevel(sk *Skeleton, lv *Levels, sp *Scratchpad, lvl uint8) {
	wontUnsubdivide := func(triId TriId) bool {
		return !sp.tryUnsubdiv.test(int(triId)) || sp.cantUnsubdiv.test(int(triId))
	}

	var candidates []int
	candidates = sp.tryUnsubdiv.ones(candidates)
	for _, c := range candidates {
		if sp.cantUnsubdiv.test(c) {
			continue
		}
		triId := TriId(c)
		tri := sk.TriAt(triId)

		for _, neighborId := range tri.Neighbors {
			if !neighborId.Valid() || !wontUnsubdivide(neighborId) {
				continue
			}
			neighborTri := sk.TriAt(neighborId)
			if neighborTri.Children.Valid() {
				lv.SetHasNonSubdivedNeighbor(int(lvl), neighborId, true)
				lv.SetHasSubdivedNeighbor(int(lvl), triId, true)
			} else {
				neighborHasSubdivedNeighbor := false
				for _, nn := range neighborTri.Neighbors {
					if nn.Valid() && nn != triId && wontUnsubdivide(nn) && sk.IsTriSubdivided(nn) {
						neighborHasSubdivedNeighbor = true
						break
					}
				}
				lv.SetHasSubdivedNeighbor(int(lvl), neighborId, neighborHasSubdivedNeighbor)
			}
		}

		lv.SetHasNonSubdivedNeighbor(int(lvl), triId, false)

		if sp.OnUnsubdiv != nil {
			sp.OnUnsubdiv(sk, triId, *tri, sp.OnUnsubdivUserData)
		}

		sk.TriUnsubdiv(triId)
	}

	sp.tryUnsubdiv.resetAll()
	sp.cantUnsubdiv.resetAll()
}
