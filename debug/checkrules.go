// Package debug holds test and inspection tooling for a terraskel
// skeleton: a structural-invariant auditor, STL export, rasterized
// snapshots, and a per-level histogram. Nothing here is called by the
// engine itself; a host wires it into its own debug builds or tests.
package debug

import (
	"fmt"

	"github.com/soypat/terraskel"
)

// CheckRules walks every live triangle in sk and panics with a
// descriptive message the first time it finds a triangle whose
// neighbor topology, Rule A/Rule B compliance, or per-level
// acceleration bitsets are inconsistent. It is O(triangles) and is
// meant for tests and debug builds, never production code paths.
func CheckRules(sk *terraskel.Skeleton, lv *terraskel.Levels) {
	triCapacity := sk.TriCapacity()
	for i := 0; i < triCapacity; i++ {
		triId := terraskel.TriId(i)
		groupId := triId.TriGroupId()
		if !sk.GroupExists(groupId) {
			continue
		}
		tri := sk.TriAt(triId)
		if !tri.Corners[0].Valid() {
			continue // unused slot of a root group
		}
		group := sk.TriGroupAt(groupId)

		subdivedNeighbors, nonSubdivedNeighbors := 0, 0
		for edge := 0; edge < 3; edge++ {
			neighbor := tri.Neighbors[edge]
			if neighbor.Valid() {
				if sk.IsTriSubdivided(neighbor) {
					subdivedNeighbors++
				} else {
					nonSubdivedNeighbors++
				}
				continue
			}

			parent := group.Parent
			if !parent.Valid() {
				panic(fmt.Sprintf("terraskel debug: triangle %d has no neighbor on edge %d and no parent", triId, edge))
			}
			// A corner child's local edge is not the parent edge it lies
			// on; map it the same way Subdivide's Rule B repair does.
			parentEdge := (triId.SiblingIndex() + 3 - edge) % 3
			parentNeighbors := sk.TriAt(parent).Neighbors
			if !parentNeighbors[parentEdge].Valid() {
				panic(fmt.Sprintf("terraskel debug: rule B violation at triangle %d edge %d", triId, edge))
			}
			if sk.IsTriSubdivided(parentNeighbors[parentEdge]) {
				panic(fmt.Sprintf("terraskel debug: triangle %d edge %d missing neighbor but parent's neighbor is subdivided", triId, edge))
			}
		}

		if !tri.Children.Valid() && subdivedNeighbors >= 2 {
			panic(fmt.Sprintf("terraskel debug: rule A violation at triangle %d (%d subdivided neighbors)", triId, subdivedNeighbors))
		}

		if int(group.Depth) >= lv.Count() {
			continue
		}

		if tri.Children.Valid() {
			if lv.HasNonSubdivedNeighbor(int(group.Depth), triId) != (nonSubdivedNeighbors != 0) {
				panic(fmt.Sprintf("terraskel debug: hasNonSubdivedNeighbor incorrect at triangle %d depth %d", triId, group.Depth))
			}
			if lv.HasSubdivedNeighbor(int(group.Depth), triId) {
				panic(fmt.Sprintf("terraskel debug: hasSubdivedNeighbor set on subdivided triangle %d", triId))
			}
		} else {
			if lv.HasSubdivedNeighbor(int(group.Depth), triId) != (subdivedNeighbors != 0) {
				panic(fmt.Sprintf("terraskel debug: hasSubdivedNeighbor incorrect at triangle %d depth %d", triId, group.Depth))
			}
			if lv.HasNonSubdivedNeighbor(int(group.Depth), triId) {
				panic(fmt.Sprintf("terraskel debug: hasNonSubdivedNeighbor set on non-subdivided triangle %d", triId))
			}
		}
	}
}
