package terraskel_test

import (
	"testing"

	"github.com/soypat/terraskel"
	"github.com/soypat/terraskel/debug"
	"github.com/soypat/terraskel/internal/seed"
)

// TestEndToEndObserverApproachAndRetreat drives a full subdivide pass
// as an observer approaches the globe, then a full unsubdivide pass as
// it retreats, checking structural invariants after each half.
func TestEndToEndObserverApproachAndRetreat(t *testing.T) {
	const (
		levelMax = 3
		scale    = 4
		radius   = 1000.0
	)
	sk := terraskel.NewSkeleton(scale)
	ico := seed.Build(sk, radius)

	lv := terraskel.NewLevels(levelMax)
	centers := terraskel.NewCenters()
	lv.Resize(sk.TriCapacity())
	centers.Resize(sk.TriCapacity())

	scaleFactor := int64(1) << scale
	thresholdSubdiv := []int64{int64(radius * 0.7) * scaleFactor, int64(radius * 0.35) * scaleFactor, int64(radius * 0.18) * scaleFactor}
	thresholdUnsubdiv := []int64{int64(radius * 0.9) * scaleFactor, int64(radius * 0.5) * scaleFactor, int64(radius * 0.3) * scaleFactor}

	onSubdiv := func(sk *terraskel.Skeleton, tri terraskel.TriId, group terraskel.GroupId, corners [3]terraskel.VertexId, middles [3]terraskel.MaybeNewId, _ any) {
		pairs := [3][2]terraskel.VertexId{
			{corners[1], corners[2]},
			{corners[2], corners[0]},
			{corners[0], corners[1]},
		}
		for k, m := range middles {
			if !m.IsNew {
				continue
			}
			a, b := sk.Position(pairs[k][0]), sk.Position(pairs[k][1])
			mid := a.Add(b).DivScalar(2)
			sk.SetPosition(m.Id, mid)
			sk.SetNormal(m.Id, mid.ToVec3())
		}
		terraskel.CalcSphereTriCenter(sk, centers, group, 0, 0)
	}

	sp := terraskel.NewScratchpad(levelMax, thresholdSubdiv, thresholdUnsubdiv, onSubdiv, nil, nil, nil)
	for _, root := range ico.Roots {
		terraskel.CalcSphereTriCenter(sk, centers, root.TriGroupId(), 0, 0)
		sp.SeedLevel(0, root)
	}

	near := terraskel.Vec3i{X: int64(radius * float64(scaleFactor)), Y: 0, Z: 0}

	sp.LevelNeedProcess = 0
	for lvl := uint8(0); lvl < levelMax; lvl++ {
		terraskel.SubdivideLevelByDistance(sk, lv, centers, sp, near, lvl)
	}
	debug.CheckRules(sk, lv)

	groupsAfterSubdiv := sk.LiveGroupCount()
	if groupsAfterSubdiv <= 20 {
		t.Fatalf("expected subdivision near the observer to create new groups, got %d", groupsAfterSubdiv)
	}

	sp.ResetDistanceTestDone()

	far := terraskel.Vec3i{X: int64(radius * float64(scaleFactor) * 100), Y: 0, Z: 0}
	for lvl := uint8(0); lvl < levelMax; lvl++ {
		terraskel.UnsubdivideLevelByDistance(sk, lv, centers, sp, far, lvl)
		terraskel.UnsubdivideLevelCheckRulesAll(sk, sp)
		terraskel.UnsubdivideLevel(sk, lv, sp, lvl)
	}
	debug.CheckRules(sk, lv)

	groupsAfterUnsubdiv := sk.LiveGroupCount()
	if groupsAfterUnsubdiv >= groupsAfterSubdiv {
		t.Fatalf("expected unsubdivision far from the observer to release groups, had %d live groups, still have %d", groupsAfterSubdiv, groupsAfterUnsubdiv)
	}
}
