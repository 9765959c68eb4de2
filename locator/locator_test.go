package locator

import (
	"testing"

	"github.com/soypat/terraskel"
	"github.com/soypat/terraskel/internal/seed"
)

func TestLocatorNearestFindsClosestLeaf(t *testing.T) {
	sk := terraskel.NewSkeleton(4)
	ico := seed.Build(sk, 1000)

	centers := terraskel.NewCenters()
	centers.Resize(sk.TriCapacity())
	for _, root := range ico.Roots {
		terraskel.CalcSphereTriCenter(sk, centers, root.TriGroupId(), 0, 0)
	}

	loc := New()
	loc.Rebuild(sk, centers)

	// Every root face is a leaf before any subdivision; Nearest should
	// return some valid leaf triangle for any query point.
	id, ok := loc.Nearest(terraskel.Vec3i{X: 1000 << 4, Y: 0, Z: 0})
	if !ok {
		t.Fatal("expected Nearest to find a leaf")
	}
	if sk.IsTriSubdivided(id) {
		t.Fatal("Nearest must return a leaf triangle")
	}
}

func TestLocatorEmptyBeforeRebuild(t *testing.T) {
	loc := New()
	if _, ok := loc.Nearest(terraskel.Vec3i{}); ok {
		t.Fatal("a fresh Locator must report no nearest triangle")
	}
}
