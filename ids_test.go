package terraskel

import "testing"

func TestTriIdPacking(t *testing.T) {
	for g := GroupId(1); g < 5; g++ {
		for child := 0; child < 4; child++ {
			id := triID(g, child)
			if id.TriGroupId() != g {
				t.Fatalf("TriGroupId() = %d, want %d", id.TriGroupId(), g)
			}
			if id.SiblingIndex() != child {
				t.Fatalf("SiblingIndex() = %d, want %d", id.SiblingIndex(), child)
			}
		}
	}
}

func TestZeroIdsAreInvalid(t *testing.T) {
	if (VertexId(0)).Valid() || (GroupId(0)).Valid() || (TriId(0)).Valid() {
		t.Fatal("zero value ids must be invalid sentinels")
	}
	if !(VertexId(1)).Valid() || !(GroupId(1)).Valid() || !(TriId(1)).Valid() {
		t.Fatal("non-zero ids must be valid")
	}
}

func TestIdArenaAllocRelease(t *testing.T) {
	var a idArena
	id1 := a.alloc()
	id2 := a.alloc()
	if id1 == 0 || id2 == 0 || id1 == id2 {
		t.Fatalf("alloc returned invalid/duplicate ids: %d %d", id1, id2)
	}
	if !a.exists(id1) || !a.exists(id2) {
		t.Fatal("freshly allocated ids should exist")
	}

	a.release(id1)
	if a.exists(id1) {
		t.Fatal("released id should not exist")
	}

	id3 := a.alloc()
	if id3 != id1 {
		t.Fatalf("alloc should reuse the freed id %d, got %d", id1, id3)
	}
}

func TestIdArenaCapacityTracksHighestIssued(t *testing.T) {
	var a idArena
	a.alloc()
	id2 := a.alloc()
	if a.capacity() != id2+1 {
		t.Fatalf("capacity() = %d, want %d", a.capacity(), id2+1)
	}
}

func TestIdArenaReleaseNonexistentFaults(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic releasing a non-alive id")
		}
	}()
	var a idArena
	a.release(42)
}
