package terraskel

// levelData is the per-depth acceleration state for one LOD level: two
// bitsets over triangle ids, indexed the same way a triangle's own id
// is, that let a floodfill skip straight to the boundary between
// subdivided and non-subdivided triangles instead of scanning every
// triangle at that depth.
type levelData struct {
	// hasSubdivedNeighbor is set on a non-subdivided triangle that
	// borders at least one subdivided triangle.
	hasSubdivedNeighbor bitset
	// hasNonSubdivedNeighbor is set on a subdivided triangle that
	// borders at least one non-subdivided triangle.
	hasNonSubdivedNeighbor bitset
}

// Levels holds one levelData per LOD depth, 0 through levelMax-1.
type Levels struct {
	levels []levelData
}

// NewLevels allocates level state for levelMax depths.
func NewLevels(levelMax int) *Levels {
	return &Levels{levels: make([]levelData, levelMax)}
}

// Resize grows every level's bitsets to the given triangle capacity.
func (lv *Levels) Resize(triCapacity int) {
	for i := range lv.levels {
		lv.levels[i].hasSubdivedNeighbor.resize(triCapacity)
		lv.levels[i].hasNonSubdivedNeighbor.resize(triCapacity)
	}
}

func (lv *Levels) HasSubdivedNeighbor(lvl int, t TriId) bool {
	return lv.levels[lvl].hasSubdivedNeighbor.test(int(t))
}

func (lv *Levels) SetHasSubdivedNeighbor(lvl int, t TriId, v bool) {
	lv.levels[lvl].hasSubdivedNeighbor.setTo(int(t), v)
}

func (lv *Levels) HasNonSubdivedNeighbor(lvl int, t TriId) bool {
	return lv.levels[lvl].hasNonSubdivedNeighbor.test(int(t))
}

func (lv *Levels) SetHasNonSubdivedNeighbor(lvl int, t TriId, v bool) {
	lv.levels[lvl].hasNonSubdivedNeighbor.setTo(int(t), v)
}

// NonSubdivedNeighborOnes appends every triangle id with
// hasNonSubdivedNeighbor set at lvl to dst.
func (lv *Levels) NonSubdivedNeighborOnes(lvl int, dst []int) []int {
	return lv.levels[lvl].hasNonSubdivedNeighbor.ones(dst)
}

// Count returns the number of levels held.
func (lv *Levels) Count() int { return len(lv.levels) }
