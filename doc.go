// Package terraskel implements the skeleton of a dynamic
// level-of-detail icosahedral terrain mesh: a recursively subdivided
// triangle graph that stays watertight and crack-free as an observer
// moves toward or away from it.
//
// The package owns the triangle/vertex topology and the bookkeeping
// needed to keep it consistent (neighbor links, per-level boundary
// bitsets, midpoint vertex deduplication). It does not decide where
// vertices sit in space or how triangles get rendered: those are
// supplied by the host through the OnSubdiv/OnUnsubdiv callbacks
// passed to a Scratchpad
// and through Skeleton.SetPosition/SetNormal.
package terraskel
