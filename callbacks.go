package terraskel

// OnSubdivFunc is called once a triangle has been split into a new
// group of four children, so a host can compute positions/normals for
// any newly created midpoint vertices and build whatever render-side
// geometry it keeps per triangle. middles reports, for each of the
// three midpoints, whether this call is what created it.
type OnSubdivFunc func(sk *Skeleton, tri TriId, group GroupId, corners [3]VertexId, middles [3]MaybeNewId, userData any)

// OnUnsubdivFunc is called just before a group of four children is
// released back into the skeleton, so a host can drop whatever
// render-side geometry it kept for them. triangle is tri's record as
// it stood right before release (still carrying its Children id).
type OnUnsubdivFunc func(sk *Skeleton, tri TriId, triangle Triangle, userData any)
