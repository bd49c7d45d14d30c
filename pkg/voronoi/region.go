package voronoi

import "math"

// RayRegionCrossing finds, among region's edges, the one that the
// infinite line through origin in direction dir crosses closest to
// origin in a rotated coordinate frame where dir maps to +Y —
// "closest" meaning smallest rotated-frame Y, which can be negative.
// Returns dist = +Inf and edgeIdx = NullEdgeIndex if no edge in region
// is crossed.
func RayRegionCrossing(origin, dir Vertex, edges []Edge, region []int) (dist float64, point Vertex, edgeIdx int, edge Edge) {
	ndir := dir.Normalize()
	dist = math.Inf(1)
	edgeIdx = NullEdgeIndex

	for _, idx := range region {
		e := edges[idx]
		p, ok := Intersection(origin, origin.Add(dir), e.Start, e.End)
		if !ok || !PointOnLineSegment(e.Start, e.End, p) {
			continue
		}
		d := p.Sub(origin).Dot(ndir)
		if d < dist {
			dist = d
			point = p
			edgeIdx = idx
			edge = e
		}
	}
	return dist, point, edgeIdx, edge
}

// RegionCrossing finds, among region's edges other than excluded, the
// one the ray from origin in direction dir crosses closest to origin
// in the forward direction (dot(dir, point-origin) > 0). "Approach" is
// the squared Euclidean distance from origin. crossed is false if no
// edge qualifies.
func RegionCrossing(origin, dir Vertex, edges []Edge, region []int, excluded int) (crossed bool, approach float64, point Vertex, edgeIdx int, edge Edge) {
	edgeIdx = NullEdgeIndex

	for _, idx := range region {
		if idx == excluded {
			continue
		}
		e := edges[idx]
		p, ok := Intersection(origin, origin.Add(dir), e.Start, e.End)
		if !ok || !PointOnLineSegment(e.Start, e.End, p) {
			continue
		}
		delta := p.Sub(origin)
		if delta.Dot(dir) <= 0 {
			continue
		}
		a := delta.Dot(delta)
		if !crossed || a < approach {
			crossed = true
			approach = a
			point = p
			edgeIdx = idx
			edge = e
		}
	}
	return crossed, approach, point, edgeIdx, edge
}
