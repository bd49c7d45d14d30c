package voronoi

import "math"

// Float2EqualsEpsilon is the tolerance used by Float2Equals, and by the
// merge engine's triple-point detection.
const Float2EqualsEpsilon = 1e-6

// Perpendicular returns v rotated 90° left: (-v.Y, v.X).
func Perpendicular(v Vertex) Vertex {
	return Vertex{-v.Y, v.X}
}

// Intersection computes the intersection of the infinite lines through
// ab and cd. ok is false for parallel or coincident lines.
func Intersection(a, b, c, d Vertex) (p Vertex, ok bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.X*s.Y - r.Y*s.X
	if denom == 0 {
		return Vertex{}, false
	}
	t := ((c.X-a.X)*s.Y - (c.Y-a.Y)*s.X) / denom
	return a.Add(r.Scale(t)), true
}

// PointOnLineSegment reports whether p lies on the closed segment cd, by
// checking p against cd's axis-aligned bounding box. p is assumed
// colinear with cd by construction (it is the output of Intersection
// applied to cd and some other line).
func PointOnLineSegment(c, d, p Vertex) bool {
	minX, maxX := c.X, d.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := c.Y, d.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return p.X >= minX-Float2EqualsEpsilon && p.X <= maxX+Float2EqualsEpsilon &&
		p.Y >= minY-Float2EqualsEpsilon && p.Y <= maxY+Float2EqualsEpsilon
}

// RaySide returns the sign of the signed area of triangle abp: positive
// when p lies left of the directed ray a→b, negative when right, zero
// when colinear.
func RaySide(a, b, p Vertex) int {
	area := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	switch {
	case area > Float2EqualsEpsilon:
		return 1
	case area < -Float2EqualsEpsilon:
		return -1
	default:
		return 0
	}
}

// Float2Equals reports whether p and q agree within Float2EqualsEpsilon
// in both coordinates.
func Float2Equals(p, q Vertex) bool {
	return math.Abs(p.X-q.X) < Float2EqualsEpsilon && math.Abs(p.Y-q.Y) < Float2EqualsEpsilon
}

// BuildRayEnd extrapolates an unbounded Voronoi edge emanating from
// origin, perpendicular to lSite→rSite, to a finite endpoint well
// outside the site bounding box. maxExtent is the per-merge scratch
// value (the max coordinate extent of all sites); the endpoint is
// placed maxExtent*4 away, per spec.md §4.1's stated margin policy.
func BuildRayEnd(origin, lSite, rSite Vertex, maxExtent float64) Vertex {
	dir := Perpendicular(lSite.Sub(rSite)).Normalize()
	if dir == (Vertex{}) {
		// lSite and rSite coincide: no meaningful bisector direction.
		// Degenerate input the driver is responsible for avoiding
		// (spec.md §7, numeric degeneracy).
		return origin
	}
	return origin.Add(dir.Scale(maxExtent * 4))
}

// MaxCoordinateExtent returns the span of the bounding box of sites,
// i.e. max(maxX-minX, maxY-minY). Used as BuildRayEnd's scratch value.
func MaxCoordinateExtent(sites []Site) float64 {
	if len(sites) == 0 {
		return 1
	}
	minX, maxX := sites[0].Pt.X, sites[0].Pt.X
	minY, maxY := sites[0].Pt.Y, sites[0].Pt.Y
	for _, s := range sites[1:] {
		minX = math.Min(minX, s.Pt.X)
		maxX = math.Max(maxX, s.Pt.X)
		minY = math.Min(minY, s.Pt.Y)
		maxY = math.Max(maxY, s.Pt.Y)
	}
	extent := math.Max(maxX-minX, maxY-minY)
	if extent == 0 {
		return 1
	}
	return extent
}
