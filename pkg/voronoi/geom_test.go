package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerpendicular(t *testing.T) {
	assert.Equal(t, Vertex{X: -1, Y: 0}, Perpendicular(Vertex{X: 0, Y: 1}))
	assert.Equal(t, Vertex{X: 0, Y: 1}, Perpendicular(Vertex{X: 1, Y: 0}))
}

func TestIntersection(t *testing.T) {
	p, ok := Intersection(Vertex{X: 0, Y: 0}, Vertex{X: 10, Y: 0}, Vertex{X: 5, Y: -5}, Vertex{X: 5, Y: 5})
	assert.True(t, ok)
	assert.InDelta(t, 5, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
}

func TestIntersectionParallel(t *testing.T) {
	_, ok := Intersection(Vertex{X: 0, Y: 0}, Vertex{X: 10, Y: 0}, Vertex{X: 0, Y: 1}, Vertex{X: 10, Y: 1})
	assert.False(t, ok)
}

func TestPointOnLineSegment(t *testing.T) {
	assert.True(t, PointOnLineSegment(Vertex{X: 0, Y: 0}, Vertex{X: 10, Y: 10}, Vertex{X: 5, Y: 5}))
	assert.False(t, PointOnLineSegment(Vertex{X: 0, Y: 0}, Vertex{X: 10, Y: 10}, Vertex{X: 15, Y: 15}))
}

func TestRaySide(t *testing.T) {
	a := Vertex{X: 0, Y: 0}
	b := Vertex{X: 0, Y: 10}
	assert.Equal(t, 1, RaySide(a, b, Vertex{X: -1, Y: 5}))
	assert.Equal(t, -1, RaySide(a, b, Vertex{X: 1, Y: 5}))
	assert.Equal(t, 0, RaySide(a, b, Vertex{X: 0, Y: 5}))
}

func TestFloat2Equals(t *testing.T) {
	assert.True(t, Float2Equals(Vertex{X: 1, Y: 1}, Vertex{X: 1 + 1e-9, Y: 1}))
	assert.False(t, Float2Equals(Vertex{X: 1, Y: 1}, Vertex{X: 1.1, Y: 1}))
}

// BuildRayEnd's scenario-1 case: two sites at (0,0) and (2,0), the
// unbounded bisector runs vertically through x=1.
func TestBuildRayEndTwoPoints(t *testing.T) {
	l := Vertex{X: 0, Y: 0}
	r := Vertex{X: 2, Y: 0}
	mid := Mid(l, r)
	maxExtent := 10.0

	up := BuildRayEnd(mid, r, l, maxExtent)
	down := BuildRayEnd(mid, l, r, maxExtent)

	assert.InDelta(t, 1, up.X, 1e-9)
	assert.Greater(t, up.Y, 0.0)
	assert.InDelta(t, 1, down.X, 1e-9)
	assert.Less(t, down.Y, 0.0)
	assert.InDelta(t, up.Y, -down.Y, 1e-9)
}

func TestMaxCoordinateExtent(t *testing.T) {
	sites := []Site{
		{ID: 0, Pt: Vertex{X: 0, Y: 0}},
		{ID: 1, Pt: Vertex{X: 10, Y: 3}},
		{ID: 2, Pt: Vertex{X: 4, Y: -20}},
	}
	assert.InDelta(t, 23, MaxCoordinateExtent(sites), 1e-9)
}

func TestVertexNormalize(t *testing.T) {
	v := Vertex{X: 3, Y: 4}
	n := v.Normalize()
	assert.InDelta(t, 1, n.Len(), 1e-9)
	assert.Equal(t, Vertex{}, Vertex{}.Normalize())
}

func TestFloat2EqualsEpsilonIsSmall(t *testing.T) {
	assert.Less(t, Float2EqualsEpsilon, 1e-3)
	assert.Greater(t, Float2EqualsEpsilon, 0.0)
}
