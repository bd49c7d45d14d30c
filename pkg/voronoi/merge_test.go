package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kormendi/voromerge/pkg/logger"
)

func singleSiteDiagram(id int, x, y float64) *Diagram {
	s := siteAt(id, x, y)
	return NewDiagram([]Site{s}, nil, []Site{s})
}

// Two bare sites, horizontally separated: the merge is a single
// vertical bisector edge through their midpoint's x, per spec.md's
// literal two-point scenario.
func TestMergeTwoSites(t *testing.T) {
	left := singleSiteDiagram(0, 0, 0)
	right := singleSiteDiagram(1, 2, 0)

	out, err := Merge(left, right, logger.New())
	require.NoError(t, err)

	require.Len(t, out.Edges, 1)
	edge := out.Edges[0]

	assert.InDelta(t, 1, edge.Start.X, 1e-9)
	assert.InDelta(t, 1, edge.End.X, 1e-9)
	assert.NotEqual(t, edge.Start.Y, edge.End.Y)

	require.Len(t, out.Sites, 2)
	assert.Len(t, out.RegionEdges(0), 1)
	assert.Len(t, out.RegionEdges(1), 1)
}

func TestMergeVerticallyOffsetSites(t *testing.T) {
	left := singleSiteDiagram(0, 0, 0)
	right := singleSiteDiagram(1, 4, 3)

	out, err := Merge(left, right, logger.New())
	require.NoError(t, err)
	require.Len(t, out.Edges, 1)

	e := out.Edges[0]
	mid := Mid(Vertex{X: 0, Y: 0}, Vertex{X: 4, Y: 3})
	dir := e.End.Sub(e.Start)
	toMid := mid.Sub(e.Start)
	// the edge must pass through the bisector's midpoint.
	cross := dir.X*toMid.Y - dir.Y*toMid.X
	assert.InDelta(t, 0, cross, 1e-6)
}

func edgeTouches(e Edge, p Vertex) bool {
	return Float2Equals(e.Start, p) || Float2Equals(e.End, p)
}

// Four points forming a square: two vertical pairs, one per side. Their
// bisectors (each side's own pair) are horizontal lines through y=1,
// and the dividing chain between the two halves is the vertical line
// x=1 — which meets both bisectors at the exact same point, a triple
// point, right where the incoming ray begins (spec.md §8 scenario 2).
func TestMergeSquareTriplePoint(t *testing.T) {
	left := BuildLeaf([]Site{siteAt(0, 0, 0), siteAt(1, 0, 2)}, logger.New())
	right := BuildLeaf([]Site{siteAt(2, 2, 0), siteAt(3, 2, 2)}, logger.New())

	out, err := Merge(left, right, logger.New())
	require.NoError(t, err)
	require.Len(t, out.Edges, 4)

	triple := Vertex{X: 1, Y: 1}
	touching := 0
	for _, e := range out.Edges {
		if edgeTouches(e, triple) {
			touching++
		}
	}
	// all four edges meet at the triple point: the two half-bisectors
	// cut there, and the two chain segments fanning out from it.
	assert.Equal(t, 4, touching)

	for _, e := range out.Edges {
		assert.False(t, e.isNull())
	}
}

// Directly exercises the asymmetric cutting/pruning convention spec.md
// §8 scenario 4 describes: a region with four bordering edges, two of
// which lie entirely on the losing (right, for a left-hand side) side
// of the dividing chain and must be pruned outright, one that is the
// already-entered edge (skipped, untouched here) and one that is the
// current exit edge, cut at the chain crossing while keeping its
// winning-side endpoint.
func TestPruneLosingAndCutEdgeScenario4(t *testing.T) {
	edges := []Edge{
		{Start: Vertex{X: -5, Y: -20}, End: Vertex{X: -5, Y: 20}, Left: 0, Right: 1}, // already entered, skipped
		{Start: Vertex{X: -3, Y: 5}, End: Vertex{X: 7, Y: 5}, Left: 0, Right: 2},     // exit edge, straddles the chain
		{Start: Vertex{X: 10, Y: -20}, End: Vertex{X: 10, Y: 20}, Left: 0, Right: 3}, // entirely right: pruned
		{Start: Vertex{X: 15, Y: -5}, End: Vertex{X: 15, Y: 5}, Left: 0, Right: 4},   // entirely right: pruned
	}
	sites := []Site{siteAt(0, 0, 0), siteAt(1, -5, 0), siteAt(2, 2, 5), siteAt(3, 10, 0), siteAt(4, 15, 0)}
	d := NewDiagram(sites, edges, sites)

	s := newSide(d, true)
	s.siteID = 0

	enter := Vertex{X: 0, Y: 100}
	exit := Vertex{X: 0, Y: -100}
	skip := map[int]bool{0: true, 1: true}
	s.pruneLosing(0, enter, exit, skip)

	assert.True(t, s.removed.Contains(2))
	assert.True(t, s.removed.Contains(3))
	assert.False(t, s.removed.Contains(0))
	assert.False(t, s.removed.Contains(1))

	s.cutEdge(1, enter, 0, exit)
	cut := d.Edges[1]
	// the winning-side endpoint (-3, 5) survives; the losing-side
	// endpoint is replaced by the chain crossing point.
	assert.Equal(t, Vertex{X: -3, Y: 5}, cut.Start)
	assert.Equal(t, exit, cut.End)

	remaining := compactEdges(d.Edges, s.removed)
	assert.Len(t, remaining, 2)
	for _, e := range remaining {
		assert.NotEqual(t, 3, e.Right)
		assert.NotEqual(t, 4, e.Right)
	}
}
