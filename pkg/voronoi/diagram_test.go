package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDiagramBuildsRegionIndex(t *testing.T) {
	sites := []Site{siteAt(0, 0, 0), siteAt(1, 10, 0)}
	edges := []Edge{{Start: Vertex{X: 5, Y: -5}, End: Vertex{X: 5, Y: 5}, Left: 0, Right: 1}}

	d := NewDiagram(sites, edges, sites)

	assert.Equal(t, []int{0}, d.RegionEdges(0))
	assert.Equal(t, []int{0}, d.RegionEdges(1))

	site, ok := d.SiteByID(1)
	assert.True(t, ok)
	assert.Equal(t, Vertex{X: 10, Y: 0}, site.Pt)

	_, ok = d.SiteByID(99)
	assert.False(t, ok)
}

func TestEdgeOther(t *testing.T) {
	e := Edge{Left: 3, Right: 7}
	assert.Equal(t, 7, e.other(3))
	assert.Equal(t, 3, e.other(7))
}

func TestNullEdge(t *testing.T) {
	assert.True(t, NullEdge.isNull())
	assert.False(t, Edge{Left: 0, Right: 1}.isNull())
}
