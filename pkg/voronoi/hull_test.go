package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func siteAt(id int, x, y float64) Site {
	return Site{ID: id, Pt: Vertex{X: x, Y: y}}
}

func TestConvexHullSquareWithInteriorPoint(t *testing.T) {
	sites := []Site{
		siteAt(0, 0, 0),
		siteAt(1, 10, 0),
		siteAt(2, 10, 10),
		siteAt(3, 0, 10),
		siteAt(4, 5, 5),
	}
	hull := ConvexHull(sites)

	ids := make(map[int]bool)
	for _, s := range hull {
		ids[s.ID] = true
	}
	assert.Len(t, hull, 4)
	assert.False(t, ids[4], "interior point must not appear on the hull")
}

func TestConvexHullIsCounterClockwise(t *testing.T) {
	sites := []Site{
		siteAt(0, 0, 0),
		siteAt(1, 10, 0),
		siteAt(2, 10, 10),
		siteAt(3, 0, 10),
	}
	hull := ConvexHull(sites)
	leftTurns := 0
	for i := range hull {
		a := hull[i].Pt
		b := hull[(i+1)%len(hull)].Pt
		c := hull[(i+2)%len(hull)].Pt
		if RaySide(a, b, c) == 1 {
			leftTurns++
		}
	}
	assert.Equal(t, len(hull), leftTurns, "every consecutive triple must turn left on a CCW hull")
}

func TestUpperAndLowerTangent(t *testing.T) {
	left := []Site{siteAt(0, 0, 0), siteAt(1, 2, 2), siteAt(2, 0, 4)}
	right := []Site{siteAt(3, 10, 0), siteAt(5, 10, 4), siteAt(4, 8, 2)}

	upper := UpperTangent(left, right)
	lower := LowerTangent(left, right)

	assert.NotEqual(t, upper.Left.ID, lower.Left.ID)
	assert.NotEqual(t, upper.Right.ID, lower.Right.ID)
}

func TestMergeHulls(t *testing.T) {
	left := []Site{siteAt(0, 0, 0), siteAt(1, 2, 2), siteAt(2, 0, 4)}
	right := []Site{siteAt(3, 10, 0), siteAt(5, 10, 4), siteAt(4, 8, 2)}

	merged, upper, lower := MergeHulls(left, right)

	assert.NotEmpty(t, merged)
	assert.Contains(t, merged, upper.Left)
	assert.Contains(t, merged, upper.Right)
	assert.Contains(t, merged, lower.Left)
	assert.Contains(t, merged, lower.Right)
}
