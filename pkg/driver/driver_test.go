package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kormendi/voromerge/pkg/logger"
	"github.com/kormendi/voromerge/pkg/voronoi"
)

func TestBuildRejectsEmptyInput(t *testing.T) {
	_, err := Build(context.Background(), nil, logger.New)
	assert.Error(t, err)
}

func TestBuildSingleSite(t *testing.T) {
	sites := []voronoi.Site{{ID: 0, Pt: voronoi.Vertex{X: 1, Y: 1}}}
	d, err := Build(context.Background(), sites, logger.New)
	require.NoError(t, err)
	assert.Empty(t, d.Edges)
	assert.Len(t, d.Sites, 1)
}

// A site count comfortably above LeafSize forces at least one Merge,
// exercising the split/build/merge recursion end to end.
func TestBuildExceedsLeafSize(t *testing.T) {
	n := LeafSize*2 + 7
	sites := make([]voronoi.Site, n)
	for i := 0; i < n; i++ {
		sites[i] = voronoi.Site{ID: i, Pt: voronoi.Vertex{X: float64(i % 50), Y: float64(i / 50)}}
	}

	d, err := Build(context.Background(), sites, logger.New)
	require.NoError(t, err)
	assert.Len(t, d.Sites, n)
	assert.NotEmpty(t, d.Edges)
}

func TestBuildCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := LeafSize * 3
	sites := make([]voronoi.Site, n)
	for i := 0; i < n; i++ {
		sites[i] = voronoi.Site{ID: i, Pt: voronoi.Vertex{X: float64(i), Y: 0}}
	}

	_, err := Build(ctx, sites, logger.New)
	assert.Error(t, err)
}
