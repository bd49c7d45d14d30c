// Package driver recursively applies the divide-and-conquer merge to an
// arbitrary site set: split by x (secondary key y), build leaves once a
// half is small enough, merge halves back together bottom-up.
package driver

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/kormendi/voromerge/pkg/logger"
	"github.com/kormendi/voromerge/pkg/voronoi"
)

// LeafSize is the largest site count a subproblem is handed to
// BuildLeaf for directly, rather than split further. Fortune's sweep is
// O(n log n) on its own, so this exists to bound recursion depth and
// cap how many goroutines a Build call can spawn, not for asymptotic
// reasons.
const LeafSize = 64

// MaxParallelism caps the number of concurrent Merge/BuildLeaf calls a
// single Build spawns, independent of how deep the recursion goes.
const MaxParallelism = 16

// sortedSites orders sites left to right, breaking ties on y, so a
// split always yields two x-separated (or at worst x-touching) halves.
type sortedSites []voronoi.Site

func (s sortedSites) Len() int      { return len(s) }
func (s sortedSites) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s sortedSites) Less(i, j int) bool {
	if s[i].Pt.X != s[j].Pt.X {
		return s[i].Pt.X < s[j].Pt.X
	}
	return s[i].Pt.Y < s[j].Pt.Y
}

// Build computes the Voronoi diagram of sites, recursively splitting,
// building leaves, and merging, per spec.md §4.3. Each distinct Merge
// call gets its own logger so concurrent merges don't interleave their
// traces; pass a factory that returns a fresh logger.New() each time.
func Build(ctx context.Context, sites []voronoi.Site, newLogger func() *logger.ZapLogger) (*voronoi.Diagram, error) {
	if len(sites) == 0 {
		return nil, fmt.Errorf("driver: cannot build a diagram of zero sites")
	}

	ordered := make([]voronoi.Site, len(sites))
	copy(ordered, sites)
	sort.Sort(sortedSites(ordered))

	sem := semaphore.NewWeighted(MaxParallelism)
	return build(ctx, sem, ordered, newLogger)
}

// build recurses on sites, splitting and merging. sem bounds the total
// number of concurrently running recursive branches across the whole
// call tree; each level tries to acquire one slot before spawning its
// left branch in a goroutine and releases it once that branch
// completes, so the semaphore is never held across a blocking Wait.
func build(ctx context.Context, sem *semaphore.Weighted, sites []voronoi.Site, newLogger func() *logger.ZapLogger) (*voronoi.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(sites) <= LeafSize {
		return voronoi.BuildLeaf(sites, newLogger()), nil
	}

	mid := len(sites) / 2
	leftSites := sites[:mid]
	rightSites := sites[mid:]

	g, gctx := errgroup.WithContext(ctx)

	var left *voronoi.Diagram
	if sem.TryAcquire(1) {
		g.Go(func() error {
			defer sem.Release(1)
			var err error
			left, err = build(gctx, sem, leftSites, newLogger)
			return err
		})
	} else {
		// No free slot: build the left branch on this goroutine instead
		// of blocking it on the semaphore, to avoid a goroutine waiting
		// on a slot held by an ancestor that is itself waiting on us.
		var err error
		left, err = build(gctx, sem, leftSites, newLogger)
		if err != nil {
			return nil, err
		}
	}

	right, err := build(gctx, sem, rightSites, newLogger)
	if err != nil {
		return nil, err
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return voronoi.Merge(left, right, newLogger())
}
