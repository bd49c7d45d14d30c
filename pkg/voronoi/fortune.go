package voronoi

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/kormendi/voromerge/pkg/logger"
)

// partialEdge is a Voronoi edge under construction during the sweep.
// Unlike Edge, either endpoint may still be unset: start/end are filled
// in as circle events resolve, and an edge that never gets one or both
// endpoints set is one of the diagram's unbounded boundary edges.
type partialEdge struct {
	left, right int
	start, end  Vertex
	startSet    bool
	endSet      bool
}

// fortuneBuilder holds the scratch state of one Fortune sweep: the
// beachline, the pending circle-event queue, and the edges traced so
// far. A fortuneBuilder is single-use, discarded once BuildLeaf returns.
type fortuneBuilder struct {
	siteByID map[int]Vertex

	beachline        rbt
	circleEvents     rbt
	firstCircleEvent *circleEvent

	edges []*partialEdge

	log *logger.ZapLogger
}

func (f *fortuneBuilder) newEdge(leftID, rightID int) *partialEdge {
	e := &partialEdge{left: leftID, right: rightID}
	f.edges = append(f.edges, e)
	return e
}

// setEdgeStartpoint fills in whichever endpoint of edge is still free,
// reorienting edge's left/right labeling if needed so Start is always
// the first vertex encountered walking from leftID's side.
func (f *fortuneBuilder) setEdgeStartpoint(edge *partialEdge, leftID, rightID int, vertex Vertex) {
	if !edge.startSet && !edge.endSet {
		edge.start = vertex
		edge.startSet = true
		edge.left = leftID
		edge.right = rightID
	} else if edge.left == rightID {
		edge.end = vertex
		edge.endSet = true
	} else {
		edge.start = vertex
		edge.startSet = true
	}
}

type bySiteY []Site

func (s bySiteY) Len() int      { return len(s) }
func (s bySiteY) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s bySiteY) Less(i, j int) bool {
	if s[i].Pt.Y != s[j].Pt.Y {
		return s[i].Pt.Y < s[j].Pt.Y
	}
	return s[i].Pt.X < s[j].Pt.X
}

// BuildLeaf runs Fortune's sweep algorithm on sites to build the
// bounded-edge Diagram of a single divide-and-conquer leaf. Edges left
// unbounded by the sweep are extended to a finite endpoint via
// BuildRayEnd rather than clipped to a viewport, per this package's
// no-viewport design (merge.go performs all further clipping as the
// dividing chain is walked). sites must be non-empty and free of exact
// duplicate coordinates.
func BuildLeaf(sites []Site, log *logger.ZapLogger) *Diagram {
	ordered := make([]Site, len(sites))
	copy(ordered, sites)
	sort.Sort(bySiteY(ordered))

	f := &fortuneBuilder{
		siteByID: make(map[int]Vertex, len(ordered)),
		log:      log,
	}
	for _, s := range ordered {
		f.siteByID[s.ID] = s.Pt
	}

	log.Debug("fortune sweep started", zap.Int("sites", len(ordered)))

	var prevX, prevY float64 = math.SmallestNonzeroFloat64, math.SmallestNonzeroFloat64
	havePrev := false

	pop := func() *Site {
		if len(ordered) == 0 {
			return nil
		}
		s := ordered[0]
		ordered = ordered[1:]
		return &s
	}

	site := pop()
	for {
		circle := f.firstCircleEvent

		if site != nil && (circle == nil || site.Pt.Y < circle.y || (site.Pt.Y == circle.y && site.Pt.X < circle.x)) {
			if !havePrev || site.Pt.X != prevX || site.Pt.Y != prevY {
				f.addBeachSection(site.ID)
				prevX, prevY = site.Pt.X, site.Pt.Y
				havePrev = true
			}
			site = pop()
		} else if circle != nil {
			f.removeBeachSection(circle.arc)
		} else {
			break
		}
	}

	log.Debug("fortune sweep finished", zap.Int("edges", len(f.edges)))

	hull := ConvexHull(sites)
	maxExtent := MaxCoordinateExtent(sites)

	edges := make([]Edge, 0, len(f.edges))
	for _, pe := range f.edges {
		edges = append(edges, f.finalize(pe, maxExtent))
	}

	return NewDiagram(append([]Site(nil), sites...), edges, hull)
}

// finalize turns a partialEdge into a bounded Edge, extrapolating any
// endpoint the sweep never pinned down.
func (f *fortuneBuilder) finalize(pe *partialEdge, maxExtent float64) Edge {
	lSite := f.siteByID[pe.left]
	rSite := f.siteByID[pe.right]

	switch {
	case pe.startSet && pe.endSet:
		return Edge{Start: pe.start, End: pe.end, Left: pe.left, Right: pe.right}
	case pe.startSet && !pe.endSet:
		end := BuildRayEnd(pe.start, lSite, rSite, maxExtent)
		return Edge{Start: pe.start, End: end, Left: pe.left, Right: pe.right}
	case !pe.startSet && pe.endSet:
		start := BuildRayEnd(pe.end, rSite, lSite, maxExtent)
		return Edge{Start: start, End: pe.end, Left: pe.left, Right: pe.right}
	default:
		mid := Mid(lSite, rSite)
		start := BuildRayEnd(mid, rSite, lSite, maxExtent)
		end := BuildRayEnd(mid, lSite, rSite, maxExtent)
		return Edge{Start: start, End: end, Left: pe.left, Right: pe.right}
	}
}
