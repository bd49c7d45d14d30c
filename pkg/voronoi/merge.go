package voronoi

import (
	"github.com/RoaringBitmap/roaring/v2"
	"go.uber.org/zap"

	"github.com/kormendi/voromerge/pkg/logger"
)

// mergeState names the merger's control-flow states for tracing
// (spec.md §4.5). It carries no behavior of its own.
type mergeState int

const (
	stateStart mergeState = iota
	stateIncomingRay
	stateChainWalk
	stateOutgoingRay
	stateAssemble
	stateDone
)

func (s mergeState) String() string {
	switch s {
	case stateStart:
		return "Start"
	case stateIncomingRay:
		return "IncomingRay"
	case stateChainWalk:
		return "ChainWalk"
	case stateOutgoingRay:
		return "OutgoingRay"
	case stateAssemble:
		return "Assemble"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// side is the scratch state the merger keeps for one input diagram
// across one Merge call: the edges it mutates in place, the bitmap of
// edge indices pruned during the walk, and which half of the chain
// ("left"/"right" of the dividing chain) it represents.
type side struct {
	d       *Diagram
	removed *roaring.Bitmap
	isLeft  bool

	// active walk state for this side.
	siteID       int
	enterPoint   Vertex
	enterEdgeIdx int
}

func newSide(d *Diagram, isLeft bool) *side {
	return &side{d: d, removed: roaring.New(), isLeft: isLeft, enterEdgeIdx: NullEdgeIndex}
}

func (s *side) pt(siteID int) Vertex {
	site, _ := s.d.SiteByID(siteID)
	return site.Pt
}

func (s *side) region(siteID int) []int {
	return s.d.Regions[siteID]
}

// cutEdge applies the cutting policy at pkg merge.go's spec.md §4.4
// "Cutting policy": the edge at idx is replaced by a segment ending at
// exitPoint. If idx == enterIdx (a hairline: the chain enters and exits
// through the same edge) the segment runs enter→exit directly;
// otherwise the "far", winning-side endpoint of the original edge is
// kept.
func (s *side) cutEdge(idx int, enterPoint Vertex, enterIdx int, exitPoint Vertex) {
	e := s.d.Edges[idx]
	if idx == enterIdx {
		s.d.Edges[idx] = Edge{Start: enterPoint, End: exitPoint, Left: e.Left, Right: e.Right}
		return
	}

	sideStart := RaySide(enterPoint, exitPoint, e.Start)
	sideEnd := RaySide(enterPoint, exitPoint, e.End)

	var keepStart bool
	if s.isLeft {
		keepStart = sideStart < sideEnd
	} else {
		keepStart = sideStart > sideEnd
	}

	far := e.End
	if keepStart {
		far = e.Start
	}
	s.d.Edges[idx] = Edge{Start: far, End: exitPoint, Left: e.Left, Right: e.Right}
}

// pruneLosing marks, among siteID's bordering edges (other than skip),
// every edge that falls entirely on the losing side of the chain
// segment (enter, exit) for removal.
func (s *side) pruneLosing(siteID int, enter, exit Vertex, skip map[int]bool) {
	for _, idx := range s.region(siteID) {
		if skip[idx] {
			continue
		}
		e := s.d.Edges[idx]
		a := RaySide(enter, exit, e.Start)
		b := RaySide(enter, exit, e.End)

		losing := false
		if s.isLeft {
			losing = max(a, b) > 0
		} else {
			losing = min(a, b) < 0
		}
		if losing {
			s.removed.Add(uint32(idx))
		}
	}
}

// exit performs the "region exit/enter handling" of spec.md §4.4: cut
// the crossed edge, prune the rest of the region's losing-side edges,
// advance to the neighbor across the cut edge, and record the new
// region-enter state. Returns the neighbor site id.
func (s *side) exit(enterPoint Vertex, enterEdgeIdx int, exitPoint Vertex, exitEdgeIdx int) int {
	s.cutEdge(exitEdgeIdx, enterPoint, enterEdgeIdx, exitPoint)

	skip := map[int]bool{exitEdgeIdx: true}
	if enterEdgeIdx != NullEdgeIndex {
		skip[enterEdgeIdx] = true
	}
	s.pruneLosing(s.siteID, enterPoint, exitPoint, skip)

	neighbor := s.d.Edges[exitEdgeIdx].other(s.siteID)
	s.siteID = neighbor
	s.enterPoint = exitPoint
	s.enterEdgeIdx = exitEdgeIdx
	return neighbor
}

func compactEdges(edges []Edge, removed *roaring.Bitmap) []Edge {
	if removed.IsEmpty() {
		return edges
	}
	idxs := removed.ToArray()
	for i := len(idxs) - 1; i >= 0; i-- {
		idx := int(idxs[i])
		last := len(edges) - 1
		edges[idx] = edges[last]
		edges = edges[:last]
	}
	return edges
}

// Merge produces the Voronoi diagram of the union of left and right,
// per spec.md §4.4. left and right must be horizontally separated (every
// left site's X ≤ every right site's X) with counter-clockwise convex
// hulls; both are consumed — their backing slices must not be reused
// after a successful call. log receives a debug trace of the dividing
// chain walk; pass logger.New() for a quiet, in-memory trace.
func Merge(left, right *Diagram, log *logger.ZapLogger) (*Diagram, error) {
	state := stateStart
	log.Debug("merge started", zap.Int("leftSites", len(left.Sites)), zap.Int("rightSites", len(right.Sites)))

	allSites := make([]Site, 0, len(left.Sites)+len(right.Sites))
	allSites = append(allSites, left.Sites...)
	allSites = append(allSites, right.Sites...)
	maxExtent := MaxCoordinateExtent(allSites)

	mergedHull, upper, lower := MergeHulls(left.Hull, right.Hull)

	l := newSide(left, true)
	r := newSide(right, false)
	l.siteID = upper.Left.ID
	r.siteID = upper.Right.ID

	var chainEdges []Edge

	state = stateIncomingRay
	log.Debug("state transition", zap.String("state", state.String()))

	mid := Mid(l.pt(l.siteID), r.pt(r.siteID))
	rayDir := Perpendicular(l.pt(l.siteID).Sub(r.pt(r.siteID)))

	distL, pointL, edgeL, _ := RayRegionCrossing(mid, rayDir, l.d.Edges, l.region(l.siteID))
	distR, pointR, edgeR, _ := RayRegionCrossing(mid, rayDir, r.d.Edges, r.region(r.siteID))

	var currentPoint Vertex
	var winLeft, tie bool
	switch {
	case edgeL == NullEdgeIndex && edgeR == NullEdgeIndex:
		// No edges on either side at all (e.g. one site per side): the
		// whole chain is a single far-to-far edge through mid.
		upEnd := BuildRayEnd(mid, r.pt(r.siteID), l.pt(l.siteID), maxExtent)
		downEnd := BuildRayEnd(mid, l.pt(l.siteID), r.pt(r.siteID), maxExtent)
		chainEdges = append(chainEdges, Edge{Start: upEnd, End: downEnd, Left: l.siteID, Right: r.siteID})

		newDiagram, err := assemble(l, r, chainEdges, mergedHull, log)
		return newDiagram, err
	case edgeL != NullEdgeIndex && edgeR != NullEdgeIndex && Float2Equals(pointL, pointR):
		// Both sides are exited at once: a triple point sitting right at
		// the top of the dividing chain (spec.md §8 scenario 2).
		currentPoint = pointL
		tie = true
	case edgeR == NullEdgeIndex || (edgeL != NullEdgeIndex && distL < distR):
		currentPoint = pointL
		winLeft = true
	default:
		currentPoint = pointR
		winLeft = false
	}

	farUp := BuildRayEnd(currentPoint, r.pt(r.siteID), l.pt(l.siteID), maxExtent)
	chainEdges = append(chainEdges, Edge{Start: currentPoint, End: farUp, Left: l.siteID, Right: r.siteID})
	l.enterPoint = farUp
	r.enterPoint = farUp

	switch {
	case tie:
		l.exit(farUp, NullEdgeIndex, currentPoint, edgeL)
		r.exit(farUp, NullEdgeIndex, currentPoint, edgeR)
	case winLeft:
		l.exit(farUp, NullEdgeIndex, currentPoint, edgeL)
	default:
		r.exit(farUp, NullEdgeIndex, currentPoint, edgeR)
	}

	state = stateChainWalk
	log.Debug("state transition", zap.String("state", state.String()))

	for !(l.siteID == lower.Left.ID && r.siteID == lower.Right.ID) {
		perp := Perpendicular(l.pt(l.siteID).Sub(r.pt(r.siteID)))

		lCrossed, lApproach, lPoint, lEdge, _ := RegionCrossing(currentPoint, perp, l.d.Edges, l.region(l.siteID), l.enterEdgeIdx)
		rCrossed, rApproach, rPoint, rEdge, _ := RegionCrossing(currentPoint, perp, r.d.Edges, r.region(r.siteID), r.enterEdgeIdx)

		if !lCrossed && !rCrossed {
			log.Error("merge error: no crossing", zap.Int("leftSite", l.siteID), zap.Int("rightSite", r.siteID))
			return nil, ErrNoCrossing
		}

		switch {
		case lCrossed && rCrossed && Float2Equals(lPoint, rPoint):
			chainEdges = append(chainEdges, Edge{Start: currentPoint, End: lPoint, Left: l.siteID, Right: r.siteID})
			currentPoint = lPoint
			l.exit(l.enterPoint, l.enterEdgeIdx, currentPoint, lEdge)
			r.exit(r.enterPoint, r.enterEdgeIdx, currentPoint, rEdge)

		case rCrossed && (!lCrossed || rApproach < lApproach):
			chainEdges = append(chainEdges, Edge{Start: currentPoint, End: rPoint, Left: l.siteID, Right: r.siteID})
			currentPoint = rPoint
			r.exit(r.enterPoint, r.enterEdgeIdx, currentPoint, rEdge)

		default:
			chainEdges = append(chainEdges, Edge{Start: currentPoint, End: lPoint, Left: l.siteID, Right: r.siteID})
			currentPoint = lPoint
			l.exit(l.enterPoint, l.enterEdgeIdx, currentPoint, lEdge)
		}
	}

	state = stateOutgoingRay
	log.Debug("state transition", zap.String("state", state.String()))

	endMid := Mid(l.pt(l.siteID), r.pt(r.siteID))
	endPoint := BuildRayEnd(endMid, l.pt(l.siteID), r.pt(r.siteID), maxExtent)
	chainEdges = append(chainEdges, Edge{Start: currentPoint, End: endPoint, Left: l.siteID, Right: r.siteID})

	return assemble(l, r, chainEdges, mergedHull, log)
}

func assemble(l, r *side, chainEdges []Edge, hull []Site, log *logger.ZapLogger) (*Diagram, error) {
	log.Debug("state transition", zap.String("state", stateAssemble.String()))

	leftEdges := compactEdges(l.d.Edges, l.removed)
	rightEdges := compactEdges(r.d.Edges, r.removed)

	sites := make([]Site, 0, len(l.d.Sites)+len(r.d.Sites))
	sites = append(sites, l.d.Sites...)
	sites = append(sites, r.d.Sites...)

	edges := make([]Edge, 0, len(leftEdges)+len(chainEdges)+len(rightEdges))
	edges = append(edges, leftEdges...)
	edges = append(edges, chainEdges...)
	edges = append(edges, rightEdges...)

	out := NewDiagram(sites, edges, hull)

	log.Debug("state transition", zap.String("state", stateDone.String()), zap.Int("edges", len(out.Edges)))
	return out, nil
}
