package voronoi

import "math"

// beachSection is one parabolic arc of the Fortune sweep's beachline,
// identified by the site whose parabola it traces. edge is the
// partialEdge currently being traced between this arc and its right
// neighbor.
type beachSection struct {
	node        *rbtNode
	siteID      int
	circleEvent *circleEvent
	edge        *partialEdge
}

func (s *beachSection) bindToNode(node *rbtNode) { s.node = node }
func (s *beachSection) Node() *rbtNode           { return s.node }

// circleEvent records a predicted beachline vertex: three consecutive
// arcs converging to a point as the sweep line advances to y.
type circleEvent struct {
	node    *rbtNode
	siteID  int
	arc     *beachSection
	x       float64
	y       float64
	ycenter float64
}

func (s *circleEvent) bindToNode(node *rbtNode) { s.node = node }
func (s *circleEvent) Node() *rbtNode           { return s.node }

type beachSectionPtrs []*beachSection

func (s *beachSectionPtrs) appendLeft(b *beachSection) {
	*s = append(*s, b)
	for id := len(*s) - 1; id > 0; id-- {
		(*s)[id] = (*s)[id-1]
	}
	(*s)[0] = b
}

func (s *beachSectionPtrs) appendRight(b *beachSection) {
	*s = append(*s, b)
}

func (f *fortuneBuilder) pt(siteID int) Vertex {
	return f.siteByID[siteID]
}

// leftBreakPoint returns the x coordinate where arc's parabola meets its
// left neighbor's, given the sweep line currently at y = directrix.
func leftBreakPoint(f *fortuneBuilder, arc *beachSection, directrix float64) float64 {
	site := f.pt(arc.siteID)
	rfocx := site.X
	rfocy := site.Y
	pby2 := rfocy - directrix
	if pby2 == 0 {
		return rfocx
	}

	lArc := arc.Node().previous
	if lArc == nil {
		return math.Inf(-1)
	}
	lSite := f.pt(lArc.value.(*beachSection).siteID)
	lfocx := lSite.X
	lfocy := lSite.Y
	plby2 := lfocy - directrix
	if plby2 == 0 {
		return lfocx
	}
	hl := lfocx - rfocx
	aby2 := 1/pby2 - 1/plby2
	b := hl / plby2
	if aby2 != 0 {
		return (-b+math.Sqrt(b*b-2*aby2*(hl*hl/(-2*plby2)-lfocy+plby2/2+rfocy-pby2/2)))/aby2 + rfocx
	}
	return (rfocx + lfocx) / 2
}

func rightBreakPoint(f *fortuneBuilder, arc *beachSection, directrix float64) float64 {
	rArc := arc.Node().next
	if rArc != nil {
		return leftBreakPoint(f, rArc.value.(*beachSection), directrix)
	}
	site := f.pt(arc.siteID)
	if site.Y == directrix {
		return site.X
	}
	return math.Inf(1)
}

func (f *fortuneBuilder) detachBeachSection(arc *beachSection) {
	f.detachCircleEvent(arc)
	f.beachline.removeNode(arc.node)
}

// addBeachSection handles a site event: insert a new arc for siteID
// into the beachline at the position the sweep line's current x
// dictates, splitting the arc it falls under (or starting the
// beachline if empty).
func (f *fortuneBuilder) addBeachSection(siteID int) {
	site := f.pt(siteID)
	x := site.X
	directrix := site.Y

	var lNode, rNode *rbtNode
	var dxl, dxr float64
	node := f.beachline.root

	for node != nil {
		nodeArc := node.value.(*beachSection)
		dxl = leftBreakPoint(f, nodeArc, directrix) - x
		if dxl > 1e-9 {
			node = node.left
		} else {
			dxr = x - rightBreakPoint(f, nodeArc, directrix)
			if dxr > 1e-9 {
				if node.right == nil {
					lNode = node
					break
				}
				node = node.right
			} else {
				if dxl > -1e-9 {
					lNode = node.previous
					rNode = node
				} else if dxr > -1e-9 {
					lNode = node
					rNode = node.next
				} else {
					lNode = node
					rNode = node
				}
				break
			}
		}
	}

	var lArc, rArc *beachSection
	if lNode != nil {
		lArc = lNode.value.(*beachSection)
	}
	if rNode != nil {
		rArc = rNode.value.(*beachSection)
	}

	newArc := &beachSection{siteID: siteID}
	if lArc == nil {
		f.beachline.insertSuccessor(nil, newArc)
	} else {
		f.beachline.insertSuccessor(lArc.node, newArc)
	}

	if lArc == nil && rArc == nil {
		return
	}

	if lArc == rArc {
		f.detachCircleEvent(lArc)

		rArc = &beachSection{siteID: lArc.siteID}
		f.beachline.insertSuccessor(newArc.node, rArc)

		newArc.edge = f.newEdge(lArc.siteID, newArc.siteID)
		rArc.edge = newArc.edge

		f.attachCircleEvent(lArc)
		f.attachCircleEvent(rArc)
		return
	}

	if lArc != nil && rArc == nil {
		newArc.edge = f.newEdge(lArc.siteID, newArc.siteID)
		return
	}

	// lArc != rArc: the new site splits the beachline strictly between
	// two distinct existing arcs. The breakpoint between them becomes a
	// Voronoi vertex now.
	f.detachCircleEvent(lArc)
	f.detachCircleEvent(rArc)

	leftSite := f.pt(lArc.siteID)
	ax := leftSite.X
	ay := leftSite.Y
	bx := site.X - ax
	by := site.Y - ay
	rightSite := f.pt(rArc.siteID)
	cx := rightSite.X - ax
	cy := rightSite.Y - ay
	d := 2 * (bx*cy - by*cx)
	hb := bx*bx + by*by
	hc := cx*cx + cy*cy
	vertex := Vertex{X: (cy*hb-by*hc)/d + ax, Y: (bx*hc-cx*hb)/d + ay}

	f.setEdgeStartpoint(rArc.edge, lArc.siteID, rArc.siteID, vertex)

	newArc.edge = f.newEdge(lArc.siteID, siteID)
	rArc.edge = f.newEdge(siteID, rArc.siteID)
	f.setEdgeStartpoint(newArc.edge, lArc.siteID, siteID, vertex)
	f.setEdgeStartpoint(rArc.edge, siteID, rArc.siteID, vertex)

	f.attachCircleEvent(lArc)
	f.attachCircleEvent(rArc)
}

// removeBeachSection handles a circle event: the arc at its center
// vanishes, closing off the two edges bordering it and opening a new
// one between its former neighbors.
func (f *fortuneBuilder) removeBeachSection(bs *beachSection) {
	circle := bs.circleEvent
	x := circle.x
	y := circle.ycenter
	vertex := Vertex{X: x, Y: y}
	previous := bs.node.previous
	next := bs.node.next
	disappearing := beachSectionPtrs{bs}

	f.detachBeachSection(bs)

	lArc := previous.value.(*beachSection)
	for lArc.circleEvent != nil &&
		math.Abs(x-lArc.circleEvent.x) < 1e-9 &&
		math.Abs(y-lArc.circleEvent.ycenter) < 1e-9 {

		previous = lArc.node.previous
		disappearing.appendLeft(lArc)
		f.detachBeachSection(lArc)
		lArc = previous.value.(*beachSection)
	}
	disappearing.appendLeft(lArc)
	f.detachCircleEvent(lArc)

	rArc := next.value.(*beachSection)
	for rArc.circleEvent != nil &&
		math.Abs(x-rArc.circleEvent.x) < 1e-9 &&
		math.Abs(y-rArc.circleEvent.ycenter) < 1e-9 {

		next = rArc.node.next
		disappearing.appendRight(rArc)
		f.detachBeachSection(rArc)
		rArc = next.value.(*beachSection)
	}
	disappearing.appendRight(rArc)
	f.detachCircleEvent(rArc)

	nArcs := len(disappearing)
	for iArc := 1; iArc < nArcs; iArc++ {
		rArc = disappearing[iArc]
		lArc = disappearing[iArc-1]
		f.setEdgeStartpoint(rArc.edge, lArc.siteID, rArc.siteID, vertex)
	}

	lArc = disappearing[0]
	rArc = disappearing[nArcs-1]
	rArc.edge = f.newEdge(lArc.siteID, rArc.siteID)
	f.setEdgeStartpoint(rArc.edge, lArc.siteID, rArc.siteID, vertex)

	f.attachCircleEvent(lArc)
	f.attachCircleEvent(rArc)
}

// attachCircleEvent predicts the circle event, if any, for the arc
// triple centered on arc and inserts it into the event queue in y
// order (ycenter + radius, breaking ties on x).
func (f *fortuneBuilder) attachCircleEvent(arc *beachSection) {
	lNode := arc.node.previous
	rNode := arc.node.next
	if lNode == nil || rNode == nil {
		return
	}
	leftSite := f.pt(lNode.value.(*beachSection).siteID)
	cSite := f.pt(arc.siteID)
	rightSite := f.pt(rNode.value.(*beachSection).siteID)

	if leftSite == rightSite {
		return
	}

	bx := cSite.X
	by := cSite.Y
	ax := leftSite.X - bx
	ay := leftSite.Y - by
	cx := rightSite.X - bx
	cy := rightSite.Y - by

	d := 2 * (ax*cy - ay*cx)
	if d >= -2e-12 {
		return
	}

	ha := ax*ax + ay*ay
	hc := cx*cx + cy*cy
	x := (cy*ha - ay*hc) / d
	y := (ax*hc - cx*ha) / d
	ycenter := y + by

	ce := &circleEvent{
		arc:     arc,
		siteID:  arc.siteID,
		x:       x + bx,
		y:       ycenter + math.Sqrt(x*x+y*y),
		ycenter: ycenter,
	}
	arc.circleEvent = ce

	var predecessor *rbtNode
	node := f.circleEvents.root
	for node != nil {
		nodeValue := node.value.(*circleEvent)
		if ce.y < nodeValue.y || (ce.y == nodeValue.y && ce.x <= nodeValue.x) {
			if node.left != nil {
				node = node.left
			} else {
				predecessor = node.previous
				break
			}
		} else {
			if node.right != nil {
				node = node.right
			} else {
				predecessor = node
				break
			}
		}
	}
	f.circleEvents.insertSuccessor(predecessor, ce)
	if predecessor == nil {
		f.firstCircleEvent = ce
	}
}

func (f *fortuneBuilder) detachCircleEvent(arc *beachSection) {
	circle := arc.circleEvent
	if circle == nil {
		return
	}
	if circle.node.previous == nil {
		if circle.node.next != nil {
			f.firstCircleEvent = circle.node.next.value.(*circleEvent)
		} else {
			f.firstCircleEvent = nil
		}
	}
	f.circleEvents.removeNode(circle.node)
	arc.circleEvent = nil
}
