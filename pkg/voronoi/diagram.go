package voronoi

// Diagram is a coherent bundle of sites, edges, a per-site region index
// and the convex hull of the site set, satisfying spec.md §3's
// invariants. A Diagram is produced by either the per-half builder
// (BuildLeaf) or a successful Merge; once consumed by Merge its backing
// slices must not be reused.
type Diagram struct {
	Sites []Site
	Edges []Edge

	// Regions maps a site id to the indices (into Edges) of the edges
	// bordering that site. Every edge is referenced from exactly the two
	// regions named by its Left and Right ids.
	Regions map[int][]int

	// Hull is the ordered, counter-clockwise, cyclic subsequence of
	// Sites forming the outer convex hull.
	Hull []Site

	indexOf map[int]int
}

// NewDiagram builds a Diagram from sites and edges, deriving the region
// index and the id→index map. hull must already be the CCW convex hull
// of sites.
func NewDiagram(sites []Site, edges []Edge, hull []Site) *Diagram {
	d := &Diagram{
		Sites:   sites,
		Edges:   edges,
		Regions: make(map[int][]int, len(sites)),
		Hull:    hull,
		indexOf: make(map[int]int, len(sites)),
	}
	for i, s := range sites {
		d.indexOf[s.ID] = i
	}
	for i, e := range edges {
		d.Regions[e.Left] = append(d.Regions[e.Left], i)
		d.Regions[e.Right] = append(d.Regions[e.Right], i)
	}
	return d
}

// SiteIndex returns the position of siteID within d.Sites.
func (d *Diagram) SiteIndex(siteID int) (int, bool) {
	i, ok := d.indexOf[siteID]
	return i, ok
}

// SiteByID returns the Site with the given id.
func (d *Diagram) SiteByID(siteID int) (Site, bool) {
	i, ok := d.indexOf[siteID]
	if !ok {
		return Site{}, false
	}
	return d.Sites[i], true
}

// RegionEdges returns the edge indices bordering siteID.
func (d *Diagram) RegionEdges(siteID int) []int {
	return d.Regions[siteID]
}
