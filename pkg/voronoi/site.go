package voronoi

// Site is an immutable seed point of the tessellation, identified by a
// stable integer id that survives merges untouched.
type Site struct {
	ID int
	Pt Vertex
}

// byXY orders sites left to right, breaking ties on Y. ConvexHull sorts
// with it; the driver uses its own ordering with the same keys.
type byXY []Site

func (s byXY) Len() int      { return len(s) }
func (s byXY) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byXY) Less(i, j int) bool {
	if s[i].Pt.X != s[j].Pt.X {
		return s[i].Pt.X < s[j].Pt.X
	}
	return s[i].Pt.Y < s[j].Pt.Y
}
