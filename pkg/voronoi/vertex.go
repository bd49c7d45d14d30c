package voronoi

import "math"

// Vertex is a planar point: a site's coordinates or an edge endpoint.
type Vertex struct {
	X float64
	Y float64
}

func (v Vertex) Add(o Vertex) Vertex { return Vertex{v.X + o.X, v.Y + o.Y} }
func (v Vertex) Sub(o Vertex) Vertex { return Vertex{v.X - o.X, v.Y - o.Y} }
func (v Vertex) Scale(s float64) Vertex { return Vertex{v.X * s, v.Y * s} }

func (v Vertex) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length, or the zero vector if v is
// itself the zero vector.
func (v Vertex) Normalize() Vertex {
	l := v.Len()
	if l == 0 {
		return Vertex{}
	}
	return v.Scale(1 / l)
}

func (v Vertex) Dot(o Vertex) float64 { return v.X*o.X + v.Y*o.Y }

// Mid returns the midpoint of a and b.
func Mid(a, b Vertex) Vertex {
	return Vertex{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}
