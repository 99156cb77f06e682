package meshing

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon describes the 2D input of a triangulation: a boundary with
// optional holes and constrained segments. The builder reads it, never
// writes it. Well-formedness (no self-intersection, consistent indices)
// is the caller's responsibility.
type Polygon struct {
	// Points holds flattened x,y coordinate pairs: boundary ring points
	// plus any additional constraint points.
	Points []float64
	// Holes holds one flattened interior point per hole.
	Holes []float64
	// Segments holds index pairs into Points; each pair is a constrained
	// edge the triangulation must preserve.
	Segments []int32
}

// NewPolygon returns a polygon with room reserved for pointCount points.
func NewPolygon(pointCount int) *Polygon {
	return &Polygon{
		Points:   make([]float64, 0, 2*pointCount),
		Segments: make([]int32, 0, 2*pointCount),
	}
}

// AddContour appends a closed ring of points together with the constrained
// segments joining them.
func (p *Polygon) AddContour(ring []r2.Vec) {
	p.addRing(ring)
}

// AddHole appends a closed ring as a hole: its edges become constrained
// segments and its vertex centroid marks the hole interior. The centroid
// must fall inside the ring, which holds for convex holes.
func (p *Polygon) AddHole(ring []r2.Vec) {
	var c r2.Vec
	for _, v := range ring {
		c = r2.Add(c, v)
	}
	c = r2.Scale(1/float64(len(ring)), c)
	p.Holes = append(p.Holes, c.X, c.Y)
	p.addRing(ring)
}

func (p *Polygon) addRing(ring []r2.Vec) {
	base := int32(len(p.Points) / 2)
	n := int32(len(ring))
	for i, v := range ring {
		p.Points = append(p.Points, v.X, v.Y)
		p.Segments = append(p.Segments, base+int32(i), base+(int32(i)+1)%n)
	}
}
