package meshing

import (
	"github.com/Avatarchik/utymap/triangulate"
	"gonum.org/v1/gonum/spatial/r2"
)

// Triangulator turns polygons into constrained planar triangulations.
// The default implementation wraps the triangulate package; any library
// honoring the two-mode contract can stand in.
type Triangulator interface {
	// Conforming triangulates exactly the polygon's points, holes and
	// segments without inserting Steiner points.
	Conforming(p *Polygon) *triangulate.Triangulation
	// Refined additionally inserts Steiner points until no triangle
	// exceeds maxArea. segmentSplit > 0 keeps boundary segments intact.
	Refined(p *Polygon, maxArea float64, segmentSplit int) *triangulate.Triangulation
}

type delaunayTriangulator struct{}

func (delaunayTriangulator) Conforming(p *Polygon) *triangulate.Triangulation {
	return triangulate.Conforming(pslg(p))
}

func (delaunayTriangulator) Refined(p *Polygon, maxArea float64, segmentSplit int) *triangulate.Triangulation {
	return triangulate.Refined(pslg(p), maxArea, segmentSplit)
}

// pslg unpacks the polygon's flattened buffers into triangulation input.
// The copies are transient; nothing of them survives past the builder call.
func pslg(p *Polygon) triangulate.PSLG {
	in := triangulate.PSLG{
		Points:   make([]r2.Vec, len(p.Points)/2),
		Segments: make([][2]int32, len(p.Segments)/2),
		Holes:    make([]r2.Vec, len(p.Holes)/2),
	}
	for i := range in.Points {
		in.Points[i] = r2.Vec{X: p.Points[2*i], Y: p.Points[2*i+1]}
	}
	for i := range in.Segments {
		in.Segments[i] = [2]int32{p.Segments[2*i], p.Segments[2*i+1]}
	}
	for i := range in.Holes {
		in.Holes[i] = r2.Vec{X: p.Holes[2*i], Y: p.Holes[2*i+1]}
	}
	return in
}
