// Package triangulate computes constrained Delaunay triangulations of
// planar straight-line graphs and refines them to a target triangle area.
//
// Inputs are assumed well formed: a self-intersecting boundary, degenerate
// segments or hole points outside any hole yield an undefined triangulation.
// The package performs no validation.
package triangulate

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// BoundaryMarker tags output points that lie on the constrained boundary
// (or on the convex hull when no segments are given).
const BoundaryMarker = 1

// PSLG is a planar straight-line graph: a point set with constrained
// segments and hole seed points.
type PSLG struct {
	Points []r2.Vec
	// Segments are index pairs into Points. Each pair is an edge the
	// triangulation must contain.
	Segments [][2]int32
	// Holes contains one point strictly inside each hole region.
	Holes []r2.Vec
}

// Triangulation is the result of a triangulation run.
type Triangulation struct {
	Points []r2.Vec
	// Triangles are counter-clockwise index triples into Points.
	Triangles []int32
	// Markers holds one marker per point, BoundaryMarker for points on the
	// constrained boundary and zero for interior or Steiner points.
	Markers []int32
}

// Conforming computes the constrained Delaunay triangulation of p.
// Constrained segments are recovered by edge flips, the exterior and hole
// regions are removed and no Steiner points are inserted.
func Conforming(p PSLG) *Triangulation {
	m := newMesher(p)
	m.prune(p)
	return m.emit()
}

// Refined computes a conforming triangulation of p and then inserts Steiner
// points until no triangle exceeds maxArea, enforcing a minimum-angle
// quality bound along the way. With segmentSplit > 0 constrained segments
// are never split: oversized triangles pinned against the boundary are left
// alone rather than subdivided through it.
func Refined(p PSLG, maxArea float64, segmentSplit int) *Triangulation {
	m := newMesher(p)
	m.prune(p)
	m.refine(maxArea, segmentSplit > 0)
	return m.emit()
}
