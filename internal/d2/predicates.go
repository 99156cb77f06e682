package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Planar geometric predicates for triangulation.

// Orient returns twice the signed area of triangle (a,b,c).
// Positive for counter-clockwise order, negative for clockwise,
// zero for collinear points.
func Orient(a, b, c r2.Vec) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// Area returns the unsigned area of triangle (a,b,c).
func Area(a, b, c r2.Vec) float64 {
	return 0.5 * math.Abs(Orient(a, b, c))
}

// InCircle reports whether d lies strictly inside the circumcircle
// of triangle (a,b,c). Works for either vertex winding.
func InCircle(a, b, c, d r2.Vec) bool {
	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y
	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)
	if Orient(a, b, c) < 0 {
		return det < 0
	}
	return det > 0
}

// TriContains reports whether p lies inside or on triangle (a,b,c).
func TriContains(a, b, c, p r2.Vec) bool {
	d1 := Orient(p, a, b)
	d2 := Orient(p, b, c)
	d3 := Orient(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Centroid returns the centroid of triangle (a,b,c).
func Centroid(a, b, c r2.Vec) r2.Vec {
	return r2.Scale(1.0/3.0, r2.Add(a, r2.Add(b, c)))
}

// Circumcenter returns the circumcenter of triangle (a,b,c).
// ok is false for (near) degenerate triangles.
func Circumcenter(a, b, c r2.Vec) (p r2.Vec, ok bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-14 {
		return r2.Vec{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return r2.Vec{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}

// SegmentsCross reports whether open segments (a,b) and (c,d) properly
// intersect, that is cross at a point interior to both.
func SegmentsCross(a, b, c, d r2.Vec) bool {
	d1 := Orient(c, d, a)
	d2 := Orient(c, d, b)
	d3 := Orient(a, b, c)
	d4 := Orient(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// MinAngle returns the smallest interior angle of triangle (a,b,c) in radians.
func MinAngle(a, b, c r2.Vec) float64 {
	la := r2.Norm(r2.Sub(b, c))
	lb := r2.Norm(r2.Sub(a, c))
	lc := r2.Norm(r2.Sub(a, b))
	min := angleFromSides(la, lb, lc)
	if ang := angleFromSides(lb, lc, la); ang < min {
		min = ang
	}
	if ang := angleFromSides(lc, la, lb); ang < min {
		min = ang
	}
	return min
}

// angleFromSides returns the angle opposite to side a by the law of cosines.
func angleFromSides(a, b, c float64) float64 {
	if b == 0 || c == 0 {
		return 0
	}
	cos := (b*b + c*c - a*a) / (2 * b * c)
	return math.Acos(math.Min(1, math.Max(-1, cos)))
}
