package triangulate

import (
	"math"

	"github.com/Avatarchik/utymap/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const maxFlips = 1 << 12

// edge is an undirected edge between two point indices, a < b.
type edge struct{ a, b int32 }

func mkEdge(a, b int32) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

type triangle struct {
	v    [3]int32
	dead bool
}

// mesher holds the transient triangulation state. All of it is released
// once emit copies the surviving points and triangles out.
type mesher struct {
	pts     []r2.Vec
	markers []int32
	tris    []triangle
	// constraint marks edges that flips, cavities and floods must not cross.
	constraint map[edge]bool
	// segs lists constrained edges in deterministic order.
	segs []edge
	// super is the index of the first of the three far-away vertices
	// enclosing the whole input.
	super int32
}

func newMesher(p PSLG) *mesher {
	n := len(p.Points)
	m := &mesher{
		pts:        make([]r2.Vec, n, n+3),
		markers:    make([]int32, n, n+3),
		constraint: make(map[edge]bool, len(p.Segments)),
		super:      int32(n),
	}
	copy(m.pts, p.Points)

	bb := d2.Set(m.pts).Bounds()
	c := r2.Scale(0.5, r2.Add(bb.Min, bb.Max))
	d := math.Max(bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y)
	if d == 0 {
		d = 1
	}
	m.pts = append(m.pts,
		r2.Vec{X: c.X - 20*d, Y: c.Y - d},
		r2.Vec{X: c.X + 20*d, Y: c.Y - d},
		r2.Vec{X: c.X, Y: c.Y + 20*d})
	m.markers = append(m.markers, 0, 0, 0)
	m.tris = append(m.tris, triangle{v: [3]int32{m.super, m.super + 1, m.super + 2}})

	for i := 0; i < n; i++ {
		m.insert(int32(i))
	}
	for _, s := range p.Segments {
		m.recoverSegment(s[0], s[1])
	}
	return m
}

// adjacency maps every edge of the living triangulation to the triangles
// sharing it, in triangle index order.
func (m *mesher) adjacency() map[edge][]int32 {
	adj := make(map[edge][]int32, 2*len(m.tris))
	for i := range m.tris {
		t := m.tris[i]
		if t.dead {
			continue
		}
		for k := 0; k < 3; k++ {
			e := mkEdge(t.v[k], t.v[(k+1)%3])
			adj[e] = append(adj[e], int32(i))
		}
	}
	return adj
}

// locate returns a living triangle containing p, or -1.
func (m *mesher) locate(p r2.Vec) int32 {
	for i := len(m.tris) - 1; i >= 0; i-- {
		t := m.tris[i]
		if t.dead {
			continue
		}
		if d2.TriContains(m.pts[t.v[0]], m.pts[t.v[1]], m.pts[t.v[2]], p) {
			return int32(i)
		}
	}
	return -1
}

// addTri appends a triangle, swapping vertices if needed to keep
// counter-clockwise winding.
func (m *mesher) addTri(a, b, c int32) {
	if d2.Orient(m.pts[a], m.pts[b], m.pts[c]) < 0 {
		b, c = c, b
	}
	m.tris = append(m.tris, triangle{v: [3]int32{a, b, c}})
}

// insert performs a Bowyer-Watson insertion of point pi. The cavity grows
// from the containing triangle across edges whose neighbor circumcircle
// contains the point, but never across a constrained edge. Reports whether
// the point was inserted.
func (m *mesher) insert(pi int32) bool {
	p := m.pts[pi]
	t0 := m.locate(p)
	if t0 < 0 {
		return false
	}
	t0v := m.tris[t0].v
	for k := 0; k < 3; k++ {
		e := mkEdge(t0v[k], t0v[(k+1)%3])
		if d2.Orient(m.pts[e.a], m.pts[e.b], p) == 0 {
			// Point sits on an edge of its containing triangle.
			return m.insertOnEdge(pi, e)
		}
	}
	adj := m.adjacency()
	cavity := []int32{t0}
	inCavity := map[int32]bool{t0: true}
	for qi := 0; qi < len(cavity); qi++ {
		tv := m.tris[cavity[qi]].v
		for k := 0; k < 3; k++ {
			e := mkEdge(tv[k], tv[(k+1)%3])
			if m.constraint[e] {
				continue
			}
			for _, nb := range adj[e] {
				if inCavity[nb] {
					continue
				}
				nv := m.tris[nb].v
				if d2.InCircle(m.pts[nv[0]], m.pts[nv[1]], m.pts[nv[2]], p) {
					inCavity[nb] = true
					cavity = append(cavity, nb)
				}
			}
		}
	}

	// The cavity rim is the set of edges seen exactly once.
	seen := make(map[edge]int)
	for _, ti := range cavity {
		tv := m.tris[ti].v
		for k := 0; k < 3; k++ {
			seen[mkEdge(tv[k], tv[(k+1)%3])]++
		}
	}
	var rim []edge
	for _, ti := range cavity {
		tv := m.tris[ti].v
		for k := 0; k < 3; k++ {
			e := mkEdge(tv[k], tv[(k+1)%3])
			if seen[e] != 1 {
				continue
			}
			if d2.Orient(m.pts[e.a], m.pts[e.b], p) == 0 {
				// Point sits on a rim edge; retriangulating would produce a
				// zero-area triangle. Refuse the insertion.
				return false
			}
			seen[e] = -1
			rim = append(rim, e)
		}
	}
	for _, ti := range cavity {
		m.tris[ti].dead = true
	}
	for _, e := range rim {
		m.addTri(e.a, e.b, pi)
	}
	return true
}

// insertOnEdge splits the triangles flanking edge e at point pi, which must
// lie on e. A constrained edge is replaced by its two constrained halves and
// the point inherits a boundary marker.
func (m *mesher) insertOnEdge(pi int32, e edge) bool {
	if m.pts[pi] == m.pts[e.a] || m.pts[pi] == m.pts[e.b] {
		return false
	}
	ts := m.adjacency()[e]
	if len(ts) == 0 {
		return false
	}
	for _, ti := range ts {
		x := m.opposite(ti, e)
		if x < 0 {
			continue
		}
		m.tris[ti].dead = true
		m.addTri(e.a, pi, x)
		m.addTri(pi, e.b, x)
	}
	if m.constraint[e] {
		delete(m.constraint, e)
		lo, hi := mkEdge(e.a, pi), mkEdge(pi, e.b)
		m.constraint[lo] = true
		m.constraint[hi] = true
		for i := range m.segs {
			if m.segs[i] == e {
				m.segs[i] = lo
				break
			}
		}
		m.segs = append(m.segs, hi)
		m.markers[pi] = BoundaryMarker
	}
	return true
}

// recoverSegment flips edges crossing segment (a,b) until the segment is an
// edge of the triangulation, then keeps it constrained.
func (m *mesher) recoverSegment(a, b int32) {
	e := mkEdge(a, b)
	m.constraint[e] = true
	m.segs = append(m.segs, e)
	pa, pb := m.pts[a], m.pts[b]
	for iter := 0; iter < maxFlips; iter++ {
		adj := m.adjacency()
		if len(adj[e]) > 0 {
			return
		}
		flipped := false
	scan:
		for i := range m.tris {
			t := m.tris[i]
			if t.dead {
				continue
			}
			for k := 0; k < 3; k++ {
				ce := mkEdge(t.v[k], t.v[(k+1)%3])
				if m.constraint[ce] || ce.a == a || ce.a == b || ce.b == a || ce.b == b {
					continue
				}
				if !d2.SegmentsCross(pa, pb, m.pts[ce.a], m.pts[ce.b]) {
					continue
				}
				ts := adj[ce]
				if len(ts) == 2 && m.flip(ce, ts[0], ts[1]) {
					flipped = true
					break scan
				}
			}
		}
		if !flipped {
			// Nothing left to flip: malformed input, documented precondition.
			return
		}
	}
}

// flip replaces the two triangles sharing edge e by the two triangles on
// the opposite diagonal. Reports whether the flip was geometrically valid.
func (m *mesher) flip(e edge, t1, t2 int32) bool {
	x := m.opposite(t1, e)
	y := m.opposite(t2, e)
	if x < 0 || y < 0 {
		return false
	}
	// The quad must be strictly convex for the diagonals to swap.
	if !d2.SegmentsCross(m.pts[x], m.pts[y], m.pts[e.a], m.pts[e.b]) {
		return false
	}
	m.tris[t1].dead = true
	m.tris[t2].dead = true
	m.addTri(x, y, e.a)
	m.addTri(x, y, e.b)
	return true
}

// opposite returns the vertex of triangle ti not on edge e, or -1.
func (m *mesher) opposite(ti int32, e edge) int32 {
	for _, v := range m.tris[ti].v {
		if v != e.a && v != e.b {
			return v
		}
	}
	return -1
}

// prune removes the super-triangle fan and, when constrained segments are
// present, flood-fills the exterior and hole regions without ever crossing
// a constrained edge. Without segments the convex hull is kept.
func (m *mesher) prune(p PSLG) {
	adj := m.adjacency()
	outside := make([]bool, len(m.tris))
	var queue []int32
	for i := range m.tris {
		t := m.tris[i]
		if t.dead {
			continue
		}
		if t.v[0] >= m.super || t.v[1] >= m.super || t.v[2] >= m.super {
			outside[i] = true
			if len(p.Segments) > 0 {
				queue = append(queue, int32(i))
			}
		}
	}
	if len(p.Segments) > 0 {
		for _, h := range p.Holes {
			ti := m.locate(h)
			if ti >= 0 && !outside[ti] {
				outside[ti] = true
				queue = append(queue, ti)
			}
		}
	}
	for len(queue) > 0 {
		ti := queue[0]
		queue = queue[1:]
		tv := m.tris[ti].v
		for k := 0; k < 3; k++ {
			e := mkEdge(tv[k], tv[(k+1)%3])
			if m.constraint[e] {
				continue
			}
			for _, nb := range adj[e] {
				if !outside[nb] {
					outside[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	for i := range m.tris {
		if outside[i] {
			m.tris[i].dead = true
		}
	}
}

// emit assigns boundary markers and copies the surviving triangulation into
// a fresh Triangulation, dropping the super-triangle vertices.
func (m *mesher) emit() *Triangulation {
	for e, ts := range m.adjacency() {
		if len(ts) == 1 {
			m.markers[e.a] = BoundaryMarker
			m.markers[e.b] = BoundaryMarker
		}
	}
	for _, e := range m.segs {
		m.markers[e.a] = BoundaryMarker
		m.markers[e.b] = BoundaryMarker
	}

	out := &Triangulation{
		Points:  make([]r2.Vec, 0, len(m.pts)-3),
		Markers: make([]int32, 0, len(m.pts)-3),
	}
	out.Points = append(out.Points, m.pts[:m.super]...)
	out.Points = append(out.Points, m.pts[m.super+3:]...)
	out.Markers = append(out.Markers, m.markers[:m.super]...)
	out.Markers = append(out.Markers, m.markers[m.super+3:]...)
	remap := func(i int32) int32 {
		if i >= m.super+3 {
			return i - 3
		}
		return i
	}
	for i := range m.tris {
		t := m.tris[i]
		if t.dead {
			continue
		}
		out.Triangles = append(out.Triangles, remap(t.v[0]), remap(t.v[1]), remap(t.v[2]))
	}
	return out
}
