package triangulate

import (
	"math"

	"github.com/Avatarchik/utymap/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// minRefineAngle is the quality bound for Steiner insertion. 20 degrees
	// keeps Ruppert-style refinement well clear of non-termination.
	minRefineAngle = 20 * math.Pi / 180
	// maxRefinePoints caps Steiner insertion per refinement run.
	maxRefinePoints = 1 << 14
)

// refine inserts Steiner points until no triangle exceeds maxArea and
// near-bound triangles meet the minimum-angle quality constraint. With
// preserveBoundary set, constrained segments are never split.
func (m *mesher) refine(maxArea float64, preserveBoundary bool) {
	if maxArea <= 0 {
		return
	}
	skip := make(map[int32]bool)
	for n := 0; n < maxRefinePoints; n++ {
		worst, worstArea := int32(-1), 0.0
		for i := range m.tris {
			ti := int32(i)
			t := m.tris[i]
			if t.dead || skip[ti] {
				continue
			}
			pa, pb, pc := m.pts[t.v[0]], m.pts[t.v[1]], m.pts[t.v[2]]
			ar := d2.Area(pa, pb, pc)
			bad := ar > maxArea ||
				(ar > 0.25*maxArea && d2.MinAngle(pa, pb, pc) < minRefineAngle)
			if bad && ar > worstArea {
				worst, worstArea = ti, ar
			}
		}
		if worst < 0 {
			return
		}
		if !m.split(worst, preserveBoundary) {
			// Leave the triangle alone, typically one pinned against a
			// preserved boundary segment.
			skip[worst] = true
		}
	}
}

// split inserts a Steiner point for triangle ti, preferring its
// circumcenter and falling back to the centroid when the circumcenter
// falls outside the domain or on an existing vertex.
func (m *mesher) split(ti int32, preserveBoundary bool) bool {
	tv := m.tris[ti].v
	pa, pb, pc := m.pts[tv[0]], m.pts[tv[1]], m.pts[tv[2]]
	target, ok := d2.Circumcenter(pa, pb, pc)
	if ok {
		for _, e := range m.segs {
			if !encroaches(m.pts[e.a], m.pts[e.b], target) {
				continue
			}
			if preserveBoundary {
				// The circumcenter would disturb a preserved segment; the
				// centroid is a safe interior stand-in.
				ok = false
				break
			}
			// A circumcenter encroaching upon a constrained segment splits
			// the segment at its midpoint instead.
			m.splitSegment(e)
			return true
		}
	}
	home := int32(-1)
	if ok {
		home = m.locate(target)
	}
	if home >= 0 {
		hv := m.tris[home].v
		for k := 0; k < 3; k++ {
			if d2.EqualWithin(m.pts[hv[k]], target, 1e-12) {
				home = -1
				break
			}
		}
	}
	if home < 0 {
		target = d2.Centroid(pa, pb, pc)
	}
	pi := int32(len(m.pts))
	m.pts = append(m.pts, target)
	m.markers = append(m.markers, 0)
	if !m.insert(pi) {
		m.pts = m.pts[:pi]
		m.markers = m.markers[:pi]
		return false
	}
	return true
}

// splitSegment replaces constrained segment e by its two halves, inserting
// the midpoint as a boundary point and re-triangulating both flanks.
func (m *mesher) splitSegment(e edge) {
	mid := r2.Scale(0.5, r2.Add(m.pts[e.a], m.pts[e.b]))
	pi := int32(len(m.pts))
	m.pts = append(m.pts, mid)
	m.markers = append(m.markers, 0)
	m.insertOnEdge(pi, e)
}

// encroaches reports whether p lies inside the diametral circle of
// segment (a,b).
func encroaches(a, b, p r2.Vec) bool {
	mid := r2.Scale(0.5, r2.Add(a, b))
	return r2.Norm(r2.Sub(p, mid)) < 0.5*r2.Norm(r2.Sub(a, b))
}
