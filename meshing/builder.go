// Package meshing converts 2D geographic polygon and line descriptions
// into renderable 3D triangle meshes: triangulated polygons, extruded
// planes and raw triangles, all appending into a shared Mesh.
package meshing

import (
	"math"

	"github.com/Avatarchik/utymap/triangulate"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder appends map geometry for one tile to caller-owned meshes.
//
// A Builder and the mesh it fills must not be shared between goroutines
// without external synchronization. Independent builders working on
// independent meshes are safe in parallel, one per tile.
type Builder struct {
	bounds r2.Box
	ele    ElevationProvider
	noise  NoiseFunc
	tri    Triangulator
}

// NewBuilder returns a mesh builder for the tile covered by bounds
// (x = longitude, y = latitude). Both collaborators must be non-nil.
func NewBuilder(bounds r2.Box, ele ElevationProvider, noise NoiseFunc) *Builder {
	return &Builder{bounds: bounds, ele: ele, noise: noise, tri: delaunayTriangulator{}}
}

// AddPolygon triangulates the polygon and appends the result to the mesh.
// With a target area set, the triangulation is refined with Steiner points
// before filling.
func (b *Builder) AddPolygon(m *Mesh, p *Polygon, geom GeometryOptions, app AppearanceOptions) {
	var t *triangulate.Triangulation
	if math.Abs(geom.Area) < areaEpsilon {
		t = b.tri.Conforming(p)
	} else {
		t = b.tri.Refined(p, geom.Area, geom.SegmentSplit)
	}
	b.fill(m, t, geom, app)
}

// fill appends the triangulation to the mesh, sampling elevation, noise,
// gradient and texture coordinates per point. Triangle indices are offset
// by the mesh's vertex count at entry so that shapes can share one mesh.
func (b *Builder) fill(m *Mesh, t *triangulate.Triangulation, geom GeometryOptions, app AppearanceOptions) {
	start := int32(m.VertexCount())
	uv := newTextureMapper(b.bounds, app)
	m.Reserve(len(t.Points), len(t.Triangles)/3)

	for i, p := range t.Points {
		ele := geom.HeightOffset
		if geom.Elevation > ElevationUnset {
			ele += geom.Elevation
		} else {
			ele += b.ele.Elevation(p.Y, p.X)
		}
		// Boundary points stay noise-free so tile edges join seamlessly
		// with neighboring tiles.
		if t.Markers[i] != triangulate.BoundaryMarker {
			ele += b.noise(p.X, p.Y, geom.EleNoiseFreq)
		}
		m.Vertices = append(m.Vertices, p.X, p.Y, ele)
		m.Colors = append(m.Colors, b.color(app, p))
		tex := uv.Map(p)
		m.UVs = append(m.UVs, tex.X, tex.Y)
	}

	first, third := 1, 2
	if geom.FlipSide {
		first, third = 2, 1
	}
	for i := 0; i < len(t.Triangles); i += 3 {
		m.Triangles = append(m.Triangles,
			start+t.Triangles[i+first],
			start+t.Triangles[i],
			start+t.Triangles[i+third])
	}
}

// AddPlane appends a vertical quad connecting p1 and p2, sampling base
// elevations from the provider with noise perturbation.
func (b *Builder) AddPlane(m *Mesh, p1, p2 r2.Vec, geom GeometryOptions, app AppearanceOptions) {
	ele1 := b.ele.Elevation(p1.Y, p1.X) + b.noise(p1.X, p1.Y, geom.EleNoiseFreq)
	ele2 := b.ele.Elevation(p2.Y, p2.X) + b.noise(p2.X, p2.Y, geom.EleNoiseFreq)
	b.AddPlaneWithElevation(m, p1, p2, ele1, ele2, geom, app)
}

// AddPlaneWithElevation appends a vertical quad connecting p1 and p2 at
// explicit base elevations, extruded up by HeightOffset: two triangles,
// six unshared vertices, one color derived at p1.
func (b *Builder) AddPlaneWithElevation(m *Mesh, p1, p2 r2.Vec, ele1, ele2 float64, geom GeometryOptions, app AppearanceOptions) {
	color := b.color(app, p1)
	i := int32(m.VertexCount())

	m.addVertex(p1, ele1, color, i)
	m.addVertex(p2, ele2, color, i+2)
	m.addVertex(p2, ele2+geom.HeightOffset, color, i+1)
	i += 3

	m.addVertex(p1, ele1+geom.HeightOffset, color, i)
	m.addVertex(p1, ele1, color, i+2)
	m.addVertex(p2, ele2+geom.HeightOffset, color, i+1)
}

// AddTriangle appends one triangle from three explicit points, Y up: X and
// Z are the planar geographic coordinates, Y the elevation. The color is
// derived at v0. With HasBackSide set, a second triangle with reversed
// point order follows, making the surface double sided.
func (b *Builder) AddTriangle(m *Mesh, v0, v1, v2 r3.Vec, geom GeometryOptions, app AppearanceOptions) {
	color := b.color(app, r2.Vec{X: v0.X, Y: v0.Z})
	i := int32(m.VertexCount())

	m.addVertex(r2.Vec{X: v0.X, Y: v0.Z}, v0.Y, color, i)
	m.addVertex(r2.Vec{X: v1.X, Y: v1.Z}, v1.Y, color, i+1)
	m.addVertex(r2.Vec{X: v2.X, Y: v2.Z}, v2.Y, color, i+2)

	if geom.HasBackSide {
		m.addVertex(r2.Vec{X: v2.X, Y: v2.Z}, v2.Y, color, i+3)
		m.addVertex(r2.Vec{X: v1.X, Y: v1.Z}, v1.Y, color, i+4)
		m.addVertex(r2.Vec{X: v0.X, Y: v0.Z}, v0.Y, color, i+5)
	}
}

// color derives a vertex color from noise-perturbed gradient evaluation.
func (b *Builder) color(app AppearanceOptions, p r2.Vec) Color {
	return app.Gradient.Evaluate((b.noise(p.X, p.Y, app.ColorNoiseFreq) + 1) / 2)
}
