package meshing

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Color is a packed 0xAARRGGBB vertex color.
type Color uint32

// RGBA packs the four channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB packs an opaque Color.
func RGB(r, g, b uint8) Color { return RGBA(r, g, b, 0xff) }

// Mesh accumulates geometry for one tile. It is append-only: builder calls
// add vertices and triangles, never truncate or edit in place. The caller
// owns the mesh and passes it through a sequence of builder calls.
type Mesh struct {
	Name string
	// Vertices holds flattened x, y, elevation triples.
	Vertices []float64
	// Triangles holds index triples into Vertices.
	Triangles []int32
	// Colors holds one packed color per vertex.
	Colors []Color
	// UVs holds flattened texture coordinate pairs, one per vertex.
	UVs []float64
}

// NewMesh returns an empty named mesh.
func NewMesh(name string) *Mesh { return &Mesh{Name: name} }

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Reserve grows the mesh buffers ahead of appending the given number of
// points and triangles. It is a performance hint only; buffers still grow
// as needed when under-reserved.
func (m *Mesh) Reserve(points, triangles int) {
	m.Vertices = slices.Grow(m.Vertices, points*3)
	m.Triangles = slices.Grow(m.Triangles, triangles*3)
	m.Colors = slices.Grow(m.Colors, points)
	m.UVs = slices.Grow(m.UVs, points*2)
}

// addVertex appends one vertex with a default texture coordinate along
// with one triangle corner index.
func (m *Mesh) addVertex(p r2.Vec, ele float64, c Color, index int32) {
	m.Vertices = append(m.Vertices, p.X, p.Y, ele)
	m.Colors = append(m.Colors, c)
	m.UVs = append(m.UVs, 0, 0)
	m.Triangles = append(m.Triangles, index)
}

// Validate checks the mesh buffer invariants: vertex, color and texture
// coordinate counts agree and all triangle indices are in range.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("meshing: vertex buffer length %d not a multiple of 3", len(m.Vertices))
	}
	n := m.VertexCount()
	if len(m.Colors) != n {
		return fmt.Errorf("meshing: got %d colors for %d vertices", len(m.Colors), n)
	}
	if len(m.UVs) != 2*n {
		return fmt.Errorf("meshing: got %d uv values for %d vertices", len(m.UVs), n)
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("meshing: triangle buffer length %d not a multiple of 3", len(m.Triangles))
	}
	for _, idx := range m.Triangles {
		if idx < 0 || int(idx) >= n {
			return fmt.Errorf("meshing: triangle index %d out of range [0,%d)", idx, n)
		}
	}
	return nil
}
