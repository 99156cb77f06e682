package meshing

import (
	"testing"

	"github.com/Avatarchik/utymap/triangulate"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type constElevation float64

func (c constElevation) Elevation(lat, lon float64) float64 { return float64(c) }

// constNoise returns its value for any nonzero frequency.
func constNoise(v float64) NoiseFunc {
	return func(x, y, freq float64) float64 {
		if freq == 0 {
			return 0
		}
		return v
	}
}

type rampGradient struct{}

func (rampGradient) Evaluate(t float64) Color {
	return RGB(uint8(255*t), 0, uint8(255*(1-t)))
}

// fixedTriangulator ignores its input and returns a canned triangulation.
type fixedTriangulator struct {
	t *triangulate.Triangulation
}

func (f fixedTriangulator) Conforming(*Polygon) *triangulate.Triangulation { return f.t }
func (f fixedTriangulator) Refined(*Polygon, float64, int) *triangulate.Triangulation {
	return f.t
}

func unitBounds() r2.Box {
	return r2.Box{Min: r2.Vec{}, Max: r2.Vec{X: 1, Y: 1}}
}

func squarePolygon() *Polygon {
	p := NewPolygon(4)
	p.AddContour([]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	return p
}

func TestAddPolygonFlatSquare(t *testing.T) {
	b := NewBuilder(unitBounds(), constElevation(0), constNoise(99))
	m := NewMesh("flat")
	geom := DefaultGeometryOptions()
	geom.Elevation = 10
	app := AppearanceOptions{Gradient: rampGradient{}}

	b.AddPolygon(m, squarePolygon(), geom, app)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := m.VertexCount(); got != 4 {
		t.Fatalf("got %d vertices, want 4", got)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("got %d triangles, want 2", got)
	}
	for i := 0; i < m.VertexCount(); i++ {
		if z := m.Vertices[3*i+2]; z != 10 {
			t.Errorf("vertex %d elevation %g, want the overridden 10", i, z)
		}
	}
	// Noise frequencies are zero: every vertex gets the same gradient sample.
	for i, c := range m.Colors {
		if c != m.Colors[0] {
			t.Errorf("vertex %d color %08x differs from %08x", i, uint32(c), uint32(m.Colors[0]))
		}
	}
	// No texture region assigned: texture coordinates stay zero.
	for i, uv := range m.UVs {
		if uv != 0 {
			t.Errorf("uv value %d is %g, want 0", i, uv)
		}
	}
}

func TestAddPolygonRefined(t *testing.T) {
	b := NewBuilder(unitBounds(), constElevation(10), NoNoise)
	m := NewMesh("refined")
	geom := DefaultGeometryOptions()
	geom.Area = 0.1
	geom.SegmentSplit = 1

	b.AddPolygon(m, squarePolygon(), geom, AppearanceOptions{Gradient: rampGradient{}})
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := m.TriangleCount(); got <= 2 {
		t.Fatalf("got %d triangles, want refinement beyond 2", got)
	}
	for i := 0; i < m.VertexCount(); i++ {
		if z := m.Vertices[3*i+2]; z != 10 {
			t.Errorf("vertex %d elevation %g, want sampled 10", i, z)
		}
	}
}

func TestFillWinding(t *testing.T) {
	tri := &triangulate.Triangulation{
		Points:    []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Triangles: []int32{0, 1, 2},
		Markers:   []int32{1, 1, 1},
	}
	b := NewBuilder(unitBounds(), constElevation(0), NoNoise)
	b.tri = fixedTriangulator{tri}
	app := AppearanceOptions{Gradient: rampGradient{}}

	m := NewMesh("front")
	b.AddPolygon(m, squarePolygon(), DefaultGeometryOptions(), app)
	if want := []int32{1, 0, 2}; !equalInt32(m.Triangles, want) {
		t.Errorf("got indices %v, want %v", m.Triangles, want)
	}

	flipped := NewMesh("back")
	geom := DefaultGeometryOptions()
	geom.FlipSide = true
	b.AddPolygon(flipped, squarePolygon(), geom, app)
	if want := []int32{2, 0, 1}; !equalInt32(flipped.Triangles, want) {
		t.Errorf("flipped: got indices %v, want %v", flipped.Triangles, want)
	}
}

func TestFillIndexOffset(t *testing.T) {
	tri := &triangulate.Triangulation{
		Points:    []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Triangles: []int32{0, 1, 2},
		Markers:   []int32{1, 1, 1},
	}
	b := NewBuilder(unitBounds(), constElevation(0), NoNoise)
	b.tri = fixedTriangulator{tri}
	app := AppearanceOptions{Gradient: rampGradient{}}

	m := NewMesh("shared")
	b.AddPolygon(m, squarePolygon(), DefaultGeometryOptions(), app)
	b.AddPolygon(m, squarePolygon(), DefaultGeometryOptions(), app)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if want := []int32{1, 0, 2, 4, 3, 5}; !equalInt32(m.Triangles, want) {
		t.Errorf("got indices %v, want %v", m.Triangles, want)
	}
}

func TestFillBoundaryNoise(t *testing.T) {
	tri := &triangulate.Triangulation{
		Points:    []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}},
		Triangles: []int32{0, 1, 3, 1, 2, 3},
		Markers:   []int32{1, 1, 1, 0},
	}
	b := NewBuilder(unitBounds(), constElevation(10), constNoise(5))
	b.tri = fixedTriangulator{tri}
	geom := DefaultGeometryOptions()
	geom.EleNoiseFreq = 1

	m := NewMesh("noise")
	b.AddPolygon(m, squarePolygon(), geom, AppearanceOptions{Gradient: rampGradient{}})
	want := []float64{10, 10, 10, 15}
	for i, w := range want {
		if z := m.Vertices[3*i+2]; z != w {
			t.Errorf("vertex %d elevation %g, want %g (boundary points stay noise-free)", i, z, w)
		}
	}

	// The elevation override replaces the sampled base but noise still
	// perturbs interior points.
	geom.Elevation = 3
	geom.HeightOffset = 2
	m = NewMesh("noise-override")
	b.AddPolygon(m, squarePolygon(), geom, AppearanceOptions{Gradient: rampGradient{}})
	want = []float64{5, 5, 5, 10}
	for i, w := range want {
		if z := m.Vertices[3*i+2]; z != w {
			t.Errorf("override: vertex %d elevation %g, want %g", i, z, w)
		}
	}
}

func TestAddPlaneWithElevation(t *testing.T) {
	b := NewBuilder(unitBounds(), constElevation(0), NoNoise)
	m := NewMesh("wall")
	geom := DefaultGeometryOptions()
	geom.HeightOffset = 3
	p1 := r2.Vec{X: 0, Y: 0}
	p2 := r2.Vec{X: 1, Y: 0}

	b.AddPlaneWithElevation(m, p1, p2, 1, 2, geom, AppearanceOptions{Gradient: rampGradient{}})
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := m.VertexCount(); got != 6 {
		t.Fatalf("got %d vertices, want 6", got)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("got %d triangles, want 2", got)
	}
	wantVerts := []float64{
		0, 0, 1, // p1 base
		1, 0, 2, // p2 base
		1, 0, 5, // p2 top
		0, 0, 4, // p1 top
		0, 0, 1, // p1 base
		1, 0, 5, // p2 top
	}
	for i, w := range wantVerts {
		if m.Vertices[i] != w {
			t.Errorf("vertex value %d is %g, want %g", i, m.Vertices[i], w)
		}
	}
	if want := []int32{0, 2, 1, 3, 5, 4}; !equalInt32(m.Triangles, want) {
		t.Errorf("got indices %v, want %v", m.Triangles, want)
	}
	for i, c := range m.Colors {
		if c != m.Colors[0] {
			t.Errorf("vertex %d color differs; planes use one color derived at p1", i)
		}
	}
}

func TestAddPlaneSamplesProvider(t *testing.T) {
	b := NewBuilder(unitBounds(), constElevation(7), constNoise(2))
	m := NewMesh("wall")
	geom := DefaultGeometryOptions()
	geom.EleNoiseFreq = 1
	geom.HeightOffset = 1

	b.AddPlane(m, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 0}, geom, AppearanceOptions{Gradient: rampGradient{}})
	want := []float64{9, 9, 10, 10, 9, 10}
	for i, w := range want {
		if z := m.Vertices[3*i+2]; z != w {
			t.Errorf("vertex %d elevation %g, want %g", i, z, w)
		}
	}
}

func TestAddTriangle(t *testing.T) {
	b := NewBuilder(unitBounds(), constElevation(0), NoNoise)
	m := NewMesh("tri")
	v0 := r3.Vec{X: 0, Y: 5, Z: 0}
	v1 := r3.Vec{X: 1, Y: 5, Z: 0}
	v2 := r3.Vec{X: 0, Y: 5, Z: 1}

	b.AddTriangle(m, v0, v1, v2, DefaultGeometryOptions(), AppearanceOptions{Gradient: rampGradient{}})
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := m.VertexCount(); got != 3 {
		t.Fatalf("got %d vertices, want 3", got)
	}
	// Y is up: it lands in the elevation slot, X and Z in the plane.
	wantVerts := []float64{0, 0, 5, 1, 0, 5, 0, 1, 5}
	for i, w := range wantVerts {
		if m.Vertices[i] != w {
			t.Errorf("vertex value %d is %g, want %g", i, m.Vertices[i], w)
		}
	}
	if want := []int32{0, 1, 2}; !equalInt32(m.Triangles, want) {
		t.Errorf("got indices %v, want %v", m.Triangles, want)
	}
}

func TestAddTriangleBackSide(t *testing.T) {
	b := NewBuilder(unitBounds(), constElevation(0), NoNoise)
	m := NewMesh("tri2")
	geom := DefaultGeometryOptions()
	geom.HasBackSide = true
	v0 := r3.Vec{X: 0, Y: 5, Z: 0}
	v1 := r3.Vec{X: 1, Y: 5, Z: 0}
	v2 := r3.Vec{X: 0, Y: 5, Z: 1}

	b.AddTriangle(m, v0, v1, v2, geom, AppearanceOptions{Gradient: rampGradient{}})
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := m.VertexCount(); got != 6 {
		t.Fatalf("got %d vertices, want 6", got)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("got %d triangles, want 2", got)
	}
	if want := []int32{0, 1, 2, 3, 4, 5}; !equalInt32(m.Triangles, want) {
		t.Errorf("got indices %v, want %v", m.Triangles, want)
	}
	// The back face repeats the points in reverse order.
	for k := 0; k < 3; k++ {
		front, back := 3*k, 3*(5-k)
		for j := 0; j < 3; j++ {
			if m.Vertices[front+j] != m.Vertices[back+j] {
				t.Errorf("back-face vertex %d does not mirror front vertex %d", 5-k, k)
			}
		}
	}
}

// identityRegion maps tile-relative coordinates straight through.
type identityRegion struct{}

func (identityRegion) IsEmpty() bool         { return false }
func (identityRegion) Map(rel r2.Vec) r2.Vec { return rel }

func TestTextureMapping(t *testing.T) {
	bounds := r2.Box{Min: r2.Vec{}, Max: r2.Vec{X: 2, Y: 2}}
	b := NewBuilder(bounds, constElevation(0), NoNoise)
	m := NewMesh("uv")
	app := AppearanceOptions{
		Gradient:      rampGradient{},
		TextureRegion: identityRegion{},
		TextureScale:  1,
	}

	b.AddPolygon(m, squarePolygon(), DefaultGeometryOptions(), app)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < m.VertexCount(); i++ {
		x, y := m.Vertices[3*i], m.Vertices[3*i+1]
		u, v := m.UVs[2*i], m.UVs[2*i+1]
		if u != x/2 || v != y/2 {
			t.Errorf("vertex (%g,%g) mapped to uv (%g,%g), want (%g,%g)", x, y, u, v, x/2, y/2)
		}
	}
}

func equalInt32(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
