package meshing

import "gonum.org/v1/gonum/spatial/r2"

// Collaborator contracts. All implementations are expected to be
// deterministic and synchronous; the builder uses their results as-is.

// ElevationProvider samples terrain elevation at a geographic coordinate.
type ElevationProvider interface {
	Elevation(lat, lon float64) float64
}

// NoiseFunc is a deterministic 2D gradient noise function sampled at (x,y)
// with the given frequency. Results range roughly over [-1,1] and a zero
// frequency yields zero.
type NoiseFunc func(x, y, freq float64) float64

// NoNoise returns zero for every sample.
func NoNoise(x, y, freq float64) float64 { return 0 }

// Gradient evaluates a color gradient at position t in [0,1].
type Gradient interface {
	Evaluate(t float64) Color
}

// TextureRegion embeds a tile-relative 0..1 coordinate into a
// sub-rectangle of a shared texture atlas. The region defines its own
// tiling behavior for coordinates outside the unit range.
type TextureRegion interface {
	IsEmpty() bool
	Map(rel r2.Vec) r2.Vec
}
