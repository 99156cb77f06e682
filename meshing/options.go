package meshing

import "math"

// ElevationUnset marks GeometryOptions.Elevation as not overridden, making
// the builder sample its elevation provider instead.
const ElevationUnset = -math.MaxFloat64

// refinement is disabled for target areas below this epsilon.
const areaEpsilon = 1e-9

// GeometryOptions bundles the geometric parameters of one builder call.
type GeometryOptions struct {
	// Area is the target maximum triangle area for refinement.
	// Values of about zero disable refinement.
	Area float64
	// SegmentSplit controls boundary refinement: values above zero keep
	// constrained boundary segments intact even where that leaves
	// triangles above the target area.
	SegmentSplit int
	// Elevation overrides elevation sampling unless set to ElevationUnset.
	Elevation float64
	// EleNoiseFreq is the noise frequency for elevation perturbation.
	EleNoiseFreq float64
	// HeightOffset is added to every sampled or overridden elevation and
	// sets the extrusion height of planes.
	HeightOffset float64
	// FlipSide inverts triangle winding for polygon fills.
	FlipSide bool
	// HasBackSide mirrors raw triangles to make them double sided.
	HasBackSide bool
}

// DefaultGeometryOptions returns options that sample the elevation
// provider and leave everything else off.
func DefaultGeometryOptions() GeometryOptions {
	return GeometryOptions{Elevation: ElevationUnset}
}

// AppearanceOptions bundles the appearance parameters of one builder call.
type AppearanceOptions struct {
	// Gradient supplies vertex colors.
	Gradient Gradient
	// ColorNoiseFreq is the noise frequency for gradient sampling.
	ColorNoiseFreq float64
	// TextureRegion is the atlas region for texture coordinates. A nil or
	// empty region leaves all texture coordinates at (0,0).
	TextureRegion TextureRegion
	// TextureScale scales tile-relative coordinates before atlas mapping.
	TextureScale float64
}
