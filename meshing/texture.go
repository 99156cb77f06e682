package meshing

import "gonum.org/v1/gonum/spatial/r2"

// textureMapper maps geographic coordinates into a texture atlas region.
// It is an immutable value capturing the tile extent, the atlas region and
// the texture scale; Map is a pure function of those and its argument.
type textureMapper struct {
	origin r2.Vec
	size   r2.Vec
	region TextureRegion
	scale  float64
}

func newTextureMapper(bounds r2.Box, app AppearanceOptions) textureMapper {
	return textureMapper{
		origin: bounds.Min,
		size:   r2.Sub(bounds.Max, bounds.Min),
		region: app.TextureRegion,
		scale:  app.TextureScale,
	}
}

// Map returns the atlas texture coordinate for geographic point p, or
// (0,0) when no atlas region is assigned.
func (tm textureMapper) Map(p r2.Vec) r2.Vec {
	if tm.region == nil || tm.region.IsEmpty() {
		return r2.Vec{}
	}
	rel := r2.Vec{
		X: (p.X - tm.origin.X) / tm.size.X * tm.scale,
		Y: (p.Y - tm.origin.Y) / tm.size.Y * tm.scale,
	}
	return tm.region.Map(rel)
}
