package lights

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
)

// AreaLight is a constant-radiance emitter attached to a DirectSurface
// (a Parallelogram or Disk); all of the sampling machinery delegates to
// the surface, which knows its own area and geometry.
type AreaLight struct {
	Surface  geometry.DirectSurface
	Emission core.Vec3
}

// NewAreaLight attaches a constant emission to a direct-samplable surface.
func NewAreaLight(surface geometry.DirectSurface, emission core.Vec3) *AreaLight {
	return &AreaLight{Surface: surface, Emission: emission}
}

func (l *AreaLight) EvalDirect(dir core.Vec3) core.Vec3 {
	return l.Emission
}

func (l *AreaLight) SampleDirect(p core.Vec3, u, v float64) (core.Vec3, geometry.DirectSample) {
	return l.Emission, l.Surface.SampleDirect(p, u, v)
}

func (l *AreaLight) PDFDirect(dir core.Vec3, dist float64) float64 {
	return l.Surface.PDFDirect(dir, dist)
}
