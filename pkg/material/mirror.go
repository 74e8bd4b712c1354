package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// Mirror is a perfect specular reflector.
type Mirror struct {
	Albedo Texture
}

func NewMirror(albedo Texture) *Mirror { return &Mirror{Albedo: albedo} }

func (m *Mirror) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	if cosTheta(wi) >= 0 {
		return NullSample
	}
	return BSDFSample{
		Direction:  reflect(wi),
		PDF:        1,
		Weight:     m.Albedo.Eval(uv.X, uv.Y),
		IsSpecular: true,
	}
}

func (m *Mirror) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 { return core.Vec3{} }
func (m *Mirror) PDF(wi, wo core.Vec3, uv core.Vec2) float64   { return 0 }
func (m *Mirror) IsPurelySpecular() bool                        { return true }
