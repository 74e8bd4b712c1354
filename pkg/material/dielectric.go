package material

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Dielectric is a smooth refractive interface (glass, water) that either
// reflects or transmits each sample, chosen stochastically by the Fresnel
// reflectance so the weight carries only the albedo.
type Dielectric struct {
	Albedo Texture
	IOR    float64
}

func NewDielectric(albedo Texture, ior float64) *Dielectric {
	return &Dielectric{Albedo: albedo, IOR: ior}
}

func (d *Dielectric) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	eta := 1.0 / d.IOR
	if cosTheta(wi) >= 0 {
		eta = d.IOR
	}
	cosI := math.Abs(cosTheta(wi))
	reflectance, cosT := dielectricReflectance(eta, cosI)

	var direction core.Vec3
	var pdf float64
	if rnd.Z < reflectance {
		direction, pdf = reflect(wi), reflectance
	} else {
		direction, pdf = refract(wi, eta, cosT), 1-reflectance
	}

	return BSDFSample{
		Direction:  direction,
		PDF:        pdf,
		Weight:     d.Albedo.Eval(uv.X, uv.Y),
		IsSpecular: true,
	}
}

func (d *Dielectric) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 { return core.Vec3{} }
func (d *Dielectric) PDF(wi, wo core.Vec3, uv core.Vec2) float64   { return 0 }
func (d *Dielectric) IsPurelySpecular() bool                        { return true }
