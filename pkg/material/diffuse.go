package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// Diffuse is a Lambertian (perfectly matte) BSDF: f = albedo/pi, sampled
// by cosine-weighted hemisphere importance sampling so the pdf cancels the
// cosine term and the sample weight reduces to albedo.
type Diffuse struct {
	Albedo Texture
}

// NewDiffuse wraps an albedo texture as a Diffuse material.
func NewDiffuse(albedo Texture) *Diffuse { return &Diffuse{Albedo: albedo} }

func (d *Diffuse) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	if cosTheta(wi) >= 0 {
		return NullSample
	}
	dir := core.CosineHemisphere(rnd.X, rnd.Y)
	pdf := core.CosineHemispherePDF(dir)
	if pdf <= 0 {
		return NullSample
	}
	return BSDFSample{
		Direction: dir,
		PDF:       pdf,
		Weight:    d.Albedo.Eval(uv.X, uv.Y),
	}
}

func (d *Diffuse) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 {
	return d.Albedo.Eval(uv.X, uv.Y).Multiply(core.InvPi * max(0, cosTheta(wo)))
}

func (d *Diffuse) PDF(wi, wo core.Vec3, uv core.Vec2) float64 {
	return core.InvPi * max(0, cosTheta(wo))
}

func (d *Diffuse) IsPurelySpecular() bool { return false }
