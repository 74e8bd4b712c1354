package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// Plastic is a dielectric coating over a diffuse substrate: each sample is
// either a specular reflection off the coating (probability = the Fresnel
// reflectance) or a cosine-weighted diffuse bounce.
type Plastic struct {
	Albedo Texture
	IOR    float64
}

func NewPlastic(albedo Texture, ior float64) *Plastic {
	return &Plastic{Albedo: albedo, IOR: ior}
}

func (p *Plastic) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	if cosI <= 0 || cosO <= 0 {
		return core.Vec3{}
	}
	f, _ := dielectricReflectance(1.0/p.IOR, cosI)
	return p.Albedo.Eval(uv.X, uv.Y).Multiply(core.InvPi * cosO * (1 - f))
}

func (p *Plastic) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	cosI := -cosTheta(wi)
	if cosI <= 0 {
		return NullSample
	}

	f, _ := dielectricReflectance(1.0/p.IOR, cosI)
	specProb := f

	if rnd.Z < specProb {
		// Sampling probability uses only the Fresnel weight, not the
		// probability the diffuse branch would also reach this direction;
		// matches reference renderers (e.g. Mitsuba) rather than the
		// textbook-correct mixture pdf.
		return BSDFSample{
			Direction:  reflect(wi),
			PDF:        specProb,
			Weight:     core.Vec3{X: 1, Y: 1, Z: 1},
			IsSpecular: true,
		}
	}

	direction := core.CosineHemisphere(rnd.X, rnd.Y)
	return BSDFSample{
		Direction: direction,
		PDF:       core.CosineHemispherePDF(direction) * (1 - specProb),
		Weight:    p.Albedo.Eval(uv.X, uv.Y),
	}
}

func (p *Plastic) PDF(wi, wo core.Vec3, uv core.Vec2) float64 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	if cosI <= 0 || cosO <= 0 {
		return 0
	}
	f, _ := dielectricReflectance(1.0/p.IOR, cosI)
	return core.CosineHemispherePDF(wo) * (1 - f)
}

func (p *Plastic) IsPurelySpecular() bool { return false }
