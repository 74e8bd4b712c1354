package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// RoughPlastic is Plastic with a rough (GGX) specular coat instead of a
// mirror one; the specular/diffuse split is sampled 50/50 rather than by
// Fresnel weight, which empirically converges better than importance
// sampling the reflectance directly.
type RoughPlastic struct {
	Albedo    Texture
	IOR       float64
	Roughness Texture
}

func NewRoughPlastic(albedo Texture, ior float64, roughness Texture) *RoughPlastic {
	return &RoughPlastic{Albedo: albedo, IOR: ior, Roughness: roughness}
}

func (p *RoughPlastic) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	if cosI <= 0 || cosO <= 0 {
		return core.Vec3{}
	}

	roughness := avg(p.Roughness.Eval(uv.X, uv.Y))
	h := wi.Negate().Add(wo).Normalize()
	f, _ := dielectricReflectance(1.0/p.IOR, -wi.Dot(h))
	d := ggxDistribution(roughness, cosTheta(h))
	g := ggxShadowing(roughness, wi, wo, h)

	specBRDF := core.Vec3{X: 1, Y: 1, Z: 1}.Multiply((f * d * g) / (4 * cosI))
	diffBRDF := p.Albedo.Eval(uv.X, uv.Y).Multiply(core.InvPi * cosO * (1 - f))
	return specBRDF.Add(diffBRDF)
}

func (p *RoughPlastic) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	cosI := -cosTheta(wi)
	if cosI <= 0 {
		return NullSample
	}

	const specProb = 0.5
	var direction core.Vec3
	if rnd.Z < specProb {
		roughness := avg(p.Roughness.Eval(uv.X, uv.Y))
		h, _ := sampleGGX(roughness, rnd.X, rnd.Y)
		direction = h.Multiply(-2 * wi.Dot(h)).Add(wi).Normalize()
		if cosTheta(direction) <= 0 {
			return NullSample
		}
	} else {
		direction = core.CosineHemisphere(rnd.X, rnd.Y)
	}

	pdf := p.PDF(wi, direction, uv)
	if pdf <= 0 {
		return NullSample
	}
	return BSDFSample{
		Direction: direction,
		PDF:       pdf,
		Weight:    p.Eval(wi, direction, uv).Divide(pdf),
	}
}

func (p *RoughPlastic) PDF(wi, wo core.Vec3, uv core.Vec2) float64 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	if cosI <= 0 || cosO <= 0 {
		return 0
	}

	const specProb = 0.5
	roughness := avg(p.Roughness.Eval(uv.X, uv.Y))
	h := wi.Negate().Add(wo).Normalize()

	specPDF := ggxPDF(roughness, cosTheta(h)) / (4 * wo.Dot(h))
	diffPDF := core.CosineHemispherePDF(wo)
	return specPDF*specProb + diffPDF*(1-specProb)
}

func (p *RoughPlastic) IsPurelySpecular() bool { return false }
