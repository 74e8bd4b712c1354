package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// RoughConductor is a metal with a rough (GGX) microfacet surface instead of
// a perfect mirror.
type RoughConductor struct {
	Albedo    Texture
	IOR       ComplexIOR
	Roughness Texture
}

func NewRoughConductor(albedo Texture, ior ComplexIOR, roughness Texture) *RoughConductor {
	return &RoughConductor{Albedo: albedo, IOR: ior, Roughness: roughness}
}

// NewRoughConductorFromSymbol looks up a named conductor and returns an
// error if the symbol is unrecognized.
func NewRoughConductorFromSymbol(symbol string, albedo, roughness Texture) (*RoughConductor, error) {
	ior, err := LookupConductorIOR(symbol)
	if err != nil {
		return nil, err
	}
	return &RoughConductor{Albedo: albedo, IOR: ior, Roughness: roughness}, nil
}

func (c *RoughConductor) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	roughness := avg(c.Roughness.Eval(uv.X, uv.Y))
	h, ggxPdf := sampleGGX(roughness, rnd.X, rnd.Y)
	inDotH := -wi.Dot(h)
	direction := wi.Add(h.Multiply(2 * inDotH))

	cosI := -cosTheta(wi)
	cosO := cosTheta(direction)
	if cosI <= 0 || cosO <= 0 || inDotH <= 0 {
		return NullSample
	}

	g := ggxShadowing(roughness, wi, direction, h)
	d := ggxDistribution(roughness, cosTheta(h))
	f := conductorReflectanceRGB(c.IOR, inDotH)

	pdf := ggxPdf / (4 * inDotH)
	weight := f.Multiply(inDotH * d * g / (ggxPdf * cosI))

	return BSDFSample{
		Direction: direction,
		PDF:       pdf,
		Weight:    c.Albedo.Eval(uv.X, uv.Y).MultiplyVec(weight),
	}
}

func (c *RoughConductor) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	if cosI <= 0 || cosO <= 0 {
		return core.Vec3{}
	}

	roughness := avg(c.Roughness.Eval(uv.X, uv.Y))
	h := wi.Negate().Add(wo).Normalize()
	f := conductorReflectanceRGB(c.IOR, -wi.Dot(h))
	g := ggxShadowing(roughness, wi, wo, h)
	d := ggxDistribution(roughness, cosTheta(h))

	albedo := c.Albedo.Eval(uv.X, uv.Y)
	return albedo.MultiplyVec(f).Multiply(g * d / (4 * cosI))
}

func (c *RoughConductor) PDF(wi, wo core.Vec3, uv core.Vec2) float64 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	if cosI <= 0 || cosO <= 0 {
		return 0
	}
	roughness := avg(c.Roughness.Eval(uv.X, uv.Y))
	h := wi.Negate().Add(wo).Normalize()
	return ggxPDF(roughness, cosTheta(h)) / (4 * -wi.Dot(h))
}

func (c *RoughConductor) IsPurelySpecular() bool { return false }
