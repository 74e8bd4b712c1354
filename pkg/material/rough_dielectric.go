package material

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// RoughDielectric is a refractive interface with a rough (GGX) microfacet
// distribution, sampled via a randomly chosen microfacet normal rather than
// the shading normal directly. Albedo should be white for physical accuracy;
// it exists as a tint knob.
type RoughDielectric struct {
	Albedo    Texture
	IOR       float64
	Roughness Texture
}

func NewRoughDielectric(albedo Texture, ior float64, roughness Texture) *RoughDielectric {
	return &RoughDielectric{Albedo: albedo, IOR: ior, Roughness: roughness}
}

func (d *RoughDielectric) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	eta := 1.0 / d.IOR
	if cosTheta(wi) >= 0 {
		eta = d.IOR
	}
	cosI := math.Abs(cosTheta(wi))

	roughness := avg(d.Roughness.Eval(uv.X, uv.Y))
	sampleRoughness := (1.2 - 0.2*math.Sqrt(cosI)) * roughness

	h, ggxPdf := sampleGGX(sampleRoughness, rnd.X, rnd.Y)
	if ggxPdf < 1e-10 {
		return NullSample
	}

	inDotH := -wi.Dot(h)
	etaH := 1.0 / d.IOR
	if inDotH < 0 {
		etaH = d.IOR
	}
	f, cosT := dielectricReflectance(etaH, math.Abs(inDotH))

	isReflection := rnd.Z < f
	var direction core.Vec3
	if isReflection {
		direction = h.Multiply(2 * inDotH).Add(wi)
	} else {
		sign := 1.0
		if inDotH < 0 {
			sign = -1.0
		}
		direction = h.Multiply(etaH*inDotH - sign*cosT).Subtract(wi.Negate().Multiply(etaH))
	}
	direction = direction.Normalize()

	reflected := cosTheta(wi)*cosTheta(direction) <= 0
	if reflected != isReflection {
		return NullSample
	}

	outDotH := direction.Dot(h)
	g := ggxShadowing(roughness, wi, direction, h)
	dDist := ggxDistribution(roughness, cosTheta(h))
	weight := math.Abs(inDotH) * dDist * g / (ggxPdf * cosI)

	var pdf float64
	if isReflection {
		pdf = ggxPdf / (4 * math.Abs(inDotH)) * f
	} else {
		x := eta*inDotH + outDotH
		pdf = ggxPdf * math.Abs(outDotH) / (x * x) * (1 - f)
	}

	return BSDFSample{
		Direction: direction,
		PDF:       pdf,
		Weight:    d.Albedo.Eval(uv.X, uv.Y).Multiply(weight),
	}
}

func (d *RoughDielectric) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	isReflection := cosI*cosO >= 0
	roughness := avg(d.Roughness.Eval(uv.X, uv.Y))
	eta := 1.0 / d.IOR
	if cosI < 0 {
		eta = d.IOR
	}

	var h core.Vec3
	if isReflection {
		sign := 1.0
		if cosI < 0 {
			sign = -1.0
		}
		h = wi.Negate().Add(wo).Normalize().Multiply(sign)
	} else {
		h = wi.Negate().Multiply(eta).Add(wo).Normalize().Negate()
	}
	inDotH := -wi.Dot(h)
	outDotH := wo.Dot(h)
	etaH := 1.0 / d.IOR
	if inDotH < 0 {
		etaH = d.IOR
	}

	f, _ := dielectricReflectance(etaH, math.Abs(inDotH))
	g := ggxShadowing(roughness, wi, wo, h)
	dDist := ggxDistribution(roughness, cosTheta(h))

	var r float64
	if isReflection {
		r = (f * g * dDist) / (4 * math.Abs(cosI))
	} else {
		x := eta*inDotH + outDotH
		r = math.Abs(inDotH*outDotH) * (1 - f) * g * dDist / (x * x * math.Abs(cosI))
	}
	return d.Albedo.Eval(uv.X, uv.Y).Multiply(r)
}

func (d *RoughDielectric) PDF(wi, wo core.Vec3, uv core.Vec2) float64 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	isReflection := cosI*cosO >= 0
	roughness := avg(d.Roughness.Eval(uv.X, uv.Y))
	sampleRoughness := (1.2 - 0.2*math.Sqrt(math.Abs(cosI))) * roughness
	eta := 1.0 / d.IOR
	if cosI < 0 {
		eta = d.IOR
	}

	var h core.Vec3
	if isReflection {
		sign := 1.0
		if cosI < 0 {
			sign = -1.0
		}
		h = wi.Negate().Add(wo).Normalize().Multiply(sign)
	} else {
		h = wi.Negate().Multiply(eta).Add(wo).Normalize().Negate()
	}
	inDotH := -wi.Dot(h)
	outDotH := wo.Dot(h)
	etaH := 1.0 / d.IOR
	if inDotH < 0 {
		etaH = d.IOR
	}

	f, _ := dielectricReflectance(etaH, math.Abs(inDotH))
	ggxPdf := ggxPDF(sampleRoughness, cosTheta(h))

	if isReflection {
		return ggxPdf / (4 * math.Abs(inDotH)) * f
	}
	x := eta*inDotH + outDotH
	return ggxPdf * math.Abs(outDotH) / (x * x) * (1 - f)
}

func (d *RoughDielectric) IsPurelySpecular() bool { return false }

func avg(c core.Vec3) float64 { return (c.X + c.Y + c.Z) / 3 }
