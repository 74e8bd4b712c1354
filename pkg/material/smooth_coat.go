package material

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// SmoothCoat layers a smooth dielectric coating over an arbitrary substrate
// material, attenuating light that travels through the coating by Beer's
// law using ScaledSigmaA (the absorption coefficient scaled by coat depth).
type SmoothCoat struct {
	IOR           float64
	ScaledSigmaA  core.Vec3
	Substrate     Material
}

func NewSmoothCoat(ior float64, scaledSigmaA core.Vec3, substrate Material) *SmoothCoat {
	return &SmoothCoat{IOR: ior, ScaledSigmaA: scaledSigmaA, Substrate: substrate}
}

func (c *SmoothCoat) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	eta := 1.0 / c.IOR
	cosI := -cosTheta(wi)
	if cosI <= 0 {
		return NullSample
	}
	fi, cosTi := dielectricReflectance(eta, cosI)

	avgTransmittance := math.Exp(-2 * avg(c.ScaledSigmaA))
	subWeight := avgTransmittance * (1 - fi)
	specWeight := fi
	specProb := specWeight / (specWeight + subWeight)

	if rnd.Z < specProb {
		return BSDFSample{
			Direction:  reflect(wi),
			PDF:        specProb,
			Weight:     core.Vec3{X: fi + subWeight, Y: fi + subWeight, Z: fi + subWeight},
			IsSpecular: true,
		}
	}

	wiSub := core.Vec3{X: wi.X * eta, Y: -cosTi, Z: wi.Z * eta}
	subSample := c.Substrate.Sample(wiSub, uv, rnd)
	if subSample.Weight.IsZero() {
		return NullSample
	}

	cosSub := cosTheta(subSample.Direction)
	fo, cosTo := dielectricReflectance(c.IOR, cosSub)
	if fo == 1 {
		return NullSample
	}

	woSub := subSample.Direction
	direction := core.Vec3{X: woSub.X * c.IOR, Y: cosTo, Z: woSub.Z * c.IOR}

	weight := subSample.Weight.Multiply((1 - fi) * (1 - fo))
	if c.ScaledSigmaA.MaxElem() > 0 {
		exponent := c.ScaledSigmaA.Multiply(-1/cosSub - 1/cosTi)
		weight = weight.MultiplyVec(core.Vec3{X: math.Exp(exponent.X), Y: math.Exp(exponent.Y), Z: math.Exp(exponent.Z)})
	}
	weight = weight.Divide(1 - specProb)
	pdf := subSample.PDF * (1 - specProb) * eta * eta * cosTo / cosSub

	return BSDFSample{
		Direction:  direction,
		PDF:        pdf,
		Weight:     weight,
		IsSpecular: subSample.IsSpecular,
	}
}

func (c *SmoothCoat) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	if cosI <= 0 || cosO <= 0 {
		return core.Vec3{}
	}

	eta := 1.0 / c.IOR
	fi, cosTi := dielectricReflectance(eta, cosI)
	fo, cosTo := dielectricReflectance(eta, cosO)

	wiSub := core.Vec3{X: wi.X * eta, Y: -cosTi, Z: wi.Z * eta}
	woSub := core.Vec3{X: wo.X * eta, Y: cosTo, Z: wo.Z * eta}

	subEval := c.Substrate.Eval(wiSub, woSub, uv)
	if c.ScaledSigmaA.MaxElem() > 0 {
		exponent := c.ScaledSigmaA.Multiply(-1/cosTo - 1/cosTi)
		subEval = subEval.MultiplyVec(core.Vec3{X: math.Exp(exponent.X), Y: math.Exp(exponent.Y), Z: math.Exp(exponent.Z)})
	}

	l := eta * eta * cosO / cosTo
	return subEval.Multiply(l * (1 - fi) * (1 - fo))
}

func (c *SmoothCoat) PDF(wi, wo core.Vec3, uv core.Vec2) float64 {
	cosI := -cosTheta(wi)
	cosO := cosTheta(wo)
	if cosI <= 0 || cosO <= 0 {
		return 0
	}

	eta := 1.0 / c.IOR
	fi, cosTi := dielectricReflectance(eta, cosI)
	_, cosTo := dielectricReflectance(eta, cosO)

	wiSub := core.Vec3{X: wi.X * eta, Y: -cosTi, Z: wi.Z * eta}
	woSub := core.Vec3{X: wo.X * eta, Y: cosTo, Z: wo.Z * eta}

	avgTransmittance := math.Exp(-2 * avg(c.ScaledSigmaA))
	subWeight := avgTransmittance * (1 - fi)
	specWeight := fi
	specProb := specWeight / (specWeight + subWeight)
	l := eta * eta * math.Abs(cosO/cosTo)

	return c.Substrate.PDF(wiSub, woSub, uv) * (1 - specProb) * l
}

func (c *SmoothCoat) IsPurelySpecular() bool { return false }
