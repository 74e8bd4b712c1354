package material

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// ggxDistribution is the GGX (Trowbridge-Reitz) normal distribution term D,
// evaluated at a microfacet normal whose cosine with the shading normal is
// cosThetaH. Returns 0 below the horizon.
func ggxDistribution(alpha, cosThetaH float64) float64 {
	if cosThetaH <= 0 {
		return 0
	}
	cos2 := cosThetaH * cosThetaH
	tan2 := (1 - cos2) / cos2
	alpha2 := alpha * alpha
	denom := math.Pi * cos2 * cos2 * (alpha2 + tan2) * (alpha2 + tan2)
	return alpha2 / denom
}

// ggxShadowing1D is the Smith G1 shadowing-masking term for a single
// direction v against a microfacet normal h.
func ggxShadowing1D(alpha float64, v, h core.Vec3) float64 {
	if v.Dot(h)*cosTheta(v) <= 0 {
		return 0
	}
	cosThetaV := cosTheta(v)
	tan2 := (1 - cosThetaV*cosThetaV) / (cosThetaV * cosThetaV)
	return 2.0 / (1.0 + math.Sqrt(1+alpha*alpha*tan2))
}

// ggxShadowing is the combined (separable) Smith masking-shadowing term G
// for the incident direction (negated, since wi points into the surface)
// and the outgoing direction, both against microfacet normal h.
func ggxShadowing(alpha float64, wi, wo, h core.Vec3) float64 {
	return ggxShadowing1D(alpha, wi.Negate(), h) * ggxShadowing1D(alpha, wo, h)
}

// sampleGGX draws a microfacet normal h from the GGX distribution of
// roughness alpha, returning h and its pdf (with respect to h, i.e.
// D(alpha,cosThetaH)*cosThetaH).
func sampleGGX(alpha float64, u, v float64) (core.Vec3, float64) {
	phi := 2 * math.Pi * v
	tan2Theta := alpha * alpha * u / (1 - u)
	cosTheta := 1 / math.Sqrt(1+tan2Theta)
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))

	h := core.Vec3{X: math.Cos(phi) * sinTheta, Y: cosTheta, Z: math.Sin(phi) * sinTheta}
	pdf := ggxDistribution(alpha, cosTheta) * cosTheta
	return h, pdf
}

// ggxPDF returns the pdf (over the space of microfacet normals) for a
// microfacet normal whose cosine with the shading normal is cosThetaH.
func ggxPDF(alpha, cosThetaH float64) float64 {
	return ggxDistribution(alpha, cosThetaH) * cosThetaH
}
