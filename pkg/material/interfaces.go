package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// BSDFSample is the result of importance-sampling a material's scattering
// distribution. Weight equals f(wi,wo)*|cos(theta_o)|/pdf; Direction is in
// the shading-local frame (Y is the surface normal).
type BSDFSample struct {
	Direction   core.Vec3
	PDF         float64
	Weight      core.Vec3
	IsSpecular  bool
}

// NullSample is returned when sampling fails (e.g. an inconsistent
// reflect/refract branch); its zero Weight terminates the path.
var NullSample = BSDFSample{}

// Material is a BSDF: a scattering distribution at a surface point. All
// directions are in the local shading frame, where Y is the normal.
// Convention: wi points into the surface along the incident ray
// (cos(theta_i) = -wi.Y for an upper-hemisphere hit); wo points away from
// the surface after scattering. rnd is three independent uniforms in [0,1).
type Material interface {
	// Sample draws an outgoing direction and its importance-sampling weight.
	Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample

	// Eval returns f(wi,wo)*cos(theta_o) for the given pair of directions; zero outside
	// the lobe's support (e.g. for a purely specular material).
	Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3

	// PDF returns the probability density of Sample producing wo given wi.
	PDF(wi, wo core.Vec3, uv core.Vec2) float64

	// IsPurelySpecular reports whether every sample is drawn from a Dirac
	// delta lobe, in which case NEE must skip this vertex.
	IsPurelySpecular() bool
}

func cosTheta(v core.Vec3) float64 { return v.Y }

func reflect(wi core.Vec3) core.Vec3 {
	return core.Vec3{X: wi.X, Y: -wi.Y, Z: wi.Z}
}

// refract computes the refracted direction of wi (pointing into the
// surface) through an interface with relative IOR eta = etaIncident/etaTransmitted,
// given the already-computed cos(theta_t) on the far side (its sign follows wi.Y).
func refract(wi core.Vec3, eta, cosThetaT float64) core.Vec3 {
	sign := 1.0
	if wi.Y < 0 {
		sign = -1.0
	}
	return core.Vec3{
		X: wi.X * eta,
		Y: sign * cosThetaT,
		Z: wi.Z * eta,
	}
}
