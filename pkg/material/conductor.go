package material

import "github.com/df07/go-progressive-raytracer/pkg/core"

// Conductor is a perfect mirror tinted by a complex (wavelength-dependent)
// Fresnel reflectance, giving metals their characteristic colored highlights.
type Conductor struct {
	Albedo Texture
	IOR    ComplexIOR
}

// NewConductor builds a Conductor from an explicit complex IOR.
func NewConductor(albedo Texture, ior ComplexIOR) *Conductor {
	return &Conductor{Albedo: albedo, IOR: ior}
}

// NewConductorFromSymbol looks up a named conductor (e.g. "Au", "Cu") and
// returns an error if the symbol is unrecognized.
func NewConductorFromSymbol(symbol string, albedo Texture) (*Conductor, error) {
	ior, err := LookupConductorIOR(symbol)
	if err != nil {
		return nil, err
	}
	return &Conductor{Albedo: albedo, IOR: ior}, nil
}

func (c *Conductor) Sample(wi core.Vec3, uv core.Vec2, rnd core.Vec3) BSDFSample {
	cosI := -cosTheta(wi)
	if cosI <= 0 {
		return NullSample
	}
	return BSDFSample{
		Direction:  reflect(wi),
		PDF:        1,
		Weight:     c.Albedo.Eval(uv.X, uv.Y).MultiplyVec(conductorReflectanceRGB(c.IOR, cosI)),
		IsSpecular: true,
	}
}

func (c *Conductor) Eval(wi, wo core.Vec3, uv core.Vec2) core.Vec3 { return core.Vec3{} }
func (c *Conductor) PDF(wi, wo core.Vec3, uv core.Vec2) float64   { return 0 }
func (c *Conductor) IsPurelySpecular() bool                        { return true }
