package geometry

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Sphere is a ray-traceable sphere with spherical UV parameterization.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a sphere at the given center and radius.
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Intersect solves the quadratic ray/sphere equation, preferring the nearer
// positive root.
func (s *Sphere) Intersect(ray core.Ray) (Intersection, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return Intersection{}, false
	}
	sqrtDisc := math.Sqrt(disc)

	t := (-b - sqrtDisc) / (2 * a)
	if t <= 0 {
		t = (-b + sqrtDisc) / (2 * a)
		if t <= 0 {
			return Intersection{}, false
		}
	}

	hit := ray.At(t)
	normal := hit.Subtract(s.Center).Divide(s.Radius)
	return Intersection{
		Distance: t,
		Normal:   normal,
		UV:       sphereUV(normal),
	}, true
}

// sphereUV maps a unit normal to spherical (u,v) texture coordinates.
func sphereUV(n core.Vec3) core.Vec2 {
	phi := math.Atan2(n.Z, n.X)
	theta := math.Acos(core.Vec3{X: 0, Y: 1, Z: 0}.Dot(n))
	return core.Vec2{
		X: (phi + math.Pi) * core.InvTwoPi,
		Y: theta * core.InvPi,
	}
}

// BoundingBox returns the sphere's axis-aligned bounding box.
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Sphere intentionally does not implement DirectSurface: only Parallelogram
// and Disk are usable as area light surfaces, matching the reference
// renderer this core is modeled on.
