package geometry

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Disk is a planar circular primitive.
type Disk struct {
	Center core.Vec3
	Normal core.Vec3
	Radius float64
	uAxis  core.Vec3
	vAxis  core.Vec3
}

// NewDisk builds a disk at center, facing along normal, with the given radius.
func NewDisk(center, normal core.Vec3, radius float64) *Disk {
	frame := core.FrameFromNormal(normal)
	return &Disk{
		Center: center,
		Normal: normal,
		Radius: radius,
		uAxis:  frame.ToWorld(core.Vec3{X: 1}),
		vAxis:  frame.ToWorld(core.Vec3{Z: 1}),
	}
}

// Intersect tests the ray against the disk's plane, then checks the radius.
func (d *Disk) Intersect(ray core.Ray) (Intersection, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-9 {
		return Intersection{}, false
	}
	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t <= 0 {
		return Intersection{}, false
	}

	p := ray.At(t).Subtract(d.Center)
	if p.LengthSquared() > d.Radius*d.Radius {
		return Intersection{}, false
	}

	u := p.Dot(d.uAxis)/(2*d.Radius) + 0.5
	v := p.Dot(d.vAxis)/(2*d.Radius) + 0.5
	return Intersection{Distance: t, Normal: d.Normal, UV: core.Vec2{X: u, Y: v}}, true
}

// BoundingBox returns the disk's AABB, built from its two in-plane axes
// rather than left unimplemented, unlike the reference renderer.
func (d *Disk) BoundingBox() core.AABB {
	r := d.uAxis.Multiply(d.Radius)
	s := d.vAxis.Multiply(d.Radius)
	corners := []core.Vec3{
		d.Center.Add(r).Add(s), d.Center.Add(r).Subtract(s),
		d.Center.Subtract(r).Add(s), d.Center.Subtract(r).Subtract(s),
	}
	return core.NewAABBFromPoints(corners...).Expand(1e-4)
}

// SampleDirect picks a uniformly-random point on the disk and returns the
// direction, distance and solid-angle pdf as seen from p.
func (d *Disk) SampleDirect(p core.Vec3, u, v float64) DirectSample {
	dx, dz := core.UniformDisk(u, v)
	point := d.Center.Add(d.uAxis.Multiply(dx * d.Radius)).Add(d.vAxis.Multiply(dz * d.Radius))
	toPoint := point.Subtract(p)
	dist := toPoint.Length()
	dir := toPoint.Divide(dist)

	area := math.Pi * d.Radius * d.Radius
	cosTheta := math.Abs(d.Normal.Dot(dir))
	pdf := 0.0
	if cosTheta > 1e-9 {
		pdf = (dist * dist) / (cosTheta * area)
	}
	return DirectSample{Dir: dir, Dist: dist, PDF: pdf}
}

// PDFDirect returns the solid-angle pdf for a direction/distance pair.
func (d *Disk) PDFDirect(dir core.Vec3, dist float64) float64 {
	area := math.Pi * d.Radius * d.Radius
	cosTheta := math.Abs(d.Normal.Dot(dir))
	if cosTheta <= 1e-9 {
		return 0
	}
	return (dist * dist) / (cosTheta * area)
}
