package geometry

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Parallelogram is a planar quad spanned by Edge1 and Edge2 from Position.
// It is the only primitive (besides Disk) used directly as an area light
// surface, since it admits a simple uniform-area direct-sampling strategy.
type Parallelogram struct {
	Position     core.Vec3
	Edge1, Edge2 core.Vec3
	normal       core.Vec3
	area         float64
}

// NewParallelogram builds a parallelogram from a corner and two edge vectors.
func NewParallelogram(position, edge1, edge2 core.Vec3) *Parallelogram {
	cross := edge1.Cross(edge2)
	area := cross.Length()
	return &Parallelogram{
		Position: position,
		Edge1:    edge1,
		Edge2:    edge2,
		normal:   cross.Divide(area),
		area:     area,
	}
}

// NewSquare builds a square of the given side length, centered
// at center, facing along normal.
func NewSquare(center, normal core.Vec3, sideLength float64) *Parallelogram {
	frame := core.FrameFromNormal(normal)
	half := sideLength / 2
	e1 := frame.ToWorld(core.Vec3{X: sideLength, Y: 0, Z: 0})
	e2 := frame.ToWorld(core.Vec3{X: 0, Y: 0, Z: sideLength})
	corner := center.Subtract(frame.ToWorld(core.Vec3{X: half, Y: 0, Z: half}))
	return NewParallelogram(corner, e1, e2)
}

// Intersect tests the ray against the quad's plane, then checks the hit
// point projects within [0,1) along both edges.
func (q *Parallelogram) Intersect(ray core.Ray) (Intersection, bool) {
	denom := q.normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-9 {
		return Intersection{}, false
	}
	t := q.normal.Dot(q.Position.Subtract(ray.Origin)) / denom
	if t <= 0 {
		return Intersection{}, false
	}

	p := ray.At(t).Subtract(q.Position)
	l1, l2 := q.Edge1.Length(), q.Edge2.Length()
	u := p.Dot(q.Edge1) / (l1 * l1)
	v := p.Dot(q.Edge2) / (l2 * l2)
	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		return Intersection{}, false
	}

	return Intersection{Distance: t, Normal: q.normal, UV: core.Vec2{X: u, Y: v}}, true
}

// BoundingBox returns the AABB of the quad's four corners.
func (q *Parallelogram) BoundingBox() core.AABB {
	p0 := q.Position
	p1 := q.Position.Add(q.Edge1)
	p2 := q.Position.Add(q.Edge2)
	p3 := q.Position.Add(q.Edge1).Add(q.Edge2)
	return core.NewAABBFromPoints(p0, p1, p2, p3).Expand(1e-4)
}

// SampleDirect picks a uniformly-random point on the quad and returns the
// direction, distance and solid-angle pdf as seen from p.
func (q *Parallelogram) SampleDirect(p core.Vec3, u, v float64) DirectSample {
	point := q.Position.Add(q.Edge1.Multiply(u)).Add(q.Edge2.Multiply(v))
	toPoint := point.Subtract(p)
	dist := toPoint.Length()
	dir := toPoint.Divide(dist)

	cosTheta := math.Abs(q.normal.Dot(dir))
	pdf := 0.0
	if cosTheta > 1e-9 {
		pdf = (dist * dist) / (cosTheta * q.area)
	}
	return DirectSample{Dir: dir, Dist: dist, PDF: pdf}
}

// PDFDirect returns the solid-angle pdf for a direction/distance pair
// previously produced against this quad (used by BSDF-sampled MIS).
func (q *Parallelogram) PDFDirect(dir core.Vec3, dist float64) float64 {
	cosTheta := math.Abs(q.normal.Dot(dir))
	if cosTheta <= 1e-9 {
		return 0
	}
	return (dist * dist) / (cosTheta * q.area)
}
