// Package geometry implements the surface primitives, triangle mesh and
// generic BVH that the renderer intersects camera and shadow rays against.
package geometry

import "github.com/df07/go-progressive-raytracer/pkg/core"

// Intersection describes the closest surface hit found along a ray, in
// world space. UV is within [0,1)^2 for textured surfaces.
type Intersection struct {
	Distance float64
	Normal   core.Vec3
	UV       core.Vec2
}

// Surface is the minimal capability every geometric primitive and mesh
// provides: ray intersection and a bounding box.
type Surface interface {
	Intersect(ray core.Ray) (Intersection, bool)
	BoundingBox() core.AABB
}

// DirectSample is the result of importance-sampling a surface for direct
// (next-event-estimation) illumination from a reference point.
type DirectSample struct {
	Dir  core.Vec3
	Dist float64
	PDF  float64
}

// DirectSurface is a Surface that additionally supports sampling itself for
// direct lighting from a reference point, as required by area lights.
type DirectSurface interface {
	Surface
	SampleDirect(p core.Vec3, u, v float64) DirectSample
	PDFDirect(dir core.Vec3, dist float64) float64
}
