package scene

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/lights"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Hit is the outcome of intersecting a ray with the scene: either it
// scattered off a material-bearing surface, or it reached a light (an
// emitter's surface, or the background after missing everything else).
type Hit struct {
	IsEmitter    bool
	Light        lights.Light
	Distance     float64
	Intersection geometry.Intersection
	Material     material.Material
}

// Scene owns every object in world space plus an optional infinite
// background light, and answers intersection/occlusion/light-sampling
// queries against a single top-level BVH.
type Scene struct {
	objects    []Object
	background lights.Light
	lightIdxs  []int
	bvh        *geometry.BVH[Object]
}

// NewScene builds the top-level BVH over objects and indexes the emitters
// among them for uniform light selection. background may be nil.
func NewScene(objects []Object, background lights.Light) *Scene {
	bvh := geometry.BuildBVH(objects,
		func(o Object, axis core.Axis) float64 { return o.BoundingBox().Center().Component(axis) },
		func(o Object) core.AABB { return o.BoundingBox() },
	)

	var lightIdxs []int
	for i, o := range objects {
		if o.IsEmitter() {
			lightIdxs = append(lightIdxs, i)
		}
	}

	return &Scene{objects: objects, background: background, lightIdxs: lightIdxs, bvh: bvh}
}

func intersectObject(ray core.Ray, o Object) (float64, geometry.Intersection) {
	its, ok := o.Intersect(ray)
	if !ok {
		return -1, geometry.Intersection{}
	}
	return its.Distance, its
}

// Intersect finds the closest scene hit along ray, falling back to the
// background light if present and nothing was hit.
func (s *Scene) Intersect(ray core.Ray) (Hit, bool) {
	t, i, its := geometry.Intersect(s.bvh, ray, intersectObject)

	if t > 0 {
		switch o := s.objects[i].(type) {
		case *Scatterer:
			return Hit{IsEmitter: false, Intersection: its, Material: o.Material}, true
		case *Emitter:
			return Hit{IsEmitter: true, Light: o.Light, Distance: t}, true
		}
	}

	if s.background != nil {
		return Hit{IsEmitter: true, Light: s.background, Distance: math.Inf(1)}, true
	}
	return Hit{}, false
}

// Occluded reports whether a shadow ray from point (offset along normal to
// avoid self-intersection) toward dir is blocked before maxDist.
func (s *Scene) Occluded(point, normal, dir core.Vec3, maxDist float64) bool {
	if dir.Dot(normal) <= 0 {
		return true
	}

	shadowRay := core.Ray{Origin: point.Add(normal.Multiply(core.Epsilon)), Direction: dir}
	t, _, _ := geometry.Intersect(s.bvh, shadowRay, intersectObject)

	return t > 0 && t < maxDist-2*core.Epsilon
}

// NbLights returns the number of lights available for uniform selection,
// counting the background as one extra light when present.
func (s *Scene) NbLights() int {
	n := len(s.lightIdxs)
	if s.background != nil {
		n++
	}
	return n
}

// GetLight returns the i-th light for uniform light sampling (emitters
// first, then the background), or nil if i is out of range.
func (s *Scene) GetLight(i int) lights.Light {
	if i < len(s.lightIdxs) {
		return s.objects[s.lightIdxs[i]].(*Emitter).Light
	}
	return s.background
}
