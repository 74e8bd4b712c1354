// Package scene assembles surfaces, materials and lights into a single
// intersectable Scene, backed by one top-level BVH over every object.
package scene

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/lights"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// Object is anything the scene's BVH can hold: either a light-emitting
// surface or a surface paired with the material it scatters light by.
type Object interface {
	geometry.Surface
	IsEmitter() bool
}

// Emitter is an Object that emits light; its geometry is owned by the
// wrapped AreaLight so the light can sample it directly for NEE.
type Emitter struct {
	Light *lights.AreaLight
}

func NewEmitter(light *lights.AreaLight) *Emitter { return &Emitter{Light: light} }

func (e *Emitter) Intersect(ray core.Ray) (geometry.Intersection, bool) {
	return e.Light.Surface.Intersect(ray)
}

func (e *Emitter) BoundingBox() core.AABB { return e.Light.Surface.BoundingBox() }
func (e *Emitter) IsEmitter() bool        { return true }

// Scatterer is an Object that reflects/refracts light per its Material.
type Scatterer struct {
	Surface  geometry.Surface
	Material material.Material
}

func NewScatterer(surface geometry.Surface, mat material.Material) *Scatterer {
	return &Scatterer{Surface: surface, Material: mat}
}

func (s *Scatterer) Intersect(ray core.Ray) (geometry.Intersection, bool) {
	return s.Surface.Intersect(ray)
}

func (s *Scatterer) BoundingBox() core.AABB { return s.Surface.BoundingBox() }
func (s *Scatterer) IsEmitter() bool        { return false }
