package geometry

import (
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestSphereIntersectFromOutside(t *testing.T) {
	s := NewSphere(core.Vec3{}, 1.0)
	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 0, Z: -5}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	hit, ok := s.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9)
	assert.InDelta(t, 1.0, hit.Normal.Length(), 1e-9)
	assert.InDelta(t, -1.0, hit.Normal.Z, 1e-9)
}

func TestSphereIntersectMiss(t *testing.T) {
	s := NewSphere(core.Vec3{}, 1.0)
	ray := core.Ray{Origin: core.Vec3{X: 5, Y: 0, Z: -5}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	_, ok := s.Intersect(ray)
	assert.False(t, ok)
}

func TestSphereIntersectFromInsidePicksFarRoot(t *testing.T) {
	s := NewSphere(core.Vec3{}, 1.0)
	ray := core.Ray{Origin: core.Vec3{}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	hit, ok := s.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, hit.Distance, 1e-9)
}

func TestSphereBoundingBox(t *testing.T) {
	s := NewSphere(core.Vec3{X: 1, Y: 2, Z: 3}, 2.0)
	box := s.BoundingBox()
	assert.Equal(t, core.Vec3{X: -1, Y: 0, Z: 1}, box.Min)
	assert.Equal(t, core.Vec3{X: 3, Y: 4, Z: 5}, box.Max)
}
