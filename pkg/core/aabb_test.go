package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABBHitSlabTest(t *testing.T) {
	box := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1})

	hitRay := Ray{Origin: Vec3{X: 0, Y: 0, Z: -5}, Direction: Vec3{X: 0, Y: 0, Z: 1}}
	assert.True(t, box.Hit(hitRay, 0, 1e9))

	missRay := Ray{Origin: Vec3{X: 5, Y: 0, Z: -5}, Direction: Vec3{X: 0, Y: 0, Z: 1}}
	assert.False(t, box.Hit(missRay, 0, 1e9))
}

func TestAABBIntersectFastMatchesHit(t *testing.T) {
	box := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1})
	ray := Ray{Origin: Vec3{X: 0, Y: 0, Z: -5}, Direction: Vec3{X: 0, Y: 0, Z: 1}}
	invDir := Vec3{X: 1 / ray.Direction.X, Y: 1 / ray.Direction.Y, Z: 1 / ray.Direction.Z}

	tNear, tFar := box.IntersectFast(ray, invDir)
	assert.InDelta(t, 4.0, tNear, 1e-9)
	assert.InDelta(t, 6.0, tFar, 1e-9)
	assert.True(t, box.Hit(ray, 0, 1e9))
}

func TestAABBIntersectFastMiss(t *testing.T) {
	box := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1})
	ray := Ray{Origin: Vec3{X: 5, Y: 0, Z: -5}, Direction: Vec3{X: 0, Y: 0, Z: 1}}
	invDir := Vec3{X: 1 / ray.Direction.X, Y: 1e18, Z: 1 / ray.Direction.Z}

	tNear, tFar := box.IntersectFast(ray, invDir)
	assert.Equal(t, -1.0, tNear)
	assert.Equal(t, -1.0, tFar)
}

func TestAABBUnionContainsBoth(t *testing.T) {
	a := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 0, Y: 0, Z: 0})
	b := NewAABB(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 1, Y: 1, Z: 1})
	u := a.Union(b)
	assert.Equal(t, Vec3{X: -1, Y: -1, Z: -1}, u.Min)
	assert.Equal(t, Vec3{X: 1, Y: 1, Z: 1}, u.Max)
}

func TestAABBLongestAxis(t *testing.T) {
	box := NewAABB(Vec3{}, Vec3{X: 5, Y: 1, Z: 2})
	assert.Equal(t, 0, box.LongestAxis())
}

func TestAABBSurfaceArea(t *testing.T) {
	box := NewAABB(Vec3{}, Vec3{X: 1, Y: 1, Z: 1})
	assert.InDelta(t, 6.0, box.SurfaceArea(), 1e-9)
}

func TestAABBExtendPointGrows(t *testing.T) {
	box := EmptyAABB()
	box = box.ExtendPoint(Vec3{X: 1, Y: 2, Z: 3})
	box = box.ExtendPoint(Vec3{X: -1, Y: 0, Z: 5})
	assert.Equal(t, Vec3{X: -1, Y: 0, Z: 3}, box.Min)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 5}, box.Max)
}
