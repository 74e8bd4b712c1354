package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertOrthonormal(t *testing.T, f Frame) {
	t.Helper()
	tangent := f.ToWorld(Vec3{X: 1, Y: 0, Z: 0})
	normal := f.ToWorld(Vec3{X: 0, Y: 1, Z: 0})
	bitangent := f.ToWorld(Vec3{X: 0, Y: 0, Z: 1})

	assert.InDelta(t, 1.0, tangent.Length(), 1e-9)
	assert.InDelta(t, 1.0, normal.Length(), 1e-9)
	assert.InDelta(t, 1.0, bitangent.Length(), 1e-9)

	assert.InDelta(t, 0.0, tangent.Dot(normal), 1e-9)
	assert.InDelta(t, 0.0, normal.Dot(bitangent), 1e-9)
	assert.InDelta(t, 0.0, tangent.Dot(bitangent), 1e-9)
}

func TestFrameFromNormalIsOrthonormal(t *testing.T) {
	normals := []Vec3{
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1}.Normalize(),
		{X: 0.1, Y: 0.99, Z: 0.05}.Normalize(),
	}
	for _, n := range normals {
		assertOrthonormal(t, FrameFromNormal(n))
	}
}

func TestFrameToLocalToWorldRoundTrips(t *testing.T) {
	f := FrameFromNormal(Vec3{X: 0.3, Y: 0.9, Z: 0.1}.Normalize())
	v := Vec3{X: 0.4, Y: 0.2, Z: -0.6}.Normalize()

	local := f.ToLocal(v)
	world := f.ToWorld(local)

	assert.InDelta(t, v.X, world.X, 1e-9)
	assert.InDelta(t, v.Y, world.Y, 1e-9)
	assert.InDelta(t, v.Z, world.Z, 1e-9)
}

func TestFrameNormalMapsToLocalY(t *testing.T) {
	normal := Vec3{X: 0, Y: 1, Z: 0}
	f := FrameFromNormal(normal)
	local := f.ToLocal(normal)
	assert.InDelta(t, 1.0, local.Y, 1e-9)
	assert.True(t, math.Abs(local.X) < 1e-9 && math.Abs(local.Z) < 1e-9)
}
