package material

import (
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestMirrorSampleReflectsAboutNormal(t *testing.T) {
	m := NewMirror(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}))
	wi := core.Vec3{X: 0.3, Y: -0.8, Z: 0.1}
	sample := m.Sample(wi, core.Vec2{}, core.Vec3{})

	assert.True(t, sample.IsSpecular)
	assert.InDelta(t, 1.0, sample.PDF, 1e-9)
	assert.InDelta(t, wi.X, sample.Direction.X, 1e-9)
	assert.InDelta(t, -wi.Y, sample.Direction.Y, 1e-9)
	assert.InDelta(t, wi.Z, sample.Direction.Z, 1e-9)
}

func TestMirrorSampleRejectsWrongHemisphere(t *testing.T) {
	m := NewMirror(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}))
	wi := core.Vec3{X: 0, Y: 0.5, Z: 0}
	assert.Equal(t, NullSample, m.Sample(wi, core.Vec2{}, core.Vec3{}))
}

func TestMirrorIsPurelySpecularWithZeroEvalAndPDF(t *testing.T) {
	m := NewMirror(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}))
	assert.True(t, m.IsPurelySpecular())
	assert.Equal(t, core.Vec3{}, m.Eval(core.Vec3{X: 0, Y: -1, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0}, core.Vec2{}))
	assert.Equal(t, 0.0, m.PDF(core.Vec3{X: 0, Y: -1, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0}, core.Vec2{}))
}
