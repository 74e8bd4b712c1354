package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestDiffuseSampleRejectsWrongHemisphere(t *testing.T) {
	d := NewDiffuse(NewConstantTexture(core.Vec3{X: 0.5, Y: 0.5, Z: 0.5}))
	wi := core.Vec3{X: 0, Y: 0.5, Z: 0} // already leaving the surface
	sample := d.Sample(wi, core.Vec2{}, core.Vec3{X: 0.3, Y: 0.6, Z: 0.1})
	assert.Equal(t, NullSample, sample)
}

func TestDiffuseSampleStaysInUpperHemisphere(t *testing.T) {
	d := NewDiffuse(NewConstantTexture(core.Vec3{X: 0.8, Y: 0.2, Z: 0.4}))
	wi := core.Vec3{X: 0, Y: -1, Z: 0}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		sample := d.Sample(wi, core.Vec2{}, core.Vec3{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()})
		assert.GreaterOrEqual(t, sample.Direction.Y, 0.0)
		assert.Greater(t, sample.PDF, 0.0)
	}
}

func TestDiffuseSampleMatchesEvalOverPDF(t *testing.T) {
	albedo := core.Vec3{X: 0.8, Y: 0.2, Z: 0.4}
	d := NewDiffuse(NewConstantTexture(albedo))
	wi := core.Vec3{X: 0, Y: -1, Z: 0}
	sample := d.Sample(wi, core.Vec2{}, core.Vec3{X: 0.3, Y: 0.6, Z: 0.1})

	eval := d.Eval(wi, sample.Direction, core.Vec2{})
	pdf := d.PDF(wi, sample.Direction, core.Vec2{})
	assert.InDelta(t, pdf, sample.PDF, 1e-9)

	expected := eval.Divide(pdf)
	assert.InDelta(t, expected.X, sample.Weight.X, 1e-9)
	assert.InDelta(t, expected.Y, sample.Weight.Y, 1e-9)
	assert.InDelta(t, expected.Z, sample.Weight.Z, 1e-9)
}

func TestDiffuseIsNotPurelySpecular(t *testing.T) {
	d := NewDiffuse(NewConstantTexture(core.Vec3{}))
	assert.False(t, d.IsPurelySpecular())
}
