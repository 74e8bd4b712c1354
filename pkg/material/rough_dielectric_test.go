package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestRoughDielectricSamplePDFMatchesReportedPDF(t *testing.T) {
	d := NewRoughDielectric(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), 1.5, NewConstantTexture(core.Vec3{X: 0.2, Y: 0.2, Z: 0.2}))

	wi := core.Vec3{X: 0, Y: -1, Z: 0}
	rng := rand.New(rand.NewSource(13))
	found := 0
	for i := 0; i < 500 && found < 20; i++ {
		sample := d.Sample(wi, core.Vec2{}, core.Vec3{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()})
		if sample.PDF <= 0 {
			continue
		}
		found++
		pdf := d.PDF(wi, sample.Direction, core.Vec2{})
		assert.InDelta(t, sample.PDF, pdf, 1e-5)
	}
	assert.Greater(t, found, 0)
}

func TestRoughDielectricIsNotPurelySpecular(t *testing.T) {
	d := NewRoughDielectric(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), 1.5, NewConstantTexture(core.Vec3{X: 0.2, Y: 0.2, Z: 0.2}))
	assert.False(t, d.IsPurelySpecular())
}

func TestRoughDielectricSampleRejectsNoise(t *testing.T) {
	d := NewRoughDielectric(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), 1.5, NewConstantTexture(core.Vec3{X: 0.5, Y: 0.5, Z: 0.5}))
	sample := d.Sample(core.Vec3{X: 0, Y: -1, Z: 0}, core.Vec2{}, core.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	if sample.PDF > 0 {
		assert.False(t, sample.Weight.HasNaN())
	}
}
