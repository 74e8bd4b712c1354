package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestRoughConductorSamplePDFMatchesReportedPDF(t *testing.T) {
	ior, err := LookupConductorIOR("Cu")
	assert.NoError(t, err)
	c := NewRoughConductor(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), ior, NewConstantTexture(core.Vec3{X: 0.3, Y: 0.3, Z: 0.3}))

	wi := core.Vec3{X: 0, Y: -1, Z: 0}
	rng := rand.New(rand.NewSource(5))
	found := 0
	for i := 0; i < 200 && found < 20; i++ {
		sample := c.Sample(wi, core.Vec2{}, core.Vec3{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()})
		if sample.PDF <= 0 {
			continue
		}
		found++
		pdf := c.PDF(wi, sample.Direction, core.Vec2{})
		assert.InDelta(t, sample.PDF, pdf, 1e-6)
	}
	assert.Greater(t, found, 0)
}

func TestRoughConductorEvalOverPDFMatchesWeight(t *testing.T) {
	ior, err := LookupConductorIOR("Au")
	assert.NoError(t, err)
	c := NewRoughConductor(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), ior, NewConstantTexture(core.Vec3{X: 0.2, Y: 0.2, Z: 0.2}))

	wi := core.Vec3{X: 0, Y: -1, Z: 0}
	sample := c.Sample(wi, core.Vec2{}, core.Vec3{X: 0.4, Y: 0.3, Z: 0.5})
	assert.Greater(t, sample.PDF, 0.0)

	eval := c.Eval(wi, sample.Direction, core.Vec2{})
	expected := eval.Divide(sample.PDF)
	assert.InDelta(t, expected.X, sample.Weight.X, 1e-6)
	assert.InDelta(t, expected.Y, sample.Weight.Y, 1e-6)
	assert.InDelta(t, expected.Z, sample.Weight.Z, 1e-6)
}

func TestRoughConductorIsNotPurelySpecular(t *testing.T) {
	ior, _ := LookupConductorIOR("Ag")
	c := NewRoughConductor(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), ior, NewConstantTexture(core.Vec3{X: 0.1, Y: 0.1, Z: 0.1}))
	assert.False(t, c.IsPurelySpecular())
}
