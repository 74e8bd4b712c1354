package material

import (
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestDielectricSampleChoosesReflectOrRefractByRnd(t *testing.T) {
	d := NewDielectric(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), 1.5)
	wi := core.Vec3{X: 0, Y: -1, Z: 0} // normal incidence, reflectance is small

	reflected := d.Sample(wi, core.Vec2{}, core.Vec3{X: 0, Y: 0, Z: 0.0001})
	assert.True(t, reflected.IsSpecular)
	assert.InDelta(t, -wi.Y, reflected.Direction.Y, 1e-9)

	refracted := d.Sample(wi, core.Vec2{}, core.Vec3{X: 0, Y: 0, Z: 0.9999})
	assert.True(t, refracted.IsSpecular)
	assert.Less(t, refracted.Direction.Y, 0.0) // continues through the interface
}

func TestDielectricTotalInternalReflectionAlwaysReflects(t *testing.T) {
	d := NewDielectric(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), 1.5)
	// Exiting a denser medium at a grazing angle triggers TIR.
	wi := core.Vec3{X: 0.99, Y: 0.1, Z: 0}.Normalize()

	sample := d.Sample(wi, core.Vec2{}, core.Vec3{X: 0, Y: 0, Z: 0.9999})
	assert.InDelta(t, -wi.Y, sample.Direction.Y, 1e-9)
}

func TestDielectricIsPurelySpecularWithZeroEvalAndPDF(t *testing.T) {
	d := NewDielectric(NewConstantTexture(core.Vec3{X: 1, Y: 1, Z: 1}), 1.5)
	assert.True(t, d.IsPurelySpecular())
	assert.Equal(t, core.Vec3{}, d.Eval(core.Vec3{X: 0, Y: -1, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0}, core.Vec2{}))
	assert.Equal(t, 0.0, d.PDF(core.Vec3{X: 0, Y: -1, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0}, core.Vec2{}))
}
