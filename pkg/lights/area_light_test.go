package lights

import (
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestAreaLightEvalDirectIsConstant(t *testing.T) {
	quad := geometry.NewSquare(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 1}, 2.0)
	emission := core.Vec3{X: 10, Y: 8, Z: 6}
	light := NewAreaLight(quad, emission)

	assert.Equal(t, emission, light.EvalDirect(core.Vec3{X: 1, Y: 0, Z: 0}))
	assert.Equal(t, emission, light.EvalDirect(core.Vec3{X: -1, Y: 0, Z: 0}))
}

func TestAreaLightSampleDirectDelegatesToSurface(t *testing.T) {
	quad := geometry.NewSquare(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 1}, 2.0)
	emission := core.Vec3{X: 1, Y: 1, Z: 1}
	light := NewAreaLight(quad, emission)

	p := core.Vec3{X: 0, Y: 0, Z: -5}
	e, sample := light.SampleDirect(p, 0.4, 0.7)
	assert.Equal(t, emission, e)
	assert.Greater(t, sample.PDF, 0.0)

	pdf := light.PDFDirect(sample.Dir, sample.Dist)
	assert.InDelta(t, sample.PDF, pdf, 1e-9)
}
