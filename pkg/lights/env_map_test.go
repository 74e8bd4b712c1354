package lights

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

func uniformEnvPixels(width, height int) []core.Vec3 {
	pixels := make([]core.Vec3, width*height)
	for i := range pixels {
		pixels[i] = core.Vec3{X: 1, Y: 1, Z: 1}
	}
	return pixels
}

func TestEnvMapDirectionUVRoundTrips(t *testing.T) {
	env := NewEnvMap(discardLogger{}, 8, 4, uniformEnvPixels(8, 4), core.NewMat4Identity())

	dir := core.Vec3{X: 0.3, Y: 0.5, Z: -0.8}.Normalize()
	u, v, _ := env.directionToUV(dir)
	roundTripped, _ := env.uvToDirection(u, v)

	assert.InDelta(t, dir.X, roundTripped.X, 1e-6)
	assert.InDelta(t, dir.Y, roundTripped.Y, 1e-6)
	assert.InDelta(t, dir.Z, roundTripped.Z, 1e-6)
}

func TestEnvMapSampleDirectPDFAgreesWithPDFDirect(t *testing.T) {
	env := NewEnvMap(discardLogger{}, 16, 8, uniformEnvPixels(16, 8), core.NewMat4Identity())

	_, sample := env.SampleDirect(core.Vec3{}, 0.37, 0.61)
	assert.Greater(t, sample.PDF, 0.0)
	assert.True(t, math.IsInf(sample.Dist, 1)) // an infinite light has no finite occlusion distance

	pdf := env.PDFDirect(sample.Dir, sample.Dist)
	assert.InDelta(t, sample.PDF, pdf, 1e-6)
}

func TestEnvMapEvalDirectMatchesImageAtSampledDirection(t *testing.T) {
	pixels := uniformEnvPixels(4, 2)
	pixels[0] = core.Vec3{X: 5, Y: 5, Z: 5} // brightest texel biases importance sampling toward it
	env := NewEnvMap(discardLogger{}, 4, 2, pixels, core.NewMat4Identity())

	_, sample := env.SampleDirect(core.Vec3{}, 0.01, 0.01)
	emission := env.EvalDirect(sample.Dir)
	assert.GreaterOrEqual(t, emission.X, 0.0)
}
