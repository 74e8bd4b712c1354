package integrator

import (
	"math/rand"
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/lights"
	"github.com/df07/go-progressive-raytracer/pkg/material"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
	"github.com/stretchr/testify/assert"
)

func TestEstimateRadianceDirectHitOnLightReturnsEmission(t *testing.T) {
	lightQuad := geometry.NewSquare(core.Vec3{X: 0, Y: 0, Z: 5}, core.Vec3{X: 0, Y: 0, Z: -1}, 2.0)
	emission := core.Vec3{X: 3, Y: 2, Z: 1}
	emitter := scene.NewEmitter(lights.NewAreaLight(lightQuad, emission))
	s := scene.NewScene([]scene.Object{emitter}, nil)

	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 0, Z: 0}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}
	rng := rand.New(rand.NewSource(1))

	radiance := EstimateRadiance(s, ray, rng)
	assert.InDelta(t, emission.X, radiance.X, 1e-9)
	assert.InDelta(t, emission.Y, radiance.Y, 1e-9)
	assert.InDelta(t, emission.Z, radiance.Z, 1e-9)
}

func TestEstimateRadianceMissReturnsZero(t *testing.T) {
	floor := geometry.NewSquare(core.Vec3{X: 0, Y: -1, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0}, 1.0)
	white := material.NewDiffuse(material.NewConstantTexture(core.Vec3{X: 0.8, Y: 0.8, Z: 0.8}))
	s := scene.NewScene([]scene.Object{scene.NewScatterer(floor, white)}, nil)

	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 100, Z: 0}, Direction: core.Vec3{X: 0, Y: 1, Z: 0}}
	rng := rand.New(rand.NewSource(2))

	radiance := EstimateRadiance(s, ray, rng)
	assert.Equal(t, core.Vec3{}, radiance)
}

func TestEstimateRadianceDiffuseSphereLitByAreaLightIsFiniteAndNonNegative(t *testing.T) {
	sphere := geometry.NewSphere(core.Vec3{X: 0, Y: 0, Z: 2}, 1.0)
	white := material.NewDiffuse(material.NewConstantTexture(core.Vec3{X: 0.7, Y: 0.7, Z: 0.7}))
	scatterer := scene.NewScatterer(sphere, white)

	lightQuad := geometry.NewSquare(core.Vec3{X: 0, Y: 3, Z: 2}, core.Vec3{X: 0, Y: -1, Z: 0}, 2.0)
	emitter := scene.NewEmitter(lights.NewAreaLight(lightQuad, core.Vec3{X: 20, Y: 20, Z: 20}))

	s := scene.NewScene([]scene.Object{scatterer, emitter}, nil)
	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 0, Z: 0}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 50; i++ {
		radiance := EstimateRadiance(s, ray, rng)
		assert.False(t, radiance.HasNaN())
		assert.GreaterOrEqual(t, radiance.X, 0.0)
		assert.GreaterOrEqual(t, radiance.Y, 0.0)
		assert.GreaterOrEqual(t, radiance.Z, 0.0)
	}
}

func TestEstimateRadianceTerminatesOnPurelySpecularMaterialWithoutLightsPicked(t *testing.T) {
	sphere := geometry.NewSphere(core.Vec3{X: 0, Y: 0, Z: 2}, 1.0)
	mirror := material.NewMirror(material.NewConstantTexture(core.Vec3{X: 0.9, Y: 0.9, Z: 0.9}))
	s := scene.NewScene([]scene.Object{scene.NewScatterer(sphere, mirror)}, nil)

	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 0, Z: 0}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}
	rng := rand.New(rand.NewSource(5))

	radiance := EstimateRadiance(s, ray, rng)
	assert.False(t, radiance.HasNaN())
}
