package scene

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/lights"
	"github.com/df07/go-progressive-raytracer/pkg/material"
	"github.com/df07/go-progressive-raytracer/pkg/renderer"
)

// cornell wall/light colors, matched to the reference renderer's built-in
// Cornell box rather than the textbook Cornell/Greenberg 1984 measurements.
var (
	cornellWhite    = core.Vec3{X: 0.740063, Y: 0.742313, Z: 0.733934}
	cornellGreen    = core.Vec3{X: 0.162928, Y: 0.408903, Z: 0.0833759}
	cornellRed      = core.Vec3{X: 0.366046, Y: 0.0371827, Z: 0.0416385}
	cornellEmission = core.Vec3{X: 1.0, Y: 0.772549, Z: 0.560784}.Multiply(40.0)
)

// NewCornellScene builds the classic two-sphere Cornell box: a white box
// lit by a square ceiling light, a red left wall, a green right wall, two
// diffuse spheres, and a grid-textured floor. It returns a ready-to-render
// Scene and the Camera looking into it.
func NewCornellScene() (*Scene, *renderer.Camera) {
	white := material.NewDiffuse(material.NewConstantTexture(cornellWhite))
	green := material.NewDiffuse(material.NewConstantTexture(cornellGreen))
	red := material.NewDiffuse(material.NewConstantTexture(cornellRed))
	floorTex := material.GridTexture{Base: cornellWhite, Line: core.Vec3{X: 0.25, Y: 0.25, Z: 0.25}, Resolution: 4, Width: 0.02}
	floor := material.NewDiffuse(floorTex)

	leftWall := geometry.NewSquare(core.Vec3{X: -1, Y: 0, Z: 0}, core.Vec3{X: 1, Y: 0, Z: 0}, 2.0)
	rightWall := geometry.NewSquare(core.Vec3{X: 1, Y: 0, Z: 0}, core.Vec3{X: -1, Y: 0, Z: 0}, 2.0)
	backWall := geometry.NewSquare(core.Vec3{X: 0, Y: 0, Z: -1}, core.Vec3{X: 0, Y: 0, Z: 1}, 2.0)
	ceiling := geometry.NewSquare(core.Vec3{X: 0, Y: 1, Z: 0}, core.Vec3{X: 0, Y: -1, Z: 0}, 2.0)
	floorQuad := geometry.NewSquare(core.Vec3{X: 0, Y: -1, Z: 0}, core.Vec3{X: 0, Y: 1, Z: 0}, 2.0)

	sphereA := geometry.NewSphere(core.Vec3{X: -0.5, Y: -0.65, Z: -0.3}, 0.35)
	sphereB := geometry.NewSphere(core.Vec3{X: 0.5, Y: -0.65, Z: 0.3}, 0.35)
	sphereAlbedo := material.NewDiffuse(material.NewConstantTexture(core.Vec3{X: 0.99, Y: 0.99, Z: 0.99}))

	lightQuad := geometry.NewSquare(core.Vec3{X: 0, Y: 1 - core.Epsilon, Z: 0}, core.Vec3{X: 0, Y: -1, Z: 0}, 0.5)

	objects := []Object{
		NewScatterer(leftWall, red),
		NewScatterer(rightWall, green),
		NewScatterer(backWall, white),
		NewScatterer(ceiling, white),
		NewScatterer(floorQuad, floor),
		NewScatterer(sphereA, sphereAlbedo),
		NewScatterer(sphereB, sphereAlbedo),
		NewEmitter(lights.NewAreaLight(lightQuad, cornellEmission)),
	}

	s := NewScene(objects, nil)

	transform := core.NewLookAt(core.Vec3{X: 0, Y: 0, Z: 4.5}, core.Vec3{}, core.Vec3{X: 0, Y: 1, Z: 0})
	cam := renderer.NewCamera(transform, 512, 512, 30.0, 0, 0)
	cam.Tonemap = renderer.Gamma

	return s, cam
}
