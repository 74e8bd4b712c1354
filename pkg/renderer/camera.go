package renderer

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Tonemap maps an unbounded linear radiance value to a displayable color.
type Tonemap func(core.Vec3) core.Vec3

// Gamma is a simple clamp-then-gamma-2.2 tonemap.
func Gamma(c core.Vec3) core.Vec3 {
	f := func(v float64) float64 { return math.Pow(min(v, 1.0), 1.0/2.2) }
	return core.Vec3{X: f(c.X), Y: f(c.Y), Z: f(c.Z)}
}

// Filmic is the widely used Hejl/Burgess-Dawson filmic tonemap curve,
// which rolls off highlights instead of clipping them.
func Filmic(c core.Vec3) core.Vec3 {
	f := func(v float64) float64 {
		x := max(v-0.004, 0)
		return (x * (6.2*x + 0.5)) / (x*(6.2*x+1.7) + 0.06)
	}
	return core.Vec3{X: f(c.X), Y: f(c.Y), Z: f(c.Z)}
}

// Camera is a thin-lens perspective camera: rays are generated from a
// jittered point on the image plane through a (possibly non-zero) circular
// aperture, focused at FocusDist, using a tent reconstruction filter over
// each pixel for antialiasing.
type Camera struct {
	transform core.Mat4

	width, height int
	ratio         float64
	pixelSize     [2]float64

	planeDist float64

	apertureRadius float64
	focusDist      float64

	Tonemap Tonemap
}

// NewCamera builds a Camera from a world transform (camera-to-world), pixel
// resolution, horizontal field of view in degrees (the image plane spans
// [-1,1] in X), a lens aperture radius (0 disables depth of field) and a
// focus distance (defaults to the image plane distance when zero).
func NewCamera(transform core.Mat4, width, height int, fovDegrees, apertureRadius, focusDist float64) *Camera {
	fovRad := fovDegrees * math.Pi / 180.0
	planeDist := 1.0 / math.Tan(fovRad*0.5)
	if focusDist == 0 {
		focusDist = planeDist
	}

	return &Camera{
		transform:      transform,
		width:          width,
		height:         height,
		ratio:          float64(height) / float64(width),
		pixelSize:      [2]float64{1.0 / float64(width), 1.0 / float64(height)},
		planeDist:      planeDist,
		apertureRadius: apertureRadius,
		focusDist:      focusDist,
		Tonemap:        Gamma,
	}
}

// MakeRay generates a camera ray for the given pixel, with imgU/imgV in
// [0,1) jittering the sample within the pixel (passed through a tent filter)
// and lensU/lensV in [0,1) sampling the aperture disk.
func (c *Camera) MakeRay(px, py int, imgU, imgV, lensU, lensV float64) core.Ray {
	pjx, pjy := core.Tent(imgU, imgV)

	imgPlanePos := core.Vec3{
		X: -1.0 + (float64(px)+pjx+0.5)*2.0*c.pixelSize[0],
		Y: c.ratio - (float64(py)+pjy+0.5)*2.0*c.pixelSize[0],
		Z: c.planeDist,
	}
	focusPlanePos := imgPlanePos.Multiply(c.focusDist / imgPlanePos.Z)

	ljx, ljy := core.UniformDisk(lensU, lensV)
	lensPos := core.Vec3{X: ljx * c.apertureRadius, Y: ljy * c.apertureRadius, Z: 0}

	localDir := focusPlanePos.Subtract(lensPos).Normalize()

	return core.Ray{
		Origin:    c.transform.TransformPoint(lensPos),
		Direction: c.transform.TransformVector(localDir).Normalize(),
	}
}

// Resolution returns the camera's pixel width and height.
func (c *Camera) Resolution() (int, int) { return c.width, c.height }

// WithResolution returns a copy of the camera retargeted at a different
// pixel resolution, keeping its transform, field of view, and lens settings.
func (c *Camera) WithResolution(width, height int) *Camera {
	cp := *c
	cp.width = width
	cp.height = height
	cp.ratio = float64(height) / float64(width)
	cp.pixelSize = [2]float64{1.0 / float64(width), 1.0 / float64(height)}
	return &cp
}
