package lights

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
	"github.com/df07/go-progressive-raytracer/pkg/material"
)

// EnvMap is an infinite environment light backed by an equirectangular
// image. Texels are importance-sampled by luminance weighted by sin(theta)
// to counteract the area distortion of the equirectangular projection, and
// the chosen texel is converted to a direction (and back) through an
// optional rotation transform.
type EnvMap struct {
	image        material.BitmapTexture
	dist         *core.Distribution2D
	transform    core.Mat4
	invTransform core.Mat4
}

// NewEnvMap builds an EnvMap from a loaded equirectangular image and a
// world-space rotation transform. Directions go through the transform's
// linear part only, so translation has no effect; a scale is applied to
// directions as-is (they are not renormalized).
func NewEnvMap(logger core.Logger, width, height int, pixels []core.Vec3, transform core.Mat4) *EnvMap {
	img := material.BitmapTexture{Width: width, Height: height, Pixels: pixels}

	weights := make([]float64, width*height)
	for y := 0; y < height; y++ {
		sinTheta := math.Sin((float64(y) + 0.5) * math.Pi / float64(height))
		for x := 0; x < width; x++ {
			weights[y*width+x] = material.Luminance(pixels[y*width+x]) * sinTheta
		}
	}

	return &EnvMap{
		image:        img,
		dist:         core.NewDistribution2D(logger, weights, width, height),
		transform:    transform,
		invTransform: transform.Inverse(),
	}
}

// directionToUV maps a world-space direction to equirectangular (u,v) and
// returns the sin(theta) Jacobian term needed to convert a texel pdf to a
// solid-angle pdf.
func (e *EnvMap) directionToUV(d core.Vec3) (u, v, sinTheta float64) {
	l := e.invTransform.TransformVector(d)
	u = math.Atan2(l.Z, l.X)*core.InvTwoPi + 0.5
	v = math.Acos(-l.Y) * core.InvPi
	sinTheta = math.Sqrt(max(core.Epsilon, 1-l.Y*l.Y))
	return
}

func (e *EnvMap) uvToDirection(u, v float64) (core.Vec3, float64) {
	phi := (u - 0.5) * 2 * math.Pi
	theta := v * math.Pi
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	local := core.Vec3{X: sinTheta * cosPhi, Y: -cosTheta, Z: sinTheta * sinPhi}
	return e.transform.TransformVector(local), sinTheta
}

func (e *EnvMap) EvalDirect(dir core.Vec3) core.Vec3 {
	u, v, _ := e.directionToUV(dir)
	return e.image.Eval(u, v)
}

func (e *EnvMap) SampleDirect(p core.Vec3, u, v float64) (core.Vec3, geometry.DirectSample) {
	x, y, texPDF := e.dist.Sample(u, v)

	su := (float64(x) + 0.5) / float64(e.image.Width)
	sv := 1 - (float64(y)+0.5)/float64(e.image.Height)
	dir, sinTheta := e.uvToDirection(su, sv)

	imgSize := float64(e.image.Width * e.image.Height)
	dirPDF := texPDF * imgSize / (2 * math.Pi * math.Pi * sinTheta)
	emission := e.image.Eval(su, sv)

	return emission, geometry.DirectSample{Dir: dir, Dist: math.Inf(1), PDF: dirPDF}
}

func (e *EnvMap) PDFDirect(dir core.Vec3, dist float64) float64 {
	u, v, sinTheta := e.directionToUV(dir)
	x := int(u * float64(e.image.Width))
	y := int((1 - v) * float64(e.image.Height))

	imgSize := float64(e.image.Width * e.image.Height)
	texPDF := e.dist.PDF(x, y)
	return texPDF * imgSize / (2 * math.Pi * math.Pi * sinTheta)
}
