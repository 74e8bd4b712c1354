// Package material implements the BSDF library (diffuse, mirror, dielectric
// and its rough/layered variants, conductors) plus the texture types that
// feed their albedo and roughness parameters.
package material

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Texture evaluates a spatially-varying color at parametric (u,v) coordinates.
type Texture interface {
	Eval(u, v float64) core.Vec3
}

// ConstantTexture returns the same color everywhere.
type ConstantTexture struct {
	Color core.Vec3
}

// NewConstantTexture wraps a fixed color as a Texture.
func NewConstantTexture(c core.Vec3) ConstantTexture { return ConstantTexture{Color: c} }

// Eval returns the stored constant color.
func (t ConstantTexture) Eval(u, v float64) core.Vec3 { return t.Color }

// GridTexture draws thin grid lines of Line color over a Base color, spaced
// every 1/Resolution units and Width units wide.
type GridTexture struct {
	Base, Line core.Vec3
	Resolution int
	Width      float64
}

// Eval returns Line if (u,v) falls within a grid band, else Base.
func (t GridTexture) Eval(u, v float64) core.Vec3 {
	m := 1.0 / float64(t.Resolution)
	inBand := math.Mod(u+1+t.Width/2, m) < t.Width || math.Mod(v+1+t.Width/2, m) < t.Width
	if inBand {
		return t.Line
	}
	return t.Base
}

// CheckerTexture is a classic two-color checkerboard.
type CheckerTexture struct {
	OnColor, OffColor core.Vec3
	ResU, ResV        float64
}

// Eval selects OnColor/OffColor by the parity of the scaled (u,v) cell.
func (t CheckerTexture) Eval(u, v float64) core.Vec3 {
	ui := int64(t.ResU * u)
	vi := int64(t.ResV * v)
	if (ui^vi)&1 != 0 {
		return t.OnColor
	}
	return t.OffColor
}

// BitmapTexture samples a loaded image with wraparound + bilinear filtering.
type BitmapTexture struct {
	Width, Height int
	Pixels        []core.Vec3 // linear RGB, row-major, top row first
}

// Eval converts parametric (u,v) to texel space (accounting for the
// half-texel offset and the vertical flip between texture space and image
// row order), then bilinearly interpolates the four surrounding texels,
// wrapping out-of-range coordinates.
func (t BitmapTexture) Eval(u, v float64) core.Vec3 {
	w, h := t.Width, t.Height
	tu := float64(w)*u - 0.5
	tv := float64(h)*(1-v) - 0.5

	x0 := int(math.Floor(tu))
	y0 := int(math.Floor(tv))
	x1, y1 := x0+1, y0+1

	dx := tu - float64(x0)
	dy := tv - float64(y0)

	x0, x1 = modulo(x0, w), modulo(x1, w)
	y0, y1 = modulo(y0, h), modulo(y1, h)

	v00 := t.at(x0, y0)
	v01 := t.at(x1, y0)
	v10 := t.at(x0, y1)
	v11 := t.at(x1, y1)
	return bilerp(v00, v01, v10, v11, dx, dy)
}

func (t BitmapTexture) at(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}

func modulo(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func bilerp(x00, x01, x10, x11 core.Vec3, u, v float64) core.Vec3 {
	top := lerp(x00, x01, u)
	bottom := lerp(x10, x11, u)
	return lerp(top, bottom, v)
}

func lerp(a, b core.Vec3, t float64) core.Vec3 {
	return a.Multiply(1 - t).Add(b.Multiply(t))
}

// GammaDecodeLDR converts an 8-bit sRGB triple to linear RGB.
func GammaDecodeLDR(r, g, b uint8) core.Vec3 {
	f := func(v uint8) float64 { return math.Pow(float64(v)/255.0, 2.2) }
	return core.Vec3{X: f(r), Y: f(g), Z: f(b)}
}

// Luminance returns the Rec.709 perceptual luminance of a linear RGB color.
func Luminance(c core.Vec3) float64 {
	return c.Luminance()
}
