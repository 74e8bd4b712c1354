package renderer

import (
	"math"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// SamplingConfig controls how many samples a pixel receives and when
// adaptive sampling is allowed to stop early.
type SamplingConfig struct {
	SamplesPerPixel    int     // samples per pixel ceiling for a full render
	AdaptiveMinSamples float64 // minimum samples as a fraction of SamplesPerPixel (0..1)
	AdaptiveThreshold  float64 // stop once the luminance relative error falls below this
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics. A NaN sample
// (possible from degenerate BSDF pdfs or divide-by-zero geometry terms) is
// dropped rather than accumulated, but still counts against the sample
// budget so a pathological pixel can't stall the render.
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.SampleCount++
	if color.HasNaN() {
		return
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// ShouldStop reports whether a pixel has converged enough to stop sampling,
// given the configured minimum sample fraction and relative-error threshold.
func (ps *PixelStats) ShouldStop(maxSamples int, config SamplingConfig) bool {
	minSamples := max(1, int(float64(maxSamples)*config.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	if mean <= 1e-8 {
		return variance < 1e-6
	}

	relativeError := math.Sqrt(variance) / mean
	return relativeError < config.AdaptiveThreshold
}
