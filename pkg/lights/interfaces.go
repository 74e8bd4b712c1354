// Package lights implements emitters: finite-area lights attached to a
// surface, and an infinite environment-map light sampled by luminance.
package lights

import (
	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/geometry"
)

// Light is an emitter that the integrator can importance-sample for next
// event estimation, or hit directly by tracing a ray into it.
type Light interface {
	// EvalDirect returns the emitted radiance seen along dir after a ray
	// escapes the scene (used by infinite lights) or hits the light's
	// surface directly (used by area lights, ignoring dir).
	EvalDirect(dir core.Vec3) core.Vec3

	// SampleDirect draws a direction toward the light from point p, using
	// the two uniforms (u,v), and returns its emission and direct sample.
	SampleDirect(p core.Vec3, u, v float64) (core.Vec3, geometry.DirectSample)

	// PDFDirect returns the solid-angle pdf SampleDirect would assign to
	// the given direction/distance pair.
	PDFDirect(dir core.Vec3, dist float64) float64
}
