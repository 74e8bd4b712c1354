// Package integrator implements unidirectional path tracing with next
// event estimation and multiple importance sampling.
package integrator

import (
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// maxBounces caps path length as a last-resort escape from paths stuck
// bouncing inside a non-absorptive, non-transmissive object.
const maxBounces = 64

// EstimateRadiance traces a single camera path from ray through scene and
// returns an unbiased radiance estimate, combining bsdf and light sampling
// by the power heuristic at every non-specular vertex.
func EstimateRadiance(s *scene.Scene, ray core.Ray, rng *rand.Rand) core.Vec3 {
	nbLights := s.NbLights()
	lightPickProb := 1.0
	if nbLights > 0 {
		lightPickProb = 1.0 / float64(nbLights)
	}

	pathWeight := core.Vec3{X: 1, Y: 1, Z: 1}
	radiance := core.Vec3{}
	specularBounce := true
	lastPdfDir := 1.0

	for nbBounces := 0; ; nbBounces++ {
		hit, ok := s.Intersect(ray)
		if !ok {
			break
		}

		if hit.IsEmitter {
			contrib := hit.Light.EvalDirect(ray.Direction)
			misWeight := 1.0
			if !specularBounce {
				directPDF := hit.Light.PDFDirect(ray.Direction, hit.Distance)
				misWeight = core.PowerHeuristic(lastPdfDir, directPDF*lightPickProb)
			}
			radiance = radiance.Add(pathWeight.MultiplyVec(contrib).Multiply(misWeight))
			break
		}

		mat := hit.Material
		its := hit.Intersection
		normal := its.Normal
		point := ray.At(its.Distance)
		shadingFrame := core.FrameFromNormal(normal)
		localIn := shadingFrame.ToLocal(ray.Direction)

		contProb := min(pathWeight.MaxElem(), 1.0)

		if !mat.IsPurelySpecular() && nbLights > 0 {
			lightIdx := int(float64(nbLights) * rng.Float64())
			if lightIdx >= nbLights {
				lightIdx = nbLights - 1
			}
			if light := s.GetLight(lightIdx); light != nil {
				emission, sample := light.SampleDirect(point, rng.Float64(), rng.Float64())
				if !s.Occluded(point, normal, sample.Dir, sample.Dist) {
					localOut := shadingFrame.ToLocal(sample.Dir)
					bsdfEval := mat.Eval(localIn, localOut, its.UV)
					bsdfPDF := mat.PDF(localIn, localOut, its.UV)
					misWeight := core.PowerHeuristic(sample.PDF*lightPickProb, bsdfPDF*contProb)
					weight := misWeight / (sample.PDF * lightPickProb)
					radiance = radiance.Add(pathWeight.MultiplyVec(emission).MultiplyVec(bsdfEval).Multiply(weight))
				}
			}
		}

		rnd := core.Vec3{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		bsdfSample := mat.Sample(localIn, its.UV, rnd)

		if bsdfSample.Weight.IsZero() {
			break
		}

		lastPdfDir = bsdfSample.PDF

		if nbBounces > maxBounces {
			break
		}
		lastPdfDir *= contProb
		if contProb < 1.0 {
			if rng.Float64() >= contProb {
				break
			}
			pathWeight = pathWeight.Divide(contProb)
		}

		pathWeight = pathWeight.MultiplyVec(bsdfSample.Weight)
		specularBounce = bsdfSample.IsSpecular

		direction := shadingFrame.ToWorld(bsdfSample.Direction).Normalize()
		eps := core.Epsilon
		if normal.Dot(direction) < 0 {
			eps = -core.Epsilon
		}
		ray = core.Ray{Origin: point.Add(normal.Multiply(2 * eps)), Direction: direction}
	}

	return radiance
}
