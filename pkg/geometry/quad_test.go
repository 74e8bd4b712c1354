package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestParallelogramIntersectCenterHit(t *testing.T) {
	q := NewSquare(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 1}, 2.0)
	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 0, Z: -5}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	hit, ok := q.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, hit.Distance, 1e-9)
}

func TestParallelogramIntersectMissesOutsideEdges(t *testing.T) {
	q := NewSquare(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 1}, 2.0)
	ray := core.Ray{Origin: core.Vec3{X: 5, Y: 5, Z: -5}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	_, ok := q.Intersect(ray)
	assert.False(t, ok)
}

func TestParallelogramSampleDirectStaysOnQuad(t *testing.T) {
	q := NewSquare(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 1}, 2.0)
	p := core.Vec3{X: 0, Y: 0, Z: -5}

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		sample := q.SampleDirect(p, rng.Float64(), rng.Float64())
		assert.Greater(t, sample.PDF, 0.0)
		hitPoint := p.Add(sample.Dir.Multiply(sample.Dist))
		assert.InDelta(t, 0.0, hitPoint.Z, 1e-6)
		assert.LessOrEqual(t, math.Abs(hitPoint.X), 1.0+1e-6)
		assert.LessOrEqual(t, math.Abs(hitPoint.Y), 1.0+1e-6)
	}
}

func TestParallelogramPDFDirectMatchesSampleDirect(t *testing.T) {
	q := NewSquare(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 1}, 2.0)
	p := core.Vec3{X: 0.3, Y: -0.2, Z: -5}

	sample := q.SampleDirect(p, 0.4, 0.7)
	pdf := q.PDFDirect(sample.Dir, sample.Dist)
	assert.InDelta(t, sample.PDF, pdf, 1e-9)
}

func TestParallelogramBoundingBoxContainsCorners(t *testing.T) {
	q := NewSquare(core.Vec3{X: 0, Y: 0, Z: 0}, core.Vec3{X: 0, Y: 0, Z: 1}, 2.0)
	box := q.BoundingBox()
	assert.LessOrEqual(t, box.Min.X, -1.0)
	assert.GreaterOrEqual(t, box.Max.X, 1.0)
}
