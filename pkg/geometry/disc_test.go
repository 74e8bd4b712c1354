package geometry

import (
	"testing"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestDiskIntersectWithinRadius(t *testing.T) {
	d := NewDisk(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: 1}, 1.0)
	ray := core.Ray{Origin: core.Vec3{X: 0, Y: 0, Z: -5}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	hit, ok := d.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, hit.Distance, 1e-9)
}

func TestDiskIntersectOutsideRadiusMisses(t *testing.T) {
	d := NewDisk(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: 1}, 1.0)
	ray := core.Ray{Origin: core.Vec3{X: 2, Y: 0, Z: -5}, Direction: core.Vec3{X: 0, Y: 0, Z: 1}}

	_, ok := d.Intersect(ray)
	assert.False(t, ok)
}

func TestDiskPDFDirectMatchesSampleDirect(t *testing.T) {
	d := NewDisk(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: 1}, 1.0)
	p := core.Vec3{X: 0, Y: 0, Z: -5}

	sample := d.SampleDirect(p, 0.3, 0.6)
	pdf := d.PDFDirect(sample.Dir, sample.Dist)
	assert.InDelta(t, sample.PDF, pdf, 1e-9)
}

func TestDiskBoundingBoxContainsRadius(t *testing.T) {
	d := NewDisk(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: 1}, 1.0)
	box := d.BoundingBox()
	assert.GreaterOrEqual(t, box.Max.X, 1.0-1e-6)
	assert.LessOrEqual(t, box.Min.X, -1.0+1e-6)
}
