package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/integrator"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// TileRenderer samples pixels within a tile's bounds, tracing each sample
// with integrator.EstimateRadiance and accumulating it into the shared
// per-pixel statistics buffer.
type TileRenderer struct {
	scene  *scene.Scene
	camera *Camera
	config SamplingConfig
}

// NewTileRenderer builds a TileRenderer over the given scene and camera.
func NewTileRenderer(s *scene.Scene, camera *Camera, config SamplingConfig) *TileRenderer {
	return &TileRenderer{scene: s, camera: camera, config: config}
}

// RenderBounds adaptively samples every pixel in bounds up to targetSamples,
// writing accumulated statistics into pixelStats (shared across tiles; each
// tile owns a disjoint sub-rectangle so concurrent writes never race).
func (tr *TileRenderer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, rng *rand.Rand, targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			used := tr.samplePixel(x, y, ps, rng, targetSamples)
			stats.TotalSamples += used
			stats.MinSamples = min(stats.MinSamples, used)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, used)
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}

func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, rng *rand.Rand, maxSamples int) int {
	before := ps.SampleCount
	for ps.SampleCount < maxSamples && !ps.ShouldStop(maxSamples, tr.config) {
		ray := tr.camera.MakeRay(x, y, rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64())
		color := integrator.EstimateRadiance(tr.scene, ray, rng)
		ps.AddSample(color)
	}
	return ps.SampleCount - before
}
