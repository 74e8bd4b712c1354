package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-progressive-raytracer/pkg/core"
	"github.com/df07/go-progressive-raytracer/pkg/scene"
)

// Raytracer renders a Scene through a Camera into a grid of pixel
// statistics, splitting the image into tiles and distributing them across
// a WorkerPool. Render takes every pixel to its sample budget in a single
// pass; no partial image is available before it returns.
type Raytracer struct {
	scene  *scene.Scene
	camera *Camera
	width  int
	height int
	config SamplingConfig
}

// NewRaytracer builds a Raytracer for the given scene, camera and image
// dimensions.
func NewRaytracer(s *scene.Scene, camera *Camera, width, height int, config SamplingConfig) *Raytracer {
	return &Raytracer{scene: s, camera: camera, width: width, height: height, config: config}
}

const defaultTileSize = 32

// tiles partitions a width x height image into tileSize x tileSize tiles
// (the last row/column may be smaller), each with its own *rand.Rand seeded
// deterministically from a base seed and the tile's row/column so workers
// never share mutable RNG state.
func tiles(width, height, tileSize int, seed int64) []*Tile {
	var result []*Tile
	tileIdx := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			bounds := image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height))
			result = append(result, &Tile{
				Bounds: bounds,
				Random: rand.New(rand.NewSource(seed + int64(tileIdx))),
			})
			tileIdx++
		}
	}
	return result
}

// Render runs a single render pass to config.SamplesPerPixel (with adaptive
// early-out per pixel per SamplingConfig) and returns the final pixel
// buffer, row-major, top row first.
func (rt *Raytracer) Render(numWorkers int, seed int64) ([][]core.Vec3, RenderStats) {
	pixelStats := make([][]PixelStats, rt.height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, rt.width)
	}

	tileRenderer := NewTileRenderer(rt.scene, rt.camera, rt.config)
	tileList := tiles(rt.width, rt.height, defaultTileSize, seed)

	pool := NewWorkerPool(tileRenderer, numWorkers, len(tileList))
	for i, t := range tileList {
		pool.SubmitTask(TileTask{Tile: t, TargetSamples: rt.config.SamplesPerPixel, TaskID: i, PixelStats: pixelStats})
	}
	pool.Stop()

	var total RenderStats
	total.MaxSamples = rt.config.SamplesPerPixel
	total.MinSamples = rt.config.SamplesPerPixel
	for range tileList {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		total.TotalPixels += result.Stats.TotalPixels
		total.TotalSamples += result.Stats.TotalSamples
		total.MinSamples = min(total.MinSamples, result.Stats.MinSamples)
		total.MaxSamplesUsed = max(total.MaxSamplesUsed, result.Stats.MaxSamplesUsed)
	}
	if total.TotalPixels > 0 {
		total.AverageSamples = float64(total.TotalSamples) / float64(total.TotalPixels)
	}

	pixels := make([][]core.Vec3, rt.height)
	for y := 0; y < rt.height; y++ {
		pixels[y] = make([]core.Vec3, rt.width)
		for x := 0; x < rt.width; x++ {
			pixels[y][x] = pixelStats[y][x].GetColor()
		}
	}

	return pixels, total
}
