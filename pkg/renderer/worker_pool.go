package renderer

import (
	"image"
	"math/rand"
	"runtime"
	"sync"
)

// Tile is a non-overlapping rectangular region of the image, rendered by a
// single worker at a time so concurrent tiles never write the same pixel.
type Tile struct {
	Bounds image.Rectangle
	Random *rand.Rand
}

// TileTask asks a worker to sample every pixel in Tile up to TargetSamples,
// writing into the shared PixelStats buffer.
type TileTask struct {
	Tile          *Tile
	TargetSamples int
	TaskID        int
	PixelStats    [][]PixelStats
}

// TileResult reports a completed tile's statistics back to the scheduler.
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool distributes TileTasks across NumCPU (by default) goroutines,
// all sharing one TileRenderer; each task carries its tile's own *rand.Rand.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool of numWorkers workers (NumCPU() if <= 0),
// all running their tasks through the same tileRenderer.
func NewWorkerPool(tileRenderer *TileRenderer, numWorkers, bufferedTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, bufferedTasks),
		resultQueue: make(chan TileResult, bufferedTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(tileRenderer)
	}

	return wp
}

func (wp *WorkerPool) run(tr *TileRenderer) {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		stats := tr.RenderBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Random, task.TargetSamples)
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}

// SubmitTask enqueues a tile task; blocks if the buffer is full.
func (wp *WorkerPool) SubmitTask(task TileTask) { wp.taskQueue <- task }

// GetResult retrieves one completed tile result. ok is false once the pool
// has been stopped and drained.
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// Stop closes the task queue, waits for all workers to drain it, then
// closes the result queue so GetResult reports ok=false once it is empty.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// NumWorkers returns the pool's worker count.
func (wp *WorkerPool) NumWorkers() int { return wp.numWorkers }
