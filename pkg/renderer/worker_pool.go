package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"
)

// Block is a square region of the frame buffer rendered by a single worker
type Block struct {
	Bounds image.Rectangle
}

// NewBlocks splits a width x height image into size x size blocks, clipping
// the last row and column
func NewBlocks(width, height, size int) []Block {
	if size <= 0 {
		size = max(width, height, 1)
	}
	var blocks []Block
	for y := 0; y < height; y += size {
		for x := 0; x < width; x += size {
			blocks = append(blocks, Block{
				Bounds: image.Rect(x, y, min(x+size, width), min(y+size, height)),
			})
		}
	}
	return blocks
}

// BlockTask represents a block rendering task for the worker pool
type BlockTask struct {
	Block       Block
	Supersample bool // Resolve pixels adaptively instead of one ray each
	TaskID      int
}

// BlockResult contains the result from rendering a block
type BlockResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel block rendering
type WorkerPool struct {
	taskQueue   chan BlockTask
	resultQueue chan BlockResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual block rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan BlockTask
	resultQueue chan BlockResult
}

// NewWorkerPool creates a pool that can hold maxTasks tasks and results
// without blocking. All workers share raytracer; blocks never overlap, so
// their frame buffer writes are disjoint.
func NewWorkerPool(raytracer *Raytracer, maxTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BlockTask, maxTasks),
		resultQueue: make(chan BlockResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. Once ctx is done, remaining tasks are answered
// with ctx.Err() instead of being rendered.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop closes the task queue, waits for the workers to drain it and closes
// the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a block task to the worker pool
func (wp *WorkerPool) SubmitTask(task BlockTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed block result
func (wp *WorkerPool) GetResult() (BlockResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- BlockResult{TaskID: task.TaskID, Error: err}
			continue
		}

		stats := w.raytracer.renderBlock(task.Block, task.Supersample)
		w.resultQueue <- BlockResult{
			TaskID: task.TaskID,
			Stats:  stats,
		}
	}
}
