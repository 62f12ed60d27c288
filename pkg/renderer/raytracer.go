package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// Scene is what the raytracer renders: the integrator's query surface plus
// a camera
type Scene interface {
	integrator.Scene
	Camera() *geometry.Camera
}

// Raytracer turns primary rays into frame buffer pixels
type Raytracer struct {
	scene        Scene
	camera       *geometry.Camera
	integrator   *integrator.Whitted
	supersampler *Supersampler
	config       core.RenderConfig
	buffer       *FrameBuffer
	logger       core.Logger
}

// NewRaytracer creates a raytracer writing into a new width x height buffer
func NewRaytracer(scene Scene, width, height int, config core.RenderConfig) (*Raytracer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	camera := scene.Camera()
	if camera == nil {
		return nil, errors.New("scene has no camera")
	}

	rt := &Raytracer{
		scene:      scene,
		camera:     camera,
		integrator: integrator.NewWhitted(scene, config),
		config:     config,
		buffer:     NewFrameBuffer(width, height),
		logger:     core.NewLogger(),
	}
	rt.supersampler = NewSupersampler(rt, config.AAThreshold)
	return rt, nil
}

// SetLogger replaces the logger used for render summaries
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Trace returns the clamped color through normalized image point (x, y)
func (rt *Raytracer) Trace(x, y float64) core.Vec3 {
	ray := rt.camera.PrimaryRay(x, y)
	color, _ := rt.integrator.TraceRay(ray, core.Gray(1), rt.config.MaxDepth)
	return color.Clamp(0, 1)
}

// TracePixel traces one ray through the lower-left corner of pixel (i, j)
// and writes the result
func (rt *Raytracer) TracePixel(i, j int) core.Vec3 {
	x := float64(i) / float64(rt.buffer.Width())
	y := float64(j) / float64(rt.buffer.Height())

	color := rt.Trace(x, y)
	rt.buffer.SetPixel(i, j, color)
	return color
}

// SupersamplePixel adaptively resolves pixel (i, j) over its whole
// footprint and writes the result
func (rt *Raytracer) SupersamplePixel(i, j int) core.Vec3 {
	color, _ := rt.supersamplePixel(i, j)
	return color
}

func (rt *Raytracer) supersamplePixel(i, j int) (core.Vec3, int) {
	w, h := float64(rt.buffer.Width()), float64(rt.buffer.Height())
	color, samples := rt.supersampler.resolve(
		float64(i)/w, float64(j)/h,
		float64(i+1)/w, float64(j+1)/h,
		rt.config.MaxSplits,
	)
	rt.buffer.SetPixel(i, j, color)
	return color, samples
}

// TraceImage renders every pixel with a single primary ray
func (rt *Raytracer) TraceImage(ctx context.Context) (RenderStats, error) {
	return rt.render(ctx, false)
}

// AAImage renders every pixel with adaptive supersampling
func (rt *Raytracer) AAImage(ctx context.Context) (RenderStats, error) {
	return rt.render(ctx, true)
}

// render distributes the image over the worker pool in blocks
func (rt *Raytracer) render(ctx context.Context, supersample bool) (RenderStats, error) {
	start := time.Now()
	raysBefore := rt.integrator.RayCount()

	blocks := NewBlocks(rt.buffer.Width(), rt.buffer.Height(), rt.config.BlockSize)
	pool := NewWorkerPool(rt, len(blocks), rt.config.Workers)
	pool.Start(ctx)
	for i, block := range blocks {
		pool.SubmitTask(BlockTask{Block: block, Supersample: supersample, TaskID: i})
	}
	pool.Stop()

	stats := newRenderStats()
	var err error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			err = result.Error
			continue
		}
		stats.merge(result.Stats)
	}
	stats.finalize()
	stats.Rays = rt.integrator.RayCount() - raysBefore
	stats.Duration = time.Since(start)

	if err != nil {
		return stats, fmt.Errorf("render cancelled after %d of %d pixels: %w",
			stats.TotalPixels, rt.buffer.Width()*rt.buffer.Height(), err)
	}

	rt.logger.Printf("Rendered %dx%d in %v using %d workers: %d primary rays (%.2f/pixel, min %d, max %d), %d rays total\n",
		rt.buffer.Width(), rt.buffer.Height(), stats.Duration.Round(time.Millisecond), pool.GetNumWorkers(),
		stats.TotalSamples, stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, stats.Rays)
	return stats, nil
}

// renderBlock renders the pixels of one block
func (rt *Raytracer) renderBlock(block Block, supersample bool) RenderStats {
	stats := newRenderStats()
	for j := block.Bounds.Min.Y; j < block.Bounds.Max.Y; j++ {
		for i := block.Bounds.Min.X; i < block.Bounds.Max.X; i++ {
			if supersample {
				_, samples := rt.supersamplePixel(i, j)
				stats.addPixel(samples)
			} else {
				rt.TracePixel(i, j)
				stats.addPixel(1)
			}
		}
	}
	return stats
}

// Pixel reads back the color stored for pixel (i, j)
func (rt *Raytracer) Pixel(i, j int) core.Vec3 {
	return rt.buffer.Pixel(i, j)
}

// Buffer returns the frame buffer being rendered into
func (rt *Raytracer) Buffer() *FrameBuffer {
	return rt.buffer
}

// AspectRatio returns the camera's width / height
func (rt *Raytracer) AspectRatio() float64 {
	return rt.camera.AspectRatio()
}

// Config returns the render configuration
func (rt *Raytracer) Config() core.RenderConfig {
	return rt.config
}
