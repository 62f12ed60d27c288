package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of primary rays traced
	AverageSamples float64       // Average primary rays per pixel
	MinSamples     int           // Fewest primary rays used by any pixel
	MaxSamplesUsed int           // Most primary rays used by any pixel
	Rays           int64         // All rays followed by the integrator, secondary included
	Duration       time.Duration // Wall time of the pass
}

// newRenderStats starts an empty accumulator
func newRenderStats() RenderStats {
	return RenderStats{MinSamples: -1}
}

// addPixel records one resolved pixel
func (s *RenderStats) addPixel(samples int) {
	s.TotalPixels++
	s.TotalSamples += samples
	if s.MinSamples < 0 || samples < s.MinSamples {
		s.MinSamples = samples
	}
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, samples)
}

// merge folds the stats of one block into s
func (s *RenderStats) merge(other RenderStats) {
	if other.TotalPixels == 0 {
		return
	}
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	if s.MinSamples < 0 || other.MinSamples < s.MinSamples {
		s.MinSamples = other.MinSamples
	}
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, other.MaxSamplesUsed)
}

// finalize calculates averages after all pixels are rendered
func (s *RenderStats) finalize() {
	if s.MinSamples < 0 {
		s.MinSamples = 0
	}
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// CalculateAverageLuminance returns the mean luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
