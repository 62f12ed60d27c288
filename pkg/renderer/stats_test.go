package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.299, green 0.587, blue 0.114, black 0: average 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestRenderStats_Merge(t *testing.T) {
	a := newRenderStats()
	a.addPixel(4)
	a.addPixel(16)

	b := newRenderStats()
	b.addPixel(4)

	total := newRenderStats()
	total.merge(a)
	total.merge(b)
	total.merge(newRenderStats())
	total.finalize()

	if total.TotalPixels != 3 || total.TotalSamples != 24 {
		t.Errorf("got %d pixels / %d samples, want 3 / 24", total.TotalPixels, total.TotalSamples)
	}
	if total.MinSamples != 4 || total.MaxSamplesUsed != 16 {
		t.Errorf("min/max = %d/%d, want 4/16", total.MinSamples, total.MaxSamplesUsed)
	}
	if total.AverageSamples != 8 {
		t.Errorf("average = %f, want 8", total.AverageSamples)
	}
}
