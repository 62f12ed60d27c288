package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestFrameBuffer_SetPixel(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected [3]byte
	}{
		{"white", core.Gray(1), [3]byte{255, 255, 255}},
		{"black", core.Vec3{}, [3]byte{0, 0, 0}},
		{"truncates", core.NewVec3(0.5, 0.999, 0.001), [3]byte{127, 254, 0}},
		{"clamps", core.NewVec3(2, -1, 1.5), [3]byte{255, 0, 255}},
		{"nan is black", core.NewVec3(math.NaN(), 0.5, math.NaN()), [3]byte{0, 127, 0}},
		{"infinities clamp", core.NewVec3(math.Inf(1), math.Inf(-1), 1), [3]byte{255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(3, 2)
			fb.SetPixel(2, 1, tt.color)

			index := (2 + 1*3) * 3
			got := [3]byte{fb.Bytes()[index], fb.Bytes()[index+1], fb.Bytes()[index+2]}
			if got != tt.expected {
				t.Errorf("bytes = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFrameBuffer_OutOfRange(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.SetPixel(5, 0, core.Gray(1))
	fb.SetPixel(0, -1, core.Gray(1))

	for _, b := range fb.Bytes() {
		if b != 0 {
			t.Fatal("out of range writes must be ignored")
		}
	}
	if got := fb.Pixel(-1, 0); got != (core.Vec3{}) {
		t.Errorf("out of range read = %v, want black", got)
	}
}

func TestFrameBuffer_ImageIsFlipped(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.SetPixel(0, 0, core.NewVec3(1, 0, 0)) // bottom left

	img := fb.Image()
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-left pixel in image = %v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("top-left pixel in image = %v, want opaque black", got)
	}
}
