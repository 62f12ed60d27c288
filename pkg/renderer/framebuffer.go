package renderer

import (
	"image"
	"image/color"
	"math"

	"fortio.org/safecast"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// FrameBuffer is a width x height grid of 8-bit RGB pixels stored row-major.
// Row 0 is the bottom of the image, matching camera y=0.
type FrameBuffer struct {
	width  int
	height int
	data   []byte
}

// NewFrameBuffer allocates a black buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		data:   make([]byte, width*height*3),
	}
}

// Width returns the buffer width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// Bytes exposes the raw RGB bytes. Callers must not write to it while a
// render is in progress.
func (fb *FrameBuffer) Bytes() []byte { return fb.data }

// SetPixel writes color c, clamped to [0,1], at (i, j). Channels are
// truncated: 255*c rounded toward zero.
func (fb *FrameBuffer) SetPixel(i, j int, c core.Vec3) {
	if i < 0 || i >= fb.width || j < 0 || j >= fb.height {
		return
	}
	index := (i + j*fb.width) * 3
	fb.data[index] = channelByte(c.X)
	fb.data[index+1] = channelByte(c.Y)
	fb.data[index+2] = channelByte(c.Z)
}

// channelByte maps a color channel to 0..255. NaN writes as 0.
func channelByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return safecast.MustTruncate[uint8](255.0 * max(0, min(1, v)))
}

// Pixel reads back the color at (i, j)
func (fb *FrameBuffer) Pixel(i, j int) core.Vec3 {
	if i < 0 || i >= fb.width || j < 0 || j >= fb.height {
		return core.Vec3{}
	}
	index := (i + j*fb.width) * 3
	return core.NewVec3(
		float64(fb.data[index])/255.0,
		float64(fb.data[index+1])/255.0,
		float64(fb.data[index+2])/255.0,
	)
}

// Image returns a copy of the buffer as an RGBA image with the usual
// top-down row order
func (fb *FrameBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for j := 0; j < fb.height; j++ {
		for i := 0; i < fb.width; i++ {
			index := (i + j*fb.width) * 3
			img.SetRGBA(i, fb.height-1-j, color.RGBA{
				R: fb.data[index],
				G: fb.data[index+1],
				B: fb.data[index+2],
				A: 255,
			})
		}
	}
	return img
}
