package material

import (
	"fortio.org/safecast"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// toByte converts a [0,1] channel to a byte, truncating like the frame buffer
func toByte(c float64) byte {
	return safecast.MustTruncate[byte](255.0 * max(0, min(1, c)))
}

func newFilledTexture(width, height int, colorAt func(x, y int) core.Vec3) *Texture {
	data := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := colorAt(x, y)
			i := (x + y*width) * 3
			data[i], data[i+1], data[i+2] = toByte(c.X), toByte(c.Y), toByte(c.Z)
		}
	}
	return &Texture{width: width, height: height, data: data}
}

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *Texture {
	return newFilledTexture(width, height, func(x, y int) core.Vec3 {
		if (x/checkSize+y/checkSize)%2 == 0 {
			return color1
		}
		return color2
	})
}

// NewGradientTexture creates a vertical gradient from color1 (v=0) to color2 (v=1)
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *Texture {
	return newFilledTexture(width, height, func(x, y int) core.Vec3 {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		return color1.Multiply(1.0 - t).Add(color2.Multiply(t))
	})
}

// NewSolidTexture creates a 1x1 texture of one color
func NewSolidTexture(color core.Vec3) *Texture {
	return newFilledTexture(1, 1, func(int, int) core.Vec3 { return color })
}

// NewProceduralTexture bakes colorAt(u, v) into a width x height texture,
// sampling pixel centers
func NewProceduralTexture(width, height int, colorAt func(u, v float64) core.Vec3) *Texture {
	return newFilledTexture(width, height, func(x, y int) core.Vec3 {
		return colorAt((float64(x)+0.5)/float64(width), (float64(y)+0.5)/float64(height))
	})
}
