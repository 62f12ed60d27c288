package material

import (
	"fmt"
	"math"

	"fortio.org/safecast"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture is an immutable grid of 8-bit RGB triples, row-major with row 0
// at v=0. A single Texture may be shared by any number of materials.
type Texture struct {
	width  int
	height int
	data   []byte
}

// NewTexture wraps width*height*3 bytes. The slice is owned by the texture
// afterwards and must not be modified.
func NewTexture(width, height int, data []byte) (*Texture, error) {
	if width < 0 || height < 0 {
		return nil, &core.TextureLoadError{Err: fmt.Errorf("negative size %dx%d", width, height)}
	}
	if len(data) != width*height*3 {
		return nil, &core.TextureLoadError{Err: fmt.Errorf("expected %d bytes for %dx%d, got %d", width*height*3, width, height, len(data))}
	}
	return &Texture{width: width, height: height, data: data}, nil
}

// Width returns the texture width in pixels
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels
func (t *Texture) Height() int { return t.height }

func (t *Texture) degenerate() bool {
	return t == nil || t.width <= 0 || t.height <= 0 || len(t.data) == 0
}

// PixelAt returns the color at integer coordinates, clamped to the nearest edge
func (t *Texture) PixelAt(x, y int) core.Vec3 {
	if t.degenerate() {
		return core.Gray(1)
	}
	x = max(0, min(t.width-1, x))
	y = max(0, min(t.height-1, y))

	index := (x + y*t.width) * 3
	return core.NewVec3(
		float64(t.data[index])/255.0,
		float64(t.data[index+1])/255.0,
		float64(t.data[index+2])/255.0,
	)
}

// Sample bilinearly interpolates the texture at parametric coordinates uv
// in [0,1]^2. A texture without pixels samples as white.
func (t *Texture) Sample(uv core.Vec2) core.Vec3 {
	if t.degenerate() {
		return core.Gray(1)
	}

	x := clampCoord(uv.X*float64(t.width-1), float64(t.width-1))
	y := clampCoord(uv.Y*float64(t.height-1), float64(t.height-1))

	fx, fy := math.Floor(x), math.Floor(y)
	x0 := safecast.MustConv[int](fx)
	y0 := safecast.MustConv[int](fy)
	tx, ty := x-fx, y-fy

	c00 := t.PixelAt(x0, y0)
	c10 := t.PixelAt(x0+1, y0)
	c01 := t.PixelAt(x0, y0+1)
	c11 := t.PixelAt(x0+1, y0+1)

	near := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	far := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return near.Multiply(1 - ty).Add(far.Multiply(ty))
}

// clampCoord limits a scaled texture coordinate to [0, hi]. NaN maps to 0.
func clampCoord(v, hi float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return min(v, hi)
}
