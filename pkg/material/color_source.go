package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Parameter is a material coefficient: either a constant color or a lookup
// into a shared texture at the intersection's UV coordinates.
type Parameter struct {
	value   core.Vec3
	texture *Texture
}

// Constant creates a parameter with a fixed color
func Constant(value core.Vec3) Parameter {
	return Parameter{value: value}
}

// Textured creates a parameter that samples texture
func Textured(texture *Texture) Parameter {
	return Parameter{texture: texture}
}

// Mapped reports whether the parameter reads from a texture
func (p Parameter) Mapped() bool {
	return p.texture != nil
}

// IsZero reports whether the parameter is a constant black
func (p Parameter) IsZero() bool {
	return p.texture == nil && p.value.IsZero()
}

// Value evaluates the parameter at an intersection
func (p Parameter) Value(isect *Intersection) core.Vec3 {
	if p.texture != nil {
		return p.texture.Sample(isect.UV)
	}
	return p.value
}

// Intensity evaluates the parameter as a scalar using luminance weights
func (p Parameter) Intensity(isect *Intersection) float64 {
	return p.Value(isect).Luminance()
}
