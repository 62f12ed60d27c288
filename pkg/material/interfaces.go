package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MissT is the T an Intersection carries when a query initialized it but
// found no surface
const MissT = 1000.0

// Surface is the non-owning back-reference an Intersection keeps to the
// object that was hit
type Surface interface {
	Material() *Material
}

// Intersection contains information about a ray-surface hit
type Intersection struct {
	T        float64   // Parameter t along the ray
	N        core.Vec3 // Unit surface normal (interpolated or geometric)
	Object   Surface   // Object that was hit
	Bary     core.Vec3 // Barycentric (alpha, beta, gamma); triangle hits only
	UV       core.Vec2 // Parametric coordinates for texture lookups
	HasUV    bool      // Whether UV was set by the primitive
	Material *Material // Resolved material at the hit
}

// Point returns the hit position along ray
func (i *Intersection) Point(ray core.Ray) core.Vec3 {
	return ray.At(i.T)
}
