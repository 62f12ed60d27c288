package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Primitive is anything the scene can intersect
type Primitive interface {
	// Intersect returns the nearest hit strictly ahead of the ray origin
	Intersect(ray core.Ray) (material.Intersection, bool)

	// Material returns the primitive's base material
	Material() *material.Material

	// Bounds returns a world-space box enclosing the primitive
	Bounds() core.AABB
}
