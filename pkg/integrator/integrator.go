package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene is the read-only view of a scene the integrator needs.
// Intersect doubles as the shadow-ray occluder for lights.
type Scene interface {
	Intersect(ray core.Ray) (material.Intersection, bool)
	Ambient() core.Vec3
	Lights() []lights.Light

	// Environment returns the cube map for rays that miss, or nil for black
	Environment() *material.CubeMap
}

// Integrator computes the color carried back along a ray
type Integrator interface {
	// TraceRay returns the color seen along ray and the hit distance
	// (+Inf on a miss). depth is the number of bounces still allowed.
	TraceRay(ray core.Ray, atten core.Vec3, depth int) (core.Vec3, float64)
}
