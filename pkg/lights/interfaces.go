package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Light is implemented only by *DirectionalLight and *PointLight
type Light interface {
	Type() LightType

	// Direction returns the unit vector FROM point TO the light
	Direction(point core.Vec3) core.Vec3

	// Color returns the light's emitted color
	Color() core.Vec3

	// DistanceAttenuation returns the falloff factor in [0,1] at point
	DistanceAttenuation(point core.Vec3) float64

	// ShadowAttenuation returns the per-channel transmittance in [0,1]^3
	// between point and the light. Callers offset point off the surface.
	ShadowAttenuation(occluder Occluder, point core.Vec3) core.Vec3

	sealed()
}

// Occluder answers shadow ray queries. The scene implements it.
type Occluder interface {
	Intersect(ray core.Ray) (material.Intersection, bool)
}
