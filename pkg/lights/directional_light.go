package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is infinitely far away and shines along a fixed orientation
type DirectionalLight struct {
	orientation core.Vec3 // Direction the light travels (unit)
	color       core.Vec3
}

// NewDirectionalLight creates a light travelling along orientation
func NewDirectionalLight(orientation, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		orientation: orientation.Normalize(),
		color:       color,
	}
}

func (dl *DirectionalLight) Type() LightType { return LightTypeDirectional }

func (dl *DirectionalLight) Color() core.Vec3 { return dl.color }

// Direction is the same everywhere: back along the orientation
func (dl *DirectionalLight) Direction(point core.Vec3) core.Vec3 {
	return dl.orientation.Negate()
}

// DistanceAttenuation is always 1 for a light at infinity
func (dl *DirectionalLight) DistanceAttenuation(point core.Vec3) float64 {
	return 1.0
}

// ShadowAttenuation accumulates transmittance through every occluder between
// point and infinity
func (dl *DirectionalLight) ShadowAttenuation(occluder Occluder, point core.Vec3) core.Vec3 {
	return transmittance(occluder, point, dl.Direction(point), math.Inf(1))
}

func (dl *DirectionalLight) sealed() {}
