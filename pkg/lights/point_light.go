package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight radiates from a position with quadratic distance falloff
type PointLight struct {
	position core.Vec3
	color    core.Vec3

	constantTerm  float64
	linearTerm    float64
	quadraticTerm float64
}

// NewPointLight creates a point light whose intensity at distance d is
// scaled by min(1, 1/(c0 + c1*d + c2*d^2))
func NewPointLight(position, color core.Vec3, c0, c1, c2 float64) *PointLight {
	return &PointLight{
		position:      position,
		color:         color,
		constantTerm:  c0,
		linearTerm:    c1,
		quadraticTerm: c2,
	}
}

func (pl *PointLight) Type() LightType { return LightTypePoint }

func (pl *PointLight) Color() core.Vec3 { return pl.color }

// Position returns the light's location
func (pl *PointLight) Position() core.Vec3 { return pl.position }

func (pl *PointLight) Direction(point core.Vec3) core.Vec3 {
	return pl.position.Subtract(point).Normalize()
}

// DistanceAttenuation returns min(1, 1/(c0 + c1*d + c2*d^2)). A non-positive
// denominator means the falloff is undefined and the light is unattenuated.
func (pl *PointLight) DistanceAttenuation(point core.Vec3) float64 {
	d := pl.position.Subtract(point).Length()
	denom := pl.constantTerm + pl.linearTerm*d + pl.quadraticTerm*d*d
	if denom <= 0 {
		return 1.0
	}
	return min(1.0, 1.0/denom)
}

// ShadowAttenuation accumulates transmittance through occluders strictly
// between point and the light
func (pl *PointLight) ShadowAttenuation(occluder Occluder, point core.Vec3) core.Vec3 {
	toLight := pl.position.Subtract(point)
	return transmittance(occluder, point, toLight.Normalize(), toLight.Length())
}

func (pl *PointLight) sealed() {}
