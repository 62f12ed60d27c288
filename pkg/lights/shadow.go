package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const (
	// MaxShadowSteps bounds how many surfaces one shadow ray may pass through
	MaxShadowSteps = 64

	// minTransmittance is the length below which a shadow is fully opaque
	minTransmittance = 1e-6
)

// transmittance walks a shadow ray from origin along direction, multiplying
// in the kt of every transmissive surface it passes. Any opaque hit blocks
// the light. Hits at or beyond maxDistance do not count.
func transmittance(occluder Occluder, origin, direction core.Vec3, maxDistance float64) core.Vec3 {
	atten := core.Gray(1)
	traveled := 0.0

	for step := 0; step < MaxShadowSteps; step++ {
		ray := core.NewTypedRay(origin, direction, atten, core.RayShadow)
		isect, hit := occluder.Intersect(ray)
		if !hit || traveled+isect.T >= maxDistance {
			return atten
		}

		// Hits within epsilon of the origin are the surface we just left
		if isect.T > core.RayEpsilon {
			m := isect.Material
			if m == nil || !m.Transmissive() {
				return core.Vec3{}
			}
			atten = atten.MultiplyVec(m.Kt.Value(&isect))
			if atten.Length() < minTransmittance {
				return core.Vec3{}
			}
		}

		// Advance strictly past the hit
		origin = ray.At(isect.T + core.RayEpsilon)
		traveled += isect.T + core.RayEpsilon
	}

	return core.Vec3{}
}
