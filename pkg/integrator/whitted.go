package integrator

import (
	"math"
	"sync/atomic"

	"fortio.org/log"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Whitted implements recursive Whitted-style ray tracing: local Phong
// shading plus one mirror and one refraction ray per hit
type Whitted struct {
	scene  Scene
	config core.RenderConfig

	rays atomic.Int64
}

var _ Integrator = (*Whitted)(nil)

// NewWhitted creates an integrator over scene. MaxDepth is not read here;
// callers pass the depth to TraceRay.
func NewWhitted(scene Scene, config core.RenderConfig) *Whitted {
	return &Whitted{scene: scene, config: config}
}

// RayCount returns how many rays TraceRay has followed so far
func (w *Whitted) RayCount() int64 {
	return w.rays.Load()
}

// TraceRay returns the unclamped color along ray and the distance to the
// nearest hit, +Inf on a miss. atten is the product of the coefficients
// that led to this ray and only feeds the importance cutoff.
func (w *Whitted) TraceRay(ray core.Ray, atten core.Vec3, depth int) (core.Vec3, float64) {
	w.rays.Add(1)

	isect, hit := w.scene.Intersect(ray)
	if !hit {
		if env := w.scene.Environment(); env != nil {
			return env.Color(ray), math.Inf(1)
		}
		return core.Vec3{}, math.Inf(1)
	}

	m := isect.Material
	if m == nil {
		return core.Vec3{}, isect.T
	}

	color := shade(w.scene, ray, &isect, w.config.Debug)
	if depth <= 0 {
		return color, isect.T
	}

	point := isect.Point(ray)
	d := ray.Direction
	n := isect.N

	if m.Reflective() {
		kr := m.Kr.Value(&isect)
		direction := d.Reflect(n).Normalize()
		if reflected, ok := w.spawn(atten, point, direction, kr, core.RayReflection); ok {
			c, _ := w.TraceRay(reflected, reflected.Attenuation, depth-1)
			color = color.Add(kr.MultiplyVec(c))
		}
	}

	if m.Transmissive() {
		// Leaving the medium when the ray travels along the normal
		index := m.IndexAt(&isect)
		etaI, etaT := 1.0, index
		if d.Dot(n) > 0 {
			etaI, etaT = index, 1.0
			n = n.Negate()
		}

		direction := d.Refract(n, etaI/etaT)
		if !direction.IsZero() {
			kt := m.Kt.Value(&isect)
			if refracted, ok := w.spawn(atten, point, direction.Normalize(), kt, core.RayRefraction); ok {
				c, _ := w.TraceRay(refracted, refracted.Attenuation, depth-1)
				color = color.Add(kt.MultiplyVec(c))
			}
		}
	}

	return color, isect.T
}

// spawn builds a secondary ray from point, nudged along its direction so it
// cannot re-hit the surface it leaves. It reports false when the carried
// attenuation falls below the importance threshold.
func (w *Whitted) spawn(atten, point, direction, coefficient core.Vec3, kind core.RayKind) (core.Ray, bool) {
	child := atten.MultiplyVec(coefficient)
	if w.config.Threshold > 0 && child.MaxComponent() < w.config.Threshold {
		return core.Ray{}, false
	}
	origin := point.Add(direction.Multiply(core.RayEpsilon))
	return core.NewTypedRay(origin, direction, child, kind), true
}

// Shade evaluates the Phong model at a hit: emission, ambient and the direct
// contribution of every light, each scaled by its shadow and distance
// attenuation. The result is clamped to [0,1].
func Shade(scene Scene, ray core.Ray, isect *material.Intersection) core.Vec3 {
	return shade(scene, ray, isect, false)
}

func shade(scene Scene, ray core.Ray, isect *material.Intersection, debug bool) core.Vec3 {
	m := isect.Material
	point := isect.Point(ray)
	normal := isect.N.Normalize()
	view := ray.Direction.Normalize().Negate()

	kd := m.Kd.Value(isect)
	ks := m.Ks.Value(isect)
	ke := m.Ke.Value(isect)
	ka := m.Ka.Value(isect)
	shininess := m.ShininessAt(isect)

	color := ke.Add(ka.MultiplyVec(scene.Ambient()))

	if debug {
		log.LogVf("shade: point=%v normal=%v view=%v kd=%v ks=%v ke=%v ka=%v", point, normal, view, kd, ks, ke, ka)
	}

	shadowOrigin := point.Add(normal.Multiply(core.RayEpsilon))
	for _, light := range scene.Lights() {
		toLight := light.Direction(point)
		lightColor := light.Color()

		nDotL := max(0, normal.Dot(toLight))
		if nDotL <= 0 {
			continue
		}

		distAtt := light.DistanceAttenuation(point)
		shadowAtt := light.ShadowAttenuation(scene, shadowOrigin)

		diffuse := kd.MultiplyVec(lightColor).Multiply(nDotL)
		halfway := toLight.Add(view).Normalize()
		nDotH := max(0, normal.Dot(halfway))
		specular := ks.MultiplyVec(lightColor).Multiply(math.Pow(nDotH, shininess))

		if debug {
			log.LogVf(" light %s: direction=%v color=%v distAtt=%g shadowAtt=%v nDotL=%g nDotH=%g",
				light.Type(), toLight, lightColor, distAtt, shadowAtt, nDotL, nDotH)
		}

		color = color.Add(diffuse.Add(specular).MultiplyVec(shadowAtt.Multiply(distAtt)))
	}

	return color.Clamp(0, 1)
}
