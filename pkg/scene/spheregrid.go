package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a gridSize x gridSize grid of
// rainbow-colored shiny spheres, a stress test for the BVH
func NewSphereGridScene(gridSize int, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		LookAt:      core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.SetAmbient(core.Gray(0.15))
	s.SetEnvironment(NewSkyCubeMap(
		core.NewVec3(1.0, 1.0, 1.0),
		core.NewVec3(0.5, 0.7, 1.0),
		core.NewVec3(0.5, 0.5, 0.5),
	))

	// A bright sun-like light high and to the side, plus a cool fill
	s.AddPointLight(core.NewVec3(20, 25, 20), core.NewVec3(1.0, 0.95, 0.85), 1.0, 0.0, 0.0)
	s.AddDirectionalLight(core.NewVec3(1, -1, -1), core.NewVec3(0.2, 0.25, 0.3))

	ground := material.NewPhong(core.Gray(0.25), core.Gray(0.5), core.Gray(0.1), 8)
	s.Add(NewGroundMesh(core.NewVec3(4.5, 0, 4.5), 100, ground))

	if gridSize < 2 {
		gridSize = 2
	}

	// Scale spacing and radius so the grid always covers about 9x9 units
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue varies across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			sphereMaterial := material.NewPhong(color.Multiply(0.2), color, core.Gray(0.6), 32+16*float64((i+j)%3))
			sphereMaterial.Kr = material.Constant(color.Multiply(0.3))
			s.Add(geometry.NewSphere(position, sphereRadius, sphereMaterial))
		}
	}

	return s
}
