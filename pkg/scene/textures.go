package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTextureScene creates a scene demonstrating texture mapping: every
// material parameter that can be mapped is mapped on at least one object.
// image, when non-nil, is shown on the center panel; otherwise a procedural
// pattern stands in for it.
func NewTextureScene(image *material.Texture, cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 2, 10),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.SetAmbient(core.Gray(0.25))

	// Create procedural textures
	checkerboard := material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	)
	redGreenGradient := material.NewGradientTexture(256, 256,
		core.NewVec3(1.0, 0.2, 0.2), // Red (v=0)
		core.NewVec3(0.2, 1.0, 0.2), // Green (v=1)
	)
	stripes := material.NewCheckerboardTexture(256, 4, 32, core.Gray(1), core.Gray(0.05))
	fineBrickPattern := material.NewCheckerboardTexture(512, 512, 16,
		core.NewVec3(0.7, 0.3, 0.1),  // Orange
		core.NewVec3(0.5, 0.2, 0.05), // Dark brown
	)
	if image == nil {
		image = material.NewProceduralTexture(256, 256, func(u, v float64) core.Vec3 {
			return core.NewVec3(u, v, 1-u)
		})
	}

	textured := func(texture *material.Texture) *material.Material {
		m := material.NewPhong(core.Vec3{}, core.Vec3{}, core.Gray(0.3), 32)
		m.Kd = material.Textured(texture)
		m.Ka = material.Textured(texture)
		return m
	}

	// Diffuse-mapped sphere
	checkered := geometry.NewSphere(core.NewVec3(-3.5, 1, 0), 1.0, textured(checkerboard))

	// Sphere whose gloss comes from a stripe map: white stripes are sharp
	// highlights, dark ones broad
	glossy := material.NewPhong(core.Gray(0.05), core.NewVec3(0.6, 0.1, 0.1), core.Gray(0.8), 1)
	glossy.Shininess = material.Textured(stripes)
	striped := geometry.NewSphere(core.NewVec3(-1.2, 1, 0), 1.0, glossy)

	// Image panel facing the camera
	panel := NewQuadMesh(core.NewVec3(0.3, 0.1, -0.5), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), textured(image))

	// Sphere reflecting through a gradient map
	mirror := material.NewPhong(core.Gray(0.02), core.Gray(0.1), core.Gray(0.5), 64)
	mirror.Kr = material.Textured(redGreenGradient)
	reflective := geometry.NewSphere(core.NewVec3(3.7, 1, 0), 1.0, mirror)

	// Ground with a brick pattern
	ground := NewGroundMesh(core.NewVec3(0, 0, 0), 20, textured(fineBrickPattern))

	s.Add(checkered, striped, panel, reflective, ground)

	s.AddPointLight(core.NewVec3(0, 8, 5), core.NewVec3(0.9, 0.9, 0.9), 1.0, 0.01, 0.001)
	s.AddDirectionalLight(core.NewVec3(0.5, -1, -1), core.NewVec3(0.3, 0.3, 0.3))

	return s
}
