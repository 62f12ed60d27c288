package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// cornellBoxSize is the edge length of the standard 555x555x555 box
const cornellBoxSize = 555.0

// NewCornellScene creates a classic Cornell box with quad mesh walls, a
// ceiling point light and a mirror and a glass sphere
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),        // Standard up direction
		AspectRatio: 1.0,                          // Square aspect ratio for Cornell box
		VFov:        40.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.SetAmbient(core.Gray(0.1))

	// Create materials
	wallPhong := func(kd core.Vec3) *material.Material {
		return material.NewPhong(kd.Multiply(0.5), kd, core.Gray(0.05), 4)
	}
	white := wallPhong(core.NewVec3(0.73, 0.73, 0.73))
	red := wallPhong(core.NewVec3(0.65, 0.05, 0.05))
	green := wallPhong(core.NewVec3(0.12, 0.45, 0.15))

	size := cornellBoxSize

	// Every wall faces into the box. The camera looks down +z, so +x is
	// image left.
	s.Add(
		// Floor - XZ plane at y=0
		NewQuadMesh(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), white),
		// Ceiling - XZ plane at y=size
		NewQuadMesh(core.NewVec3(0, size, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white),
		// Back wall - XY plane at z=size
		NewQuadMesh(core.NewVec3(0, 0, size), core.NewVec3(0, size, 0), core.NewVec3(size, 0, 0), white),
		// Right wall (green) - YZ plane at x=0
		NewQuadMesh(core.NewVec3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), green),
		// Left wall (red) - YZ plane at x=size
		NewQuadMesh(core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(0, size, 0), red),
	)

	// Ceiling lamp: a small emissive panel with the point light just below it
	lampSize := 130.0
	lampOffset := (size - lampSize) / 2.0
	lamp := material.NewMaterial()
	lamp.Ke = material.Constant(core.Gray(1))
	s.Add(NewQuadMesh(
		core.NewVec3(lampOffset, size-1, lampOffset),
		core.NewVec3(lampSize, 0, 0),
		core.NewVec3(0, 0, lampSize),
		lamp,
	))
	s.AddPointLight(core.NewVec3(278, size-20, 278), core.NewVec3(0.9, 0.9, 0.9), 1.0, 0.0005, 0.0)

	// Left sphere (smaller, mirror) and right sphere (larger, glass)
	s.Add(
		geometry.NewSphere(core.NewVec3(370, 82.5, 169), 82.5, material.NewMirror(core.NewVec3(0.8, 0.8, 0.9))),
		geometry.NewSphere(core.NewVec3(185, 90, 351), 90, material.NewGlass(core.Gray(0.9), core.Gray(0.1), 1.5)),
	)

	return s
}
