package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with Phong, mirror and glass
// spheres over a checkered ground, lit by a point light and a sun
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	// Default camera configuration
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),    // Standard up direction
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.SetAmbient(core.Gray(0.2))
	s.SetEnvironment(NewSkyCubeMap(
		core.NewVec3(1.0, 1.0, 1.0), // horizon
		core.NewVec3(0.5, 0.7, 1.0), // zenith
		core.NewVec3(0.3, 0.3, 0.3), // below the ground
	))

	// Create materials
	red := material.NewPhong(core.NewVec3(0.13, 0.05, 0.04), core.NewVec3(0.65, 0.25, 0.2), core.Gray(0.5), 32)
	blue := material.NewPhong(core.NewVec3(0.02, 0.04, 0.1), core.NewVec3(0.1, 0.2, 0.5), core.Gray(0.3), 16)
	silver := material.NewMirror(core.NewVec3(0.8, 0.8, 0.8))
	gold := material.NewPhong(core.NewVec3(0.08, 0.06, 0.02), core.NewVec3(0.4, 0.3, 0.1), core.NewVec3(0.8, 0.6, 0.2), 64)
	gold.Kr = material.Constant(core.NewVec3(0.4, 0.3, 0.1))
	glass := material.NewGlass(core.Gray(0.9), core.Gray(0.1), 1.5)

	checker := material.NewCheckerboardTexture(512, 512, 16,
		core.NewVec3(0.9, 0.9, 0.9),
		core.NewVec3(0.3, 0.5, 0.3),
	)
	ground := material.NewMaterial()
	ground.Kd = material.Textured(checker)
	ground.Ka = material.Textured(checker)
	ground.Ks = material.Constant(core.Gray(0.1))
	ground.Shininess = material.Constant(core.Gray(8))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, red),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
		// Glass shell around a small blue core
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.15, blue),
		NewGroundMesh(core.NewVec3(0, 0, -1), 16.0, ground),
	)

	s.AddPointLight(core.NewVec3(2, 4, 1), core.NewVec3(0.9, 0.85, 0.8), 1.0, 0.05, 0.01)
	s.AddDirectionalLight(core.NewVec3(-1, -1, -0.5), core.NewVec3(0.4, 0.4, 0.45))

	return s
}

// NewSkyCubeMap builds a procedural environment: side faces fade from the
// horizon color up to the zenith color, the top face is the zenith and the
// bottom face the ground color
func NewSkyCubeMap(horizon, zenith, ground core.Vec3) *material.CubeMap {
	// Side faces map v=0.5 to the horizon, so the lower half is ground
	side := newSkyTexture(horizon, zenith, ground)

	var faces [6]*material.Texture
	faces[material.FacePosX] = side
	faces[material.FaceNegX] = side
	faces[material.FacePosZ] = side
	faces[material.FaceNegZ] = side
	faces[material.FacePosY] = material.NewSolidTexture(zenith)
	faces[material.FaceNegY] = material.NewSolidTexture(ground)
	return material.NewCubeMap(faces)
}

func newSkyTexture(horizon, zenith, ground core.Vec3) *material.Texture {
	return material.NewProceduralTexture(4, 64, func(_, v float64) core.Vec3 {
		if v < 0.5 {
			return ground
		}
		t := (v - 0.5) * 2
		return horizon.Multiply(1 - t).Add(zenith.Multiply(t))
	})
}
