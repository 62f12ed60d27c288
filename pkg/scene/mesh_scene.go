package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMeshMaterial is the gold finish given to loaded meshes
func NewMeshMaterial() *material.Material {
	gold := material.NewPhong(core.NewVec3(0.07, 0.05, 0.02), core.NewVec3(0.7, 0.5, 0.2), core.NewVec3(0.9, 0.8, 0.5), 96)
	gold.Kr = material.Constant(core.NewVec3(0.35, 0.25, 0.1))
	return gold
}

// NewMeshScene frames a loaded mesh on a ground square. The mesh is moved so
// it rests on the ground centered at the origin; the camera distance follows
// the mesh size.
func NewMeshScene(mesh *geometry.Mesh, cameraOverrides ...geometry.CameraConfig) *Scene {
	bounds := mesh.Bounds()
	size := bounds.Size()
	center := bounds.Center()

	// Rest the mesh on y=0
	mesh.Transform(0, yAxis, core.NewVec3(-center.X, -bounds.Min.Y, -center.Z))

	extent := math.Max(size.MaxComponent(), 1e-3)
	vfov := 35.0
	distance := 1.2 * extent / math.Tan(vfov*math.Pi/360.0)

	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0.3*distance, size.Y*0.5+0.4*distance, distance),
		LookAt:      core.NewVec3(0, size.Y*0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        vfov,
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
		core.NewVec3(0.4, 0.4, 0.4),
	))

	// Key light above and to the right, plus a dim fill from the left
	s.AddPointLight(core.NewVec3(extent*1.5, extent*3, extent*2), core.Gray(1.0), 1.0, 0.0, 0.0)
	s.AddDirectionalLight(core.NewVec3(1, -1, -0.5), core.NewVec3(0.25, 0.27, 0.3))

	groundMaterial := material.NewPhong(core.Gray(0.3), core.Gray(0.6), core.Gray(0.05), 8)
	s.Add(mesh, NewGroundMesh(core.Vec3{}, extent*20, groundMaterial))

	return s
}
