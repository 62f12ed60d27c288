package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var yAxis = core.NewVec3(0, 1, 0)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry:
// a vertex-colored box, a vertex-colored pyramid and a smooth-shaded
// reflective icosahedron, under a cube map sky
func NewTriangleMeshScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 2, 6), // Position camera to see the meshes
		LookAt:      core.NewVec3(0, 1, 0), // Look at the center of the scene
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.SetAmbient(core.Gray(0.2))
	s.SetEnvironment(NewSkyCubeMap(
		core.NewVec3(0.9, 0.9, 1.0),
		core.NewVec3(0.3, 0.5, 0.9),
		core.NewVec3(0.4, 0.4, 0.4),
	))

	addTriangleMeshLighting(s)
	addTriangleMeshGround(s)
	addTriangleMeshGeometry(s)

	return s
}

// addTriangleMeshLighting adds a warm key light and a cool fill
func addTriangleMeshLighting(s *Scene) {
	s.AddPointLight(core.NewVec3(2, 6, 3), core.NewVec3(1.0, 0.92, 0.83), 1.0, 0.02, 0.005)
	s.AddDirectionalLight(core.NewVec3(3, -4, -2), core.NewVec3(0.25, 0.3, 0.35))
}

// addTriangleMeshGround adds a gray ground square
func addTriangleMeshGround(s *Scene) {
	groundMaterial := material.NewPhong(core.Gray(0.35), core.Gray(0.7), core.Gray(0.1), 8)
	s.Add(NewGroundMesh(core.NewVec3(0, 0, 0), 40, groundMaterial))
}

// addTriangleMeshGeometry adds the three showcase meshes
func addTriangleMeshGeometry(s *Scene) {
	shiny := material.NewPhong(core.Gray(0.2), core.Gray(0.8), core.Gray(0.5), 32)

	// Box with a different color at every corner, rotated 30° around Y
	box := createBoxMesh(core.NewVec3(1, 1, 1), shiny)
	box.Transform(math.Pi/6, yAxis, core.NewVec3(-2, 0.5, 0))

	// Pyramid, rotated 45° around Y to show it's actually a pyramid
	pyramid := createPyramidMesh(1.5, 2.0, shiny)
	pyramid.Transform(math.Pi/4, yAxis, core.NewVec3(0, 1, 0))

	// Icosahedron with generated vertex normals, so it shades like a sphere
	gold := material.NewPhong(core.NewVec3(0.08, 0.06, 0.02), core.NewVec3(0.5, 0.38, 0.12), core.NewVec3(0.8, 0.6, 0.2), 64)
	gold.Kr = material.Constant(core.NewVec3(0.3, 0.22, 0.08))
	icosahedron := createIcosahedronMesh(0.8, gold)
	icosahedron.GenerateNormals()
	icosahedron.Transform(math.Pi/3, yAxis, core.NewVec3(2, 0.8, 0))

	s.Add(box, pyramid, icosahedron)
}

// addFaces adds triangles given as a flat index list
func addFaces(mesh *geometry.Mesh, faces []int) {
	for i := 0; i+2 < len(faces); i += 3 {
		// Indices are in range by construction
		_ = mesh.AddFace(faces[i], faces[i+1], faces[i+2])
	}
}

// createBoxMesh creates a box centered at the origin whose corners carry
// their position as a color
func createBoxMesh(size core.Vec3, m *material.Material) *geometry.Mesh {
	half := size.Multiply(0.5)
	mesh := geometry.NewMesh(m)
	for i := 0; i < 8; i++ {
		// Bit 0 selects +x, bit 1 +y, bit 2 +z
		sx, sy, sz := -1.0, -1.0, -1.0
		if i&1 != 0 {
			sx = 1
		}
		if i&2 != 0 {
			sy = 1
		}
		if i&4 != 0 {
			sz = 1
		}
		mesh.AddVertex(core.NewVec3(sx*half.X, sy*half.Y, sz*half.Z))
		mesh.AddColor(core.NewVec3((sx+1)/2, (sy+1)/2, (sz+1)/2).Multiply(0.8).Add(core.Gray(0.1)))
	}

	addFaces(mesh, []int{
		0, 2, 3, 0, 3, 1, // Back face (Z-)
		4, 5, 7, 4, 7, 6, // Front face (Z+)
		0, 4, 6, 0, 6, 2, // Left face (X-)
		1, 3, 7, 1, 7, 5, // Right face (X+)
		0, 1, 5, 0, 5, 4, // Bottom face (Y-)
		2, 6, 7, 2, 7, 3, // Top face (Y+)
	})
	return mesh
}

// createPyramidMesh creates a square pyramid centered at the origin with a
// red apex fading to blue and green at the base
func createPyramidMesh(baseSize, height float64, m *material.Material) *geometry.Mesh {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	mesh := geometry.NewMesh(m)
	mesh.AddVertex(core.NewVec3(-halfBase, -halfHeight, -halfBase)) // 0: left-back
	mesh.AddVertex(core.NewVec3(+halfBase, -halfHeight, -halfBase)) // 1: right-back
	mesh.AddVertex(core.NewVec3(+halfBase, -halfHeight, +halfBase)) // 2: right-front
	mesh.AddVertex(core.NewVec3(-halfBase, -halfHeight, +halfBase)) // 3: left-front
	mesh.AddVertex(core.NewVec3(0, +halfHeight, 0))                 // 4: apex

	mesh.AddColor(core.NewVec3(0.1, 0.2, 0.9))
	mesh.AddColor(core.NewVec3(0.1, 0.8, 0.3))
	mesh.AddColor(core.NewVec3(0.1, 0.2, 0.9))
	mesh.AddColor(core.NewVec3(0.1, 0.8, 0.3))
	mesh.AddColor(core.NewVec3(0.9, 0.1, 0.1))

	addFaces(mesh, []int{
		0, 1, 2, 0, 2, 3, // Base, facing down
		1, 0, 4, // back face
		2, 1, 4, // right face
		3, 2, 4, // front face
		0, 3, 4, // left face
	})
	return mesh
}

// createIcosahedronMesh creates an icosahedron (20-sided polyhedron)
// centered at the origin
func createIcosahedronMesh(radius float64, m *material.Material) *geometry.Mesh {
	phi := (1.0 + math.Sqrt(5)) / 2.0

	// Scale factor to achieve the desired circumradius
	scale := radius / math.Sqrt(1+phi*phi)

	mesh := geometry.NewMesh(m)
	for _, v := range []core.Vec3{
		core.NewVec3(-1, phi, 0),
		core.NewVec3(1, phi, 0),
		core.NewVec3(-1, -phi, 0),
		core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi),
		core.NewVec3(0, 1, phi),
		core.NewVec3(0, -1, -phi),
		core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1),
		core.NewVec3(phi, 0, 1),
		core.NewVec3(-phi, 0, -1),
		core.NewVec3(-phi, 0, 1),
	} {
		mesh.AddVertex(v.Multiply(scale))
	}

	addFaces(mesh, []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	})
	return mesh
}
