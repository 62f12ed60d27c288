package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering. Build it with the
// Add* methods, then call Preprocess once before handing it to a renderer.
// After Preprocess the scene is read-only and safe for concurrent queries.
type Scene struct {
	CameraConfig geometry.CameraConfig
	Primitives   []geometry.Primitive // Objects in the scene

	camera      *geometry.Camera
	lights      []lights.Light
	ambient     core.Vec3
	environment *material.CubeMap
	group       *geometry.Group // Acceleration structure for ray-object intersection
}

// NewScene creates an empty scene viewed through the given camera
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	camera := geometry.NewCamera(cameraConfig)
	return &Scene{
		CameraConfig: camera.Config(),
		Primitives:   make([]geometry.Primitive, 0),
		camera:       camera,
		lights:       make([]lights.Light, 0),
	}
}

// NewQuadMesh creates a parallelogram mesh spanning corner, corner+u and
// corner+v. Its face normal is u x v and UVs run 0..1 along u and v.
func NewQuadMesh(corner, u, v core.Vec3, m *material.Material) *geometry.Mesh {
	mesh := geometry.NewMesh(m)
	mesh.AddVertex(corner)
	mesh.AddVertex(corner.Add(u))
	mesh.AddVertex(corner.Add(u).Add(v))
	mesh.AddVertex(corner.Add(v))
	mesh.AddUV(core.NewVec2(0, 0))
	mesh.AddUV(core.NewVec2(1, 0))
	mesh.AddUV(core.NewVec2(1, 1))
	mesh.AddUV(core.NewVec2(0, 1))

	// Indices are in range by construction
	_ = mesh.AddFace(0, 1, 2)
	_ = mesh.AddFace(0, 2, 3)
	return mesh
}

// NewGroundMesh creates a horizontal square centered at center with its
// normal pointing up (0,1,0)
func NewGroundMesh(center core.Vec3, size float64, m *material.Material) *geometry.Mesh {
	half := size / 2
	corner := core.NewVec3(center.X-half, center.Y, center.Z+half)
	return NewQuadMesh(corner, core.NewVec3(size, 0, 0), core.NewVec3(0, 0, -size), m)
}

// Add appends primitives to the scene
func (s *Scene) Add(primitives ...geometry.Primitive) {
	s.Primitives = append(s.Primitives, primitives...)
	s.group = nil
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.lights = append(s.lights, light)
}

// AddPointLight adds a point light with distance attenuation
// 1/(c0 + c1*d + c2*d^2)
func (s *Scene) AddPointLight(position, color core.Vec3, c0, c1, c2 float64) {
	s.AddLight(lights.NewPointLight(position, color, c0, c1, c2))
}

// AddDirectionalLight adds a light shining along orientation
func (s *Scene) AddDirectionalLight(orientation, color core.Vec3) {
	s.AddLight(lights.NewDirectionalLight(orientation, color))
}

// SetAmbient sets the ambient light color
func (s *Scene) SetAmbient(ambient core.Vec3) {
	s.ambient = ambient
}

// SetEnvironment sets the cube map seen by rays that leave the scene.
// nil makes misses black.
func (s *Scene) SetEnvironment(environment *material.CubeMap) {
	s.environment = environment
}

// Preprocess prepares the scene for rendering: meshes are validated and get
// their face BVH, then the top-level BVH is built
func (s *Scene) Preprocess() error {
	for i, primitive := range s.Primitives {
		mesh, ok := primitive.(*geometry.Mesh)
		if !ok {
			continue
		}
		if err := mesh.Validate(); err != nil {
			return fmt.Errorf("mesh %d: %w", i, err)
		}
		mesh.Finalize()
	}

	s.group = geometry.NewGroup(s.Primitives)
	return nil
}

// Intersect returns the nearest hit over every primitive. A scene that has
// not been preprocessed hits nothing.
func (s *Scene) Intersect(ray core.Ray) (material.Intersection, bool) {
	if s.group == nil {
		return material.Intersection{T: material.MissT}, false
	}
	return s.group.Intersect(ray)
}

// Ambient returns the ambient light color
func (s *Scene) Ambient() core.Vec3 { return s.ambient }

// Lights returns the scene's lights
func (s *Scene) Lights() []lights.Light { return s.lights }

// Environment returns the background cube map, or nil
func (s *Scene) Environment() *material.CubeMap { return s.environment }

// Camera returns the scene camera
func (s *Scene) Camera() *geometry.Camera { return s.camera }

// Bounds returns the box enclosing every primitive
func (s *Scene) Bounds() core.AABB {
	if s.group != nil {
		return s.group.Bounds()
	}
	return geometry.NewGroup(s.Primitives).Bounds()
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, primitive := range s.Primitives {
		count += countPrimitives(primitive)
	}
	return count
}

// countPrimitives counts the triangles of a mesh, or 1 for anything else
func countPrimitives(primitive geometry.Primitive) int {
	switch obj := primitive.(type) {
	case *geometry.Mesh:
		return len(obj.Faces())
	default:
		return 1
	}
}
