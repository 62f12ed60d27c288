package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	// parallelEpsilon rejects rays (nearly) parallel to a face
	parallelEpsilon = 1e-12

	// degenerateTolerance is the distance below which a face's third vertex
	// is considered to lie on its longest edge
	degenerateTolerance = 1e-12
)

// Face is one triangle of a Mesh, stored as indices into the mesh's arrays
type Face struct {
	Vertices [3]int
	Normal   core.Vec3 // Unit flat normal, counter-clockwise winding
}

// Mesh is a triangle mesh with optional per-vertex normals, colors and UVs.
// Faces index into the mesh's arrays and never refer back to the mesh.
// An optional array whose length differs from the vertex count is ignored
// when shading.
type Mesh struct {
	vertices []core.Vec3
	normals  []core.Vec3
	colors   []core.Vec3
	uvs      []core.Vec2
	faces    []Face

	smoothNormals bool
	degenerate    int

	material *material.Material

	bounds   []core.AABB // Per-face bounds, built by Finalize
	bvh      *BVH
	dirtyBVH bool
}

// NewMesh creates an empty mesh with a base material
func NewMesh(m *material.Material) *Mesh {
	return &Mesh{material: m, dirtyBVH: true}
}

// AddVertex appends a vertex position
func (m *Mesh) AddVertex(v core.Vec3) {
	m.vertices = append(m.vertices, v)
	m.dirtyBVH = true
}

// AddNormal appends a per-vertex normal and enables smooth shading
func (m *Mesh) AddNormal(n core.Vec3) {
	m.normals = append(m.normals, n)
	m.smoothNormals = true
}

// AddColor appends a per-vertex diffuse color
func (m *Mesh) AddColor(c core.Vec3) {
	m.colors = append(m.colors, c)
}

// AddUV appends per-vertex texture coordinates
func (m *Mesh) AddUV(uv core.Vec2) {
	m.uvs = append(m.uvs, uv)
}

// AddFace adds the triangle (a, b, c). Indices must refer to existing
// vertices. Zero-area faces are accepted but silently left out.
func (m *Mesh) AddFace(a, b, c int) error {
	n := len(m.vertices)
	for _, i := range [3]int{a, b, c} {
		if i < 0 || i >= n {
			return fmt.Errorf("face (%d, %d, %d): vertex index %d out of range [0, %d)", a, b, c, i, n)
		}
	}

	tri := r3.Triangle{toR3(m.vertices[a]), toR3(m.vertices[b]), toR3(m.vertices[c])}
	normal := tri.Normal()
	if tri.IsDegenerate(degenerateTolerance) || r3.Norm(normal) == 0 {
		m.degenerate++
		return nil
	}

	m.faces = append(m.faces, Face{
		Vertices: [3]int{a, b, c},
		Normal:   fromR3(r3.Unit(normal)),
	})
	m.dirtyBVH = true
	return nil
}

// Validate checks that every optional per-vertex array is either empty or
// has exactly one entry per vertex
func (m *Mesh) Validate() error {
	var errs []error
	if len(m.colors) != 0 && len(m.colors) != len(m.vertices) {
		errs = append(errs, fmt.Errorf("wrong number of vertex colors: %d for %d vertices", len(m.colors), len(m.vertices)))
	}
	if len(m.uvs) != 0 && len(m.uvs) != len(m.vertices) {
		errs = append(errs, fmt.Errorf("wrong number of UV coordinates: %d for %d vertices", len(m.uvs), len(m.vertices)))
	}
	if len(m.normals) != 0 && len(m.normals) != len(m.vertices) {
		errs = append(errs, fmt.Errorf("wrong number of normals: %d for %d vertices", len(m.normals), len(m.vertices)))
	}
	return errors.Join(errs...)
}

// GenerateNormals replaces any vertex normals with the average of the face
// normals around each vertex and enables smooth shading
func (m *Mesh) GenerateNormals() {
	normals := make([]core.Vec3, len(m.vertices))
	counts := make([]int, len(m.vertices))

	for _, f := range m.faces {
		for _, v := range f.Vertices {
			normals[v] = normals[v].Add(f.Normal)
			counts[v]++
		}
	}
	for i := range normals {
		if counts[i] > 0 {
			normals[i] = normals[i].Multiply(1.0 / float64(counts[i]))
		}
	}

	m.normals = normals
	m.smoothNormals = true
}

// Transform rotates every vertex by angle radians about axis through the
// origin, then translates by offset. Normals rotate with the mesh.
func (m *Mesh) Transform(angle float64, axis, offset core.Vec3) {
	rotation := r3.NewRotation(angle, toR3(axis))

	for i, v := range m.vertices {
		m.vertices[i] = fromR3(rotation.Rotate(toR3(v))).Add(offset)
	}
	for i, n := range m.normals {
		m.normals[i] = fromR3(rotation.Rotate(toR3(n)))
	}
	for i, f := range m.faces {
		m.faces[i].Normal = fromR3(rotation.Rotate(toR3(f.Normal))).Normalize()
	}
	m.dirtyBVH = true
}

// Finalize builds the mesh's face BVH. Intersect calls it lazily, but a
// mesh shared between render workers must be finalized before rendering.
func (m *Mesh) Finalize() {
	if !m.dirtyBVH {
		return
	}
	m.bounds = make([]core.AABB, len(m.faces))
	for i, f := range m.faces {
		m.bounds[i] = core.NewAABBFromPoints(
			m.vertices[f.Vertices[0]],
			m.vertices[f.Vertices[1]],
			m.vertices[f.Vertices[2]],
		).Expand(1e-9)
	}
	m.bvh = NewBVH(m.bounds)
	m.dirtyBVH = false
}

// Material returns the mesh's base material
func (m *Mesh) Material() *material.Material { return m.material }

// Faces returns the active (non-degenerate) faces
func (m *Mesh) Faces() []Face { return m.faces }

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// DegenerateCount returns how many faces were dropped for having zero area
func (m *Mesh) DegenerateCount() int { return m.degenerate }

// Bounds returns the box enclosing every vertex
func (m *Mesh) Bounds() core.AABB {
	if len(m.vertices) == 0 {
		return core.AABB{}
	}
	box := r3.Box{Min: toR3(m.vertices[0]), Max: toR3(m.vertices[0])}
	for _, v := range m.vertices[1:] {
		p := toR3(v)
		box = box.Union(r3.Box{Min: p, Max: p})
	}
	return core.NewAABB(fromR3(box.Min), fromR3(box.Max))
}

// Intersect returns the nearest hit over all active faces. A miss still
// returns an Intersection with T set to material.MissT.
func (m *Mesh) Intersect(ray core.Ray) (material.Intersection, bool) {
	m.Finalize()
	return m.bvh.Intersect(ray, func(i int) (material.Intersection, bool) {
		return m.intersectFace(ray, i)
	})
}

// IntersectFace tests a single face by index
func (m *Mesh) IntersectFace(ray core.Ray, face int) (material.Intersection, bool) {
	return m.intersectFace(ray, face)
}

// intersectFace is the Möller–Trumbore ray/triangle test
func (m *Mesh) intersectFace(ray core.Ray, face int) (material.Intersection, bool) {
	miss := material.Intersection{T: material.MissT}

	f := m.faces[face]
	ia, ib, ic := f.Vertices[0], f.Vertices[1], f.Vertices[2]
	a, b, c := m.vertices[ia], m.vertices[ib], m.vertices[ic]

	e1 := b.Subtract(a)
	e2 := c.Subtract(a)

	pvec := ray.Direction.Cross(e2)
	det := e1.Dot(pvec)
	if math.Abs(det) < parallelEpsilon {
		return miss, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(a)
	u := tvec.Dot(pvec) * invDet
	if u < 0.0 || u > 1.0 {
		return miss, false
	}

	qvec := tvec.Cross(e1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0.0 || u+v > 1.0 {
		return miss, false
	}

	t := e2.Dot(qvec) * invDet
	if t < minHitT {
		return miss, false
	}

	alpha, beta, gamma := 1.0-u-v, u, v
	isect := material.Intersection{
		T:      t,
		N:      f.Normal,
		Object: m,
		Bary:   core.NewVec3(alpha, beta, gamma),
	}

	if m.smoothNormals && len(m.normals) == len(m.vertices) {
		n := m.normals[ia].Multiply(alpha).
			Add(m.normals[ib].Multiply(beta)).
			Add(m.normals[ic].Multiply(gamma))
		if n.LengthSquared() > 0 {
			isect.N = n.Normalize()
		}
	}

	switch {
	case len(m.uvs) == len(m.vertices):
		isect.UV = m.uvs[ia].Multiply(alpha).
			Add(m.uvs[ib].Multiply(beta)).
			Add(m.uvs[ic].Multiply(gamma))
		isect.HasUV = true
		isect.Material = m.material
	case len(m.colors) == len(m.vertices):
		color := m.colors[ia].Multiply(alpha).
			Add(m.colors[ib].Multiply(beta)).
			Add(m.colors[ic].Multiply(gamma))
		isect.Material = m.material.WithDiffuse(color)
	default:
		isect.Material = m.material
	}

	return isect, true
}

func toR3(v core.Vec3) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func fromR3(v r3.Vec) core.Vec3 { return core.NewVec3(v.X, v.Y, v.Z) }
