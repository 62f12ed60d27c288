package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// minHitT is the smallest ray parameter accepted as a hit
const minHitT = 1e-12

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, m *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: m,
	}
}

// Material returns the sphere's material
func (s *Sphere) Material() *material.Material { return s.material }

// Intersect tests if a ray intersects with the sphere. The normal always
// points outward; callers use its sign against the ray to tell inside from
// outside.
func (s *Sphere) Intersect(ray core.Ray) (material.Intersection, bool) {
	miss := material.Intersection{T: material.MissT}

	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return miss, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < minHitT {
		root = (-halfB + sqrtD) / a
		if root < minHitT {
			return miss, false
		}
	}

	normal := ray.At(root).Subtract(s.Center).Normalize()

	// Spherical UV: u around the y axis, v from the south pole
	u := 0.5 + math.Atan2(-normal.Z, normal.X)/(2*math.Pi)
	v := 0.5 + math.Asin(max(-1, min(1, normal.Y)))/math.Pi

	return material.Intersection{
		T:        root,
		N:        normal,
		Object:   s,
		UV:       core.NewVec2(u, v),
		HasUV:    true,
		Material: s.material,
	}, true
}

// Bounds returns the axis-aligned bounding box for this sphere
func (s *Sphere) Bounds() core.AABB {
	radius := core.Gray(s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
