package core

// RayKind tags what a ray is being traced for
type RayKind int

const (
	RayVisibility RayKind = iota
	RayReflection
	RayRefraction
	RayShadow
)

// String returns the kind name used in debug logs
func (k RayKind) String() string {
	switch k {
	case RayVisibility:
		return "visibility"
	case RayReflection:
		return "reflection"
	case RayRefraction:
		return "refraction"
	case RayShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// RayEpsilon is the offset used to move secondary ray origins off a surface
const RayEpsilon = 1e-4

// Ray represents a ray with an origin and direction. Attenuation is the
// product of the coefficients along the path that spawned this ray.
type Ray struct {
	Origin      Vec3
	Direction   Vec3
	Attenuation Vec3
	Kind        RayKind
}

// NewRay creates a new visibility ray with unit attenuation
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Attenuation: Gray(1), Kind: RayVisibility}
}

// NewTypedRay creates a ray with an explicit attenuation and kind
func NewTypedRay(origin, direction, attenuation Vec3, kind RayKind) Ray {
	return Ray{Origin: origin, Direction: direction, Attenuation: attenuation, Kind: kind}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
