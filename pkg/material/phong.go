package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds the Phong coefficients of a surface plus its mirror and
// transmission terms
type Material struct {
	Ke        Parameter // Emissive
	Ka        Parameter // Ambient
	Ks        Parameter // Specular
	Kd        Parameter // Diffuse
	Kr        Parameter // Reflective
	Kt        Parameter // Transmissive
	Shininess Parameter // Phong exponent, read as intensity
	Index     Parameter // Index of refraction, read as intensity
}

// NewMaterial creates a black, opaque material with index of refraction 1
func NewMaterial() *Material {
	return &Material{Index: Constant(core.Gray(1))}
}

// NewPhong creates an opaque Phong material
func NewPhong(ka, kd, ks core.Vec3, shininess float64) *Material {
	m := NewMaterial()
	m.Ka = Constant(ka)
	m.Kd = Constant(kd)
	m.Ks = Constant(ks)
	m.Shininess = Constant(core.Gray(shininess))
	return m
}

// NewMirror creates a material that only reflects, scaled by kr
func NewMirror(kr core.Vec3) *Material {
	m := NewMaterial()
	m.Kr = Constant(kr)
	return m
}

// NewGlass creates a clear material with the given transmission, reflection
// and index of refraction
func NewGlass(kt, kr core.Vec3, index float64) *Material {
	m := NewPhong(core.Vec3{}, core.Vec3{}, core.Gray(0.8), 64)
	m.Kt = Constant(kt)
	m.Kr = Constant(kr)
	m.Index = Constant(core.Gray(index))
	return m
}

// WithDiffuse returns a copy of the material with kd replaced by a constant
func (m *Material) WithDiffuse(kd core.Vec3) *Material {
	c := *m
	c.Kd = Constant(kd)
	return &c
}

// Reflective reports whether the material spawns mirror rays
func (m *Material) Reflective() bool {
	return !m.Kr.IsZero()
}

// Transmissive reports whether the material spawns refraction rays and lets
// shadow rays through
func (m *Material) Transmissive() bool {
	return !m.Kt.IsZero()
}

// ShininessAt returns the Phong exponent. Texture-mapped shininess is
// rescaled from [0,1] to [0,128].
func (m *Material) ShininessAt(isect *Intersection) float64 {
	if m.Shininess.Mapped() {
		return 128.0 * m.Shininess.Intensity(isect)
	}
	return m.Shininess.Intensity(isect)
}

// IndexAt returns the index of refraction at the hit
func (m *Material) IndexAt(isect *Intersection) float64 {
	return m.Index.Intensity(isect)
}
