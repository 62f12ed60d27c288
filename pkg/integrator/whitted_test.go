package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// testScene is a minimal Scene over a BVH group
type testScene struct {
	group       *geometry.Group
	ambient     core.Vec3
	lights      []lights.Light
	environment *material.CubeMap
}

func newTestScene(primitives ...geometry.Primitive) *testScene {
	return &testScene{group: geometry.NewGroup(primitives)}
}

func (s *testScene) Intersect(ray core.Ray) (material.Intersection, bool) {
	return s.group.Intersect(ray)
}
func (s *testScene) Ambient() core.Vec3             { return s.ambient }
func (s *testScene) Lights() []lights.Light         { return s.lights }
func (s *testScene) Environment() *material.CubeMap { return s.environment }

func whiteEnvironment() *material.CubeMap {
	return material.NewCubeMap([6]*material.Texture{})
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestTraceRay_MissIsBlack(t *testing.T) {
	scene := newTestScene(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewMirror(core.Gray(1))))
	scene.lights = []lights.Light{lights.NewPointLight(core.NewVec3(0, 5, 0), core.Gray(1), 1, 0, 0)}
	w := NewWhitted(scene, core.DefaultRenderConfig())

	color, tHit := w.TraceRay(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), core.Gray(1), 5)
	if color != (core.Vec3{}) {
		t.Errorf("miss color = %v, want exactly black", color)
	}
	if !math.IsInf(tHit, 1) {
		t.Errorf("miss t = %f, want +Inf", tHit)
	}
}

func TestTraceRay_MissSamplesEnvironment(t *testing.T) {
	scene := newTestScene()
	var faces [6]*material.Texture
	faces[material.FacePosY] = material.NewSolidTexture(core.NewVec3(0, 0, 1))
	scene.environment = material.NewCubeMap(faces)
	w := NewWhitted(scene, core.DefaultRenderConfig())

	color, _ := w.TraceRay(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), core.Gray(1), 0)
	if color != core.NewVec3(0, 0, 1) {
		t.Errorf("environment color = %v, want blue", color)
	}
}

// phongScene is a unit sphere at the origin lit by one point light at
// (0,4,4). Seen from +z the hit is (0,0,1) with N=V=+z, L=(0,0.8,0.6) and
// (N·H)^2 = 0.8.
func phongScene() (*testScene, *material.Material) {
	m := material.NewPhong(core.Gray(0.1), core.NewVec3(0.5, 0.25, 0), core.Gray(0.5), 2)
	m.Ke = material.Constant(core.NewVec3(0, 0, 0.05))

	scene := newTestScene(geometry.NewSphere(core.Vec3{}, 1, m))
	scene.ambient = core.Gray(0.2)
	// d = 5, so 1/(0.08*25) = 0.5
	scene.lights = []lights.Light{lights.NewPointLight(core.NewVec3(0, 4, 4), core.Gray(1), 0, 0, 0.08)}
	return scene, m
}

func TestShade_AnalyticPhong(t *testing.T) {
	scene, _ := phongScene()
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	isect, hit := scene.Intersect(ray)
	if !hit {
		t.Fatal("expected to hit the sphere")
	}

	// ke + ka*ambient = (0.02, 0.02, 0.07)
	// diffuse = kd*0.6 = (0.3, 0.15, 0); specular = 0.5*0.8 = 0.4
	// (diffuse + specular) * 0.5 = (0.35, 0.275, 0.2)
	expected := core.NewVec3(0.37, 0.295, 0.27)

	if got := Shade(scene, ray, &isect); !vecNear(got, expected, 1e-9) {
		t.Errorf("Shade = %v, want %v", got, expected)
	}

	w := NewWhitted(scene, core.DefaultRenderConfig())
	got, tHit := w.TraceRay(ray, core.Gray(1), 0)
	if !vecNear(got, expected, 1e-9) {
		t.Errorf("TraceRay at depth 0 = %v, want %v", got, expected)
	}
	if math.Abs(tHit-4) > 1e-9 {
		t.Errorf("t = %f, want 4", tHit)
	}
}

func TestShade_Shadowed(t *testing.T) {
	scene, m := phongScene()
	blocker := geometry.NewSphere(core.NewVec3(0, 2, 2.5), 0.5, material.NewPhong(core.Vec3{}, core.Gray(1), core.Vec3{}, 1))
	scene.group = geometry.NewGroup([]geometry.Primitive{geometry.NewSphere(core.Vec3{}, 1, m), blocker})

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	isect, hit := scene.Intersect(ray)
	if !hit {
		t.Fatal("expected to hit the sphere")
	}

	expected := core.NewVec3(0.02, 0.02, 0.07)
	if got := Shade(scene, ray, &isect); !vecNear(got, expected, 1e-9) {
		t.Errorf("shadowed Shade = %v, want ambient + emissive %v", got, expected)
	}
}

func TestShade_LightBehindSurface(t *testing.T) {
	scene, _ := phongScene()
	scene.lights = []lights.Light{lights.NewDirectionalLight(core.NewVec3(0, 0, 1), core.Gray(1))}

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	isect, _ := scene.Intersect(ray)

	expected := core.NewVec3(0.02, 0.02, 0.07)
	if got := Shade(scene, ray, &isect); !vecNear(got, expected, 1e-9) {
		t.Errorf("Shade = %v, want no direct term %v", got, expected)
	}
}

func TestShade_Clamped(t *testing.T) {
	m := material.NewPhong(core.Vec3{}, core.Gray(1), core.Gray(1), 1)
	m.Ke = material.Constant(core.Gray(3))
	scene := newTestScene(geometry.NewSphere(core.Vec3{}, 1, m))

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	isect, _ := scene.Intersect(ray)
	if got := Shade(scene, ray, &isect); got != core.Gray(1) {
		t.Errorf("Shade = %v, want clamped white", got)
	}
}

func TestTraceRay_DepthZeroIsLocalOnly(t *testing.T) {
	mirror := material.NewMirror(core.Gray(1))
	mirror.Kt = material.Constant(core.Gray(1))
	scene := newTestScene(geometry.NewSphere(core.Vec3{}, 1, mirror))
	scene.environment = whiteEnvironment()
	w := NewWhitted(scene, core.DefaultRenderConfig())

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	local, _ := w.TraceRay(ray, core.Gray(1), 0)
	if local != (core.Vec3{}) {
		t.Errorf("depth 0 = %v, want only the (black) local term", local)
	}

	deeper, _ := w.TraceRay(ray, core.Gray(1), 1)
	if deeper.IsZero() {
		t.Error("depth 1 should pick up reflected and refracted environment")
	}
}

func TestTraceRay_MirrorReflectsEnvironment(t *testing.T) {
	scene := newTestScene(geometry.NewSphere(core.Vec3{}, 1, material.NewMirror(core.NewVec3(0.5, 0.25, 1))))
	scene.environment = whiteEnvironment()
	w := NewWhitted(scene, core.DefaultRenderConfig())

	got, _ := w.TraceRay(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), core.Gray(1), 1)
	if !vecNear(got, core.NewVec3(0.5, 0.25, 1), 1e-9) {
		t.Errorf("mirror color = %v, want kr * white", got)
	}
}

func TestTraceRay_TotalInternalReflection(t *testing.T) {
	tests := []struct {
		name     string
		index    float64
		kt       float64
		wantZero bool
	}{
		{"beyond critical angle", 1.5, 1.0, true},
		{"beyond critical angle with large kt", 1.5, 50.0, true},
		{"matched index passes through", 1.0, 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glass := material.NewMaterial()
			glass.Kt = material.Constant(core.Gray(tt.kt))
			glass.Index = material.Constant(core.Gray(tt.index))

			scene := newTestScene(geometry.NewSphere(core.Vec3{}, 1, glass))
			scene.environment = whiteEnvironment()
			w := NewWhitted(scene, core.DefaultRenderConfig())

			// From inside, this ray meets the surface about 64 degrees off
			// the normal, past the 41.8 degree critical angle for 1.5
			ray := core.NewRay(core.NewVec3(0.9, 0, 0), core.NewVec3(0, 0, 1))
			got, _ := w.TraceRay(ray, core.Gray(1), 1)

			if tt.wantZero && got != (core.Vec3{}) {
				t.Errorf("got %v, want exactly zero refracted color", got)
			}
			if !tt.wantZero && got.IsZero() {
				t.Error("expected the environment through the surface")
			}
		})
	}
}

func TestTraceRay_ImportanceThreshold(t *testing.T) {
	scene := newTestScene(geometry.NewSphere(core.Vec3{}, 1, material.NewMirror(core.Gray(0.05))))
	scene.environment = whiteEnvironment()

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	config := core.DefaultRenderConfig()
	full, _ := NewWhitted(scene, config).TraceRay(ray, core.Gray(1), 1)
	if !vecNear(full, core.Gray(0.05), 1e-9) {
		t.Errorf("without cutoff got %v, want 0.05 gray", full)
	}

	config.Threshold = 0.1
	cut, _ := NewWhitted(scene, config).TraceRay(ray, core.Gray(1), 1)
	if cut != (core.Vec3{}) {
		t.Errorf("with cutoff got %v, want the dim reflection skipped", cut)
	}
}

func TestWhitted_CountsRays(t *testing.T) {
	scene := newTestScene(geometry.NewSphere(core.Vec3{}, 1, material.NewMirror(core.Gray(1))))
	w := NewWhitted(scene, core.DefaultRenderConfig())

	w.TraceRay(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), core.Gray(1), 3)
	// Primary hit plus one reflection that escapes
	if got := w.RayCount(); got != 2 {
		t.Errorf("RayCount = %d, want 2", got)
	}
}
