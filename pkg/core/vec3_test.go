package core

import (
	"math"
	"testing"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "Head-on bounces straight back",
			incident: NewVec3(0, 0, -1),
			normal:   NewVec3(0, 0, 1),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "45 degrees onto floor",
			incident: NewVec3(1, -1, 0).Normalize(),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:     "Grazing ray is unchanged",
			incident: NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.incident.Reflect(tt.normal)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Refract(t *testing.T) {
	t.Run("Index ratio of one passes straight through", func(t *testing.T) {
		incident := NewVec3(1, -1, 0).Normalize()
		result := incident.Refract(NewVec3(0, 1, 0), 1.0)
		if result.Subtract(incident).Length() > 1e-9 {
			t.Errorf("Expected %v, got %v", incident, result)
		}
	})

	t.Run("Snell's law holds entering glass", func(t *testing.T) {
		incident := NewVec3(math.Sin(math.Pi/6), -math.Cos(math.Pi/6), 0)
		eta := 1.0 / 1.5
		result := incident.Refract(NewVec3(0, 1, 0), eta)

		sinT := result.X / result.Length()
		expected := eta * math.Sin(math.Pi/6)
		if math.Abs(sinT-expected) > 1e-9 {
			t.Errorf("Expected sin(theta_t)=%v, got %v", expected, sinT)
		}
		if result.Y >= 0 {
			t.Errorf("Refracted ray should continue downward, got %v", result)
		}
	})

	t.Run("Total internal reflection returns zero vector", func(t *testing.T) {
		// 60 degrees from inside glass exceeds the ~41.8 degree critical angle
		incident := NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)
		result := incident.Refract(NewVec3(0, 1, 0), 1.5)
		if !result.IsZero() {
			t.Errorf("Expected zero vector, got %v", result)
		}
	})
}

func TestVec3_Luminance(t *testing.T) {
	tests := []struct {
		color    Vec3
		expected float64
	}{
		{NewVec3(1, 0, 0), 0.299},
		{NewVec3(0, 1, 0), 0.587},
		{NewVec3(0, 0, 1), 0.114},
		{NewVec3(1, 1, 1), 1.0},
	}

	for _, tt := range tests {
		if got := tt.color.Luminance(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Luminance(%v): expected %v, got %v", tt.color, tt.expected, got)
		}
	}
}

func TestVec3_ClampAndAbs(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5)
	if got := v.Clamp(0, 1); got != NewVec3(0, 0.5, 1) {
		t.Errorf("Clamp: got %v", got)
	}
	if got := v.Abs(); got != NewVec3(0.5, 0.5, 1.5) {
		t.Errorf("Abs: got %v", got)
	}
	if got := v.MaxComponent(); got != 1.5 {
		t.Errorf("MaxComponent: got %v", got)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"Through center", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"Parallel outside", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), false},
		{"Pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
		{"Diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1).Normalize()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0.001, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
