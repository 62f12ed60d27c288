package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction (usually 0,1,0)
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Camera generates primary rays from normalized image coordinates
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a pinhole camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	if config.Up.IsZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.VFov <= 0 {
		config.VFov = 45
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1
	}

	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2.0)
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis; the camera looks down -w
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// PrimaryRay returns the unit-direction ray through image point (x, y),
// with (0,0) at the bottom-left and (1,1) at the top-right
func (c *Camera) PrimaryRay(x, y float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(x)).
		Add(c.vertical.Multiply(y)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// AspectRatio returns width / height
func (c *Camera) AspectRatio() float64 {
	return c.config.AspectRatio
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// MergeCameraConfig returns base with every non-zero field of override
// applied on top
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	if !override.Center.IsZero() {
		merged.Center = override.Center
	}
	if !override.LookAt.IsZero() {
		merged.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		merged.Up = override.Up
	}
	if override.VFov > 0 {
		merged.VFov = override.VFov
	}
	if override.AspectRatio > 0 {
		merged.AspectRatio = override.AspectRatio
	}
	return merged
}
