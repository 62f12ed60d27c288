package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube map faces, in the order maps are supplied: +x, -x, +y, -y, +z, -z.
// The z faces follow the camera convention (looking down -z sees FacePosZ).
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// CubeMap supplies the background color for rays that leave the scene
type CubeMap struct {
	faces [6]*Texture
}

// NewCubeMap creates a cube map from up to six face textures; nil faces
// render white
func NewCubeMap(faces [6]*Texture) *CubeMap {
	return &CubeMap{faces: faces}
}

// SetFace replaces one face texture
func (c *CubeMap) SetFace(face int, texture *Texture) {
	c.faces[face] = texture
}

// Color looks up the face hit by the ray direction's major axis
func (c *CubeMap) Color(ray core.Ray) core.Vec3 {
	face, uv := c.project(ray.Direction)
	if c.faces[face] == nil {
		return core.Gray(1)
	}
	return c.faces[face].Sample(uv)
}

// project picks the face for direction d and returns uv in [0,1]^2
func (c *CubeMap) project(d core.Vec3) (int, core.Vec2) {
	absX, absY, absZ := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var face int
	var u, v float64
	switch {
	case absX >= absY && absX >= absZ:
		if d.X > 0 {
			face, u = FacePosX, d.Z/absX
		} else {
			face, u = FaceNegX, -d.Z/absX
		}
		v = d.Y / absX
	case absY >= absX && absY >= absZ:
		if d.Y > 0 {
			face, v = FacePosY, d.Z/absY
		} else {
			face, v = FaceNegY, -d.Z/absY
		}
		u = d.X / absY
	default:
		if d.Z < 0 {
			face, u = FacePosZ, d.X/absZ
		} else {
			face, u = FaceNegZ, -d.X/absZ
		}
		v = d.Y / absZ
	}

	return face, core.NewVec2(0.5*(u+1.0), 0.5*(v+1.0))
}
