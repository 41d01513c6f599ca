// Package camera holds the perspective camera the viewer renders and picks
// with, plus the orbit controls that move it.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"roomview/internal/geom"
)

// Camera is a right-handed perspective camera. FovY is in degrees.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// New returns a camera at position looking at target with a 45° vertical
// field of view and a square aspect until SetViewport is called.
func New(position, target mgl32.Vec3) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     45,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
}

// SetViewport updates the aspect ratio from a viewport size in pixels.
// Degenerate sizes (a minimized window) leave the aspect unchanged.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the camera-to-clip matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Unproject maps a point in normalized device coordinates back to world
// space using the camera's current matrices.
func (c *Camera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(ndc, c.ViewProjection().Inv())
}

// Ray returns the world-space ray through the pointer at (x, y) in
// normalized device coordinates. The ray starts at the eye and passes
// through the pointer on the near plane.
func (c *Camera) Ray(x, y float32) geom.Ray {
	near := c.Unproject(mgl32.Vec3{x, y, -1})
	return geom.NewRay(c.Position, near.Sub(c.Position))
}

// Bob nudges the camera height with a slow sine wave. elapsed is seconds
// since start.
func (c *Camera) Bob(elapsed, frequency, amplitude float32) {
	c.Position[1] += math32.Sin(elapsed*frequency) * amplitude
}
