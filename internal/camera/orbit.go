package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDamping is the inertia factor applied by NewOrbit.
const DefaultDamping = 0.05

const (
	polarEpsilon = 1e-4
	dollyStep    = 0.95
)

// Orbit rotates a camera around its target on a sphere and dollies it along
// the view direction. Input only accumulates deltas; Update applies a
// Damping fraction of them each frame so motion eases out.
type Orbit struct {
	Damping     float32
	RotateSpeed float32
	ZoomSpeed   float32

	MinDistance float32
	MaxDistance float32

	dTheta float32
	dPhi   float32
	scale  float32
}

// NewOrbit returns controls with the given damping factor. A damping of 0
// applies input immediately.
func NewOrbit(damping float32) *Orbit {
	return &Orbit{
		Damping:     damping,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		MinDistance: 0.01,
		MaxDistance: math32.Inf(1),
		scale:       1,
	}
}

// Rotate records a pointer drag of (dx, dy) pixels in a viewport of the
// given height. Dragging the full height turns the camera one revolution.
func (o *Orbit) Rotate(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	o.dTheta -= 2 * math32.Pi * dx / viewportHeight * o.RotateSpeed
	o.dPhi -= 2 * math32.Pi * dy / viewportHeight * o.RotateSpeed
}

// Dolly records wheel movement. Positive values move the camera closer.
func (o *Orbit) Dolly(wheel float32) {
	if wheel == 0 {
		return
	}
	o.scale *= math32.Pow(dollyStep, wheel*o.ZoomSpeed)
}

// Update moves c according to pending input and reports whether the camera
// position changed.
func (o *Orbit) Update(c *Camera) bool {
	offset := c.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		return false
	}
	theta := math32.Atan2(offset[0], offset[2])
	phi := math32.Acos(mgl32.Clamp(offset[1]/radius, -1, 1))

	f := o.Damping
	if f <= 0 || f > 1 {
		f = 1
	}
	theta += o.dTheta * f
	phi += o.dPhi * f
	phi = mgl32.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)
	radius = mgl32.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	sinPhi := math32.Sin(phi)
	next := c.Target.Add(mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	})

	o.dTheta *= 1 - f
	o.dPhi *= 1 - f
	o.scale = 1

	moved := next.Sub(c.Position).Len() > 1e-5
	c.Position = next
	return moved
}
