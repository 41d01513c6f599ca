package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestCenterRayFollowsViewDirection(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.SetViewport(1280, 720)

	r := c.Ray(0, 0)
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, r.Dir, 1e-4)
	assertVecNear(t, mgl32.Vec3{0, 0, 5}, r.Origin, 1e-6)
}

func TestOffCenterRay(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.SetViewport(100, 100)

	right := c.Ray(1, 0)
	up := c.Ray(0, 1)
	assert.Greater(t, right.Dir[0], float32(0))
	assert.InDelta(t, 0, right.Dir[1], 1e-5)
	assert.Greater(t, up.Dir[1], float32(0))

	// The edge of a 45° frustum is 22.5° off axis.
	cos := up.Dir.Dot(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, 0.9239, cos, 1e-3)
}

func TestRayUsesCurrentPose(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.Position = mgl32.Vec3{5, 0, 0}
	assertVecNear(t, mgl32.Vec3{-1, 0, 0}, c.Ray(0, 0).Dir, 1e-4)
}

func TestSetViewport(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.SetViewport(800, 400)
	assert.Equal(t, float32(2), c.Aspect)
	c.SetViewport(0, 0)
	assert.Equal(t, float32(2), c.Aspect)
}

func TestBob(t *testing.T) {
	c := New(mgl32.Vec3{0, 1, 5}, mgl32.Vec3{})
	c.Bob(0, 0.2, 0.0005)
	assert.Equal(t, float32(1), c.Position[1])
	c.Bob(7.853981, 0.2, 0.0005) // sin(π/2)
	assert.InDelta(t, 1.0005, c.Position[1], 1e-6)
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	o := NewOrbit(0)
	o.Rotate(100, 0, 400)
	assert.True(t, o.Update(c))
	assert.InDelta(t, 5, c.Position.Len(), 1e-4)
	assert.InDelta(t, 0, c.Position[1], 1e-4)

	// A quarter of the viewport height is a quarter turn.
	assertVecNear(t, mgl32.Vec3{-5, 0, 0}, c.Position, 1e-3)
}

func TestOrbitDampingEasesOut(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	o := NewOrbit(DefaultDamping)
	o.Rotate(100, 0, 400)

	o.Update(c)
	first := c.Position
	assert.Greater(t, first[2], float32(4.9))

	for i := 0; i < 400; i++ {
		o.Update(c)
	}
	assertVecNear(t, mgl32.Vec3{-5, 0, 0}, c.Position, 1e-2)
	assert.False(t, o.Update(c))
}

func TestOrbitClampsPolarAngle(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	o := NewOrbit(0)
	o.Rotate(0, 10000, 100)
	o.Update(c)
	assert.Greater(t, c.Position[1], float32(4.99))
	horizontal := mgl32.Vec2{c.Position[0], c.Position[2]}.Len()
	assert.Greater(t, horizontal, float32(0))
}

func TestOrbitDolly(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	o := NewOrbit(0)
	o.Dolly(1)
	o.Update(c)
	assert.InDelta(t, 4.75, c.Position.Len(), 1e-4)

	o.MaxDistance = 6
	o.Dolly(-20)
	o.Update(c)
	assert.InDelta(t, 6, c.Position.Len(), 1e-4)
}
