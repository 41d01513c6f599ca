// Package scene connects the frame driver to raylib: it feeds mouse input
// in, mirrors the camera out, applies the hover cursor and draws the room.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"roomview/internal/frame"
	"roomview/internal/hover"
	"roomview/internal/render"
)

const (
	gridExtent     = 10
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Scene holds the raylib camera mirrored from the driver's camera and draws
// the room between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	driver   *frame.Driver
	registry *render.Registry
	cursor   hover.Cursor
}

// New returns a scene presenting d.
func New(d *frame.Driver) *Scene {
	s := &Scene{
		driver:   d,
		registry: render.NewRegistry(),
		cursor:   hover.CursorDefault,
	}
	s.Camera.Projection = rl.CameraPerspective
	s.syncCamera()
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame. The pointer only moves once the mouse does,
// so until then picking goes through the center of the view. Dragging with
// the left button orbits and the wheel dollies.
func (s *Scene) Update() hover.Effects {
	d := s.driver
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	d.Camera.SetViewport(w, h)

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		m := rl.GetMousePosition()
		d.Pointer.SetPixels(m.X, m.Y, w, h)
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			d.Orbit.Rotate(delta.X, delta.Y, float32(h))
		}
	}
	d.Orbit.Dolly(rl.GetMouseWheelMove())

	fx := d.Tick(rl.GetFrameTime())
	s.setCursor(fx.Cursor)
	s.syncCamera()
	return fx
}

func (s *Scene) setCursor(c hover.Cursor) {
	if c == s.cursor {
		return
	}
	s.cursor = c
	if c == hover.CursorPointer {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

func (s *Scene) syncCamera() {
	c := s.driver.Camera
	s.Camera.Position = vec(c.Position)
	s.Camera.Target = vec(c.Target)
	s.Camera.Up = vec(c.Up)
	s.Camera.Fovy = c.FovY
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// Draw renders the room and the test cube with their live colors. Call
// after ClearBackground and before 2D overlays.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	for _, f := range s.registry.Faces(s.driver.Scene(), s.driver.Cube()) {
		rl.DrawTriangle3D(vec(f.A), vec(f.B), vec(f.C), f.Color)
	}
	rl.EndMode3D()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}
	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), axisZ)
}
