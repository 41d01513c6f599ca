package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"

	"roomview/internal/geom"
)

// Mesh is indexed triangle geometry in the owning node's local space.
// Every three entries of Indices form one counter-clockwise triangle.
type Mesh struct {
	Positions []mgl32.Vec3
	Indices   []uint32
	Bounds    geom.Box
}

// NewMesh builds a mesh and computes its bounds. A nil indices slice means
// the positions are already a flat triangle list.
func NewMesh(positions []mgl32.Vec3, indices []uint32) *Mesh {
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	m := &Mesh{Positions: positions, Indices: indices}
	m.Bounds = geom.EmptyBox()
	for _, p := range positions {
		m.Bounds.Expand(p)
	}
	return m
}

// TriangleCount returns the number of triangles in m.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	return m.Positions[m.Indices[3*i]], m.Positions[m.Indices[3*i+1]], m.Positions[m.Indices[3*i+2]]
}

// NewBoxMesh returns an axis-aligned box of the given size centered on the
// origin, with outward-facing triangles.
func NewBoxMesh(w, h, d float32) *Mesh {
	x, y, z := w/2, h/2, d/2
	p := []mgl32.Vec3{
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}, // +Z
		{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}, // -Z
		{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}, // +X
		{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}, // -X
		{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}, // +Y
		{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}, // -Y
	}
	idx := make([]uint32, 0, 36)
	for f := uint32(0); f < 6; f++ {
		o := f * 4
		idx = append(idx, o, o+1, o+2, o, o+2, o+3)
	}
	return NewMesh(p, idx)
}

// NewQuadMesh returns a w×h rectangle in the XY plane facing +Z.
func NewQuadMesh(w, h float32) *Mesh {
	x, y := w/2, h/2
	return NewMesh([]mgl32.Vec3{{-x, -y, 0}, {x, -y, 0}, {x, y, 0}, {-x, y, 0}}, []uint32{0, 1, 2, 0, 2, 3})
}
