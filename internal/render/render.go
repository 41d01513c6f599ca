// Package render turns scene graph meshes into lit, world-space triangles
// for immediate-mode drawing. It keeps no GPU state, so the host can draw
// the result with any 3D line/triangle API.
package render

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"roomview/internal/scenegraph"
)

// Lights is a white ambient term plus one white directional light.
type Lights struct {
	Ambient float32

	Directional float32
	// Direction points from the scene toward the light.
	Direction mgl32.Vec3
}

// DefaultLights returns ambient 0.4 and a 0.8 directional light placed at
// (5, 10, 5).
func DefaultLights() Lights {
	return Lights{
		Ambient:     0.4,
		Directional: 0.8,
		Direction:   mgl32.Vec3{5, 10, 5}.Normalize(),
	}
}

// Intensity returns the Lambert light factor for a unit surface normal.
func (l Lights) Intensity(normal mgl32.Vec3) float32 {
	return l.Ambient + l.Directional*math32.Max(0, normal.Dot(l.Direction))
}

// Shade returns base lit by l for the given normal, with alpha from opacity.
func (l Lights) Shade(base scenegraph.Color, opacity float32, normal mgl32.Vec3) color.RGBA {
	k := l.Intensity(normal)
	c := scenegraph.Color{R: base.R * k, G: base.G * k, B: base.B * k}.RGBA()
	c.A = uint8(mgl32.Clamp(opacity, 0, 1)*255 + 0.5)
	return c
}

// Face is one triangle ready to draw: world-space corners in front-facing
// counter-clockwise order and a lit color.
type Face struct {
	A, B, C mgl32.Vec3
	Color   color.RGBA
}

type triangle struct {
	a, b, c mgl32.Vec3
	normal  mgl32.Vec3
}

// cached holds a mesh node's world-space triangles and the matrix they were
// computed with.
type cached struct {
	mesh  *scenegraph.Mesh
	world mgl32.Mat4
	tris  []triangle
}

var white = scenegraph.Color{R: 1, G: 1, B: 1}

// Registry caches world-space geometry per mesh node. Entries are built on
// first use and rebuilt when the node's world matrix or mesh changes.
type Registry struct {
	Lights Lights

	cache map[scenegraph.ID]*cached
	seen  map[scenegraph.ID]struct{}
	faces []Face
}

// NewRegistry returns an empty registry lit by DefaultLights.
func NewRegistry() *Registry {
	return &Registry{
		Lights: DefaultLights(),
		cache:  make(map[scenegraph.ID]*cached),
		seen:   make(map[scenegraph.ID]struct{}),
	}
}

// Len returns the number of cached mesh nodes.
func (r *Registry) Len() int { return len(r.cache) }

// Faces returns the lit faces of every visible mesh node under roots using
// each node's live material color. Cache entries for nodes that were not
// reached are dropped. The returned slice is reused by the next call.
func (r *Registry) Faces(roots ...*scenegraph.Node) []Face {
	r.faces = r.faces[:0]
	clear(r.seen)
	for _, root := range roots {
		if root == nil {
			continue
		}
		root.Walk(func(n *scenegraph.Node) bool {
			if !n.Visible {
				return false
			}
			if n.IsMesh() {
				r.seen[n.ID()] = struct{}{}
				r.appendFaces(n)
			}
			return true
		})
	}
	for id := range r.cache {
		if _, ok := r.seen[id]; !ok {
			delete(r.cache, id)
		}
	}
	return r.faces
}

func (r *Registry) appendFaces(n *scenegraph.Node) {
	e := r.ensure(n)
	base, opacity := white, float32(1)
	doubleSided := false
	if m := n.Material; m != nil {
		if m.HasColor() {
			base = *m.Color
		}
		opacity = m.Opacity
		doubleSided = m.DoubleSided
	}
	for _, t := range e.tris {
		r.faces = append(r.faces, Face{A: t.a, B: t.b, C: t.c, Color: r.Lights.Shade(base, opacity, t.normal)})
		if doubleSided {
			r.faces = append(r.faces, Face{A: t.a, B: t.c, C: t.b, Color: r.Lights.Shade(base, opacity, t.normal.Mul(-1))})
		}
	}
}

// ensure returns the cache entry for n, rebuilding it when stale.
func (r *Registry) ensure(n *scenegraph.Node) *cached {
	world := n.World()
	e, ok := r.cache[n.ID()]
	if ok && e.mesh == n.Mesh && e.world == world {
		return e
	}
	if !ok {
		e = &cached{}
		r.cache[n.ID()] = e
	}
	e.mesh, e.world = n.Mesh, world
	e.tris = e.tris[:0]
	mirrored := world.Det() < 0
	for i := 0; i < n.Mesh.TriangleCount(); i++ {
		a, b, c := n.Mesh.Triangle(i)
		a = mgl32.TransformCoordinate(a, world)
		b = mgl32.TransformCoordinate(b, world)
		c = mgl32.TransformCoordinate(c, world)
		if mirrored {
			b, c = c, b
		}
		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Len() == 0 {
			continue
		}
		e.tris = append(e.tris, triangle{a: a, b: b, c: c, normal: normal.Normalize()})
	}
	return e
}
