// Package geom holds the small amount of 3D geometry the picker needs: rays,
// axis-aligned boxes and ray/triangle tests.
package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// epsilon is the relative tolerance used to reject rays parallel to a
// triangle. It is scaled by the edge and direction lengths so small
// geometry is tested like large geometry.
const epsilon = 1e-7

// Ray is a half-line starting at Origin and going along Dir.
// Dir is unit length when built with NewRay, so hit parameters are distances.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// NewRay returns a ray from origin along dir, normalizing dir.
func NewRay(origin, dir mgl32.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Box is an axis-aligned bounding box. The zero Box is a degenerate box at
// the origin; use EmptyBox to start accumulating points.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBox returns a box that contains nothing. Expanding it by a point
// yields a box containing exactly that point.
func EmptyBox() Box {
	inf := math32.Inf(1)
	return Box{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether b contains no points.
func (b Box) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Expand grows b so that it contains p.
func (b *Box) Expand(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
}

// Union grows b so that it contains o.
func (b *Box) Union(o Box) {
	if o.IsEmpty() {
		return
	}
	b.Expand(o.Min)
	b.Expand(o.Max)
}

// Center returns the center of b.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Transform returns the box enclosing b after transforming it by m.
// All eight corners are transformed so rotations are handled.
func (b Box) Transform(m mgl32.Mat4) Box {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out.Expand(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// IntersectBox returns the distance along r at which it enters b.
// If the origin is inside b the distance is 0.
func (r Ray) IntersectBox(b Box) (t float32, ok bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tmin := float32(0)
	tmax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t0 := (b.Min[i] - r.Origin[i]) * inv
		t1 := (b.Max[i] - r.Origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math32.Max(tmin, t0)
		tmax = math32.Min(tmax, t1)
		if tmax < tmin {
			return 0, false
		}
	}
	return tmin, true
}

// IntersectTriangle tests r against the triangle (a, b, c) using the
// Möller–Trumbore method. When cullBack is set, triangles whose
// counter-clockwise front face points away from the ray are ignored.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3, cullBack bool) (t float32, ok bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	tol := epsilon * e1.Len() * e2.Len() * r.Dir.Len()
	if cullBack {
		if det <= tol {
			return 0, false
		}
	} else if math32.Abs(det) <= tol {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t <= 0 {
		return 0, false
	}
	return t, true
}
