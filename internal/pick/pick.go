// Package pick intersects world-space rays with scene graph geometry.
package pick

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"

	"roomview/internal/geom"
	"roomview/internal/scenegraph"
)

// Hit is one mesh node crossed by a ray.
type Hit struct {
	Node     *scenegraph.Node
	Distance float32    // from the ray origin, in world units
	Point    mgl32.Vec3 // world-space intersection point
	Triangle int        // index of the nearest triangle in the node's mesh
}

// Raycaster tests rays against scene subtrees. It keeps its scratch buffers
// between calls, so a Raycaster must not be shared between goroutines.
type Raycaster struct {
	visited map[scenegraph.ID]struct{}
	hits    []Hit
}

// NewRaycaster returns a ready Raycaster.
func NewRaycaster() *Raycaster {
	return &Raycaster{visited: make(map[scenegraph.ID]struct{})}
}

// Intersect tests r against every visible mesh node in the subtrees rooted
// at roots. Each mesh node is tested once even when it is reachable from
// more than one root, and contributes at most its nearest triangle. Hits
// are sorted by ascending distance; equal distances keep traversal order.
// The returned slice is reused by the next call.
func (rc *Raycaster) Intersect(r geom.Ray, roots []*scenegraph.Node) []Hit {
	clear(rc.visited)
	rc.hits = rc.hits[:0]
	for _, root := range roots {
		root.Walk(func(n *scenegraph.Node) bool {
			if !n.Visible {
				return false
			}
			if _, seen := rc.visited[n.ID()]; seen {
				return true
			}
			rc.visited[n.ID()] = struct{}{}
			if h, ok := IntersectNode(r, n); ok {
				rc.hits = append(rc.hits, h)
			}
			return true
		})
	}
	slices.SortStableFunc(rc.hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return rc.hits
}

// IntersectNode tests r against the mesh of n alone. Single-sided materials
// ignore triangles seen from behind.
func IntersectNode(r geom.Ray, n *scenegraph.Node) (Hit, bool) {
	m := n.Mesh
	if m == nil || m.TriangleCount() == 0 {
		return Hit{}, false
	}
	world := n.World()
	if world.Det() == 0 {
		return Hit{}, false
	}
	inv := world.Inv()
	local := geom.Ray{
		Origin: mgl32.TransformCoordinate(r.Origin, inv),
		Dir:    mgl32.TransformNormal(r.Dir, inv),
	}
	if _, ok := local.IntersectBox(m.Bounds); !ok {
		return Hit{}, false
	}

	// Facing is decided in mesh space, so mirroring transforms keep the
	// winding the mesh was authored with.
	cullBack := n.Material == nil || !n.Material.DoubleSided

	best := Hit{Node: n, Triangle: -1}
	bestT := float32(0)
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		t, ok := local.IntersectTriangle(a, b, c, cullBack)
		if !ok || (best.Triangle >= 0 && t >= bestT) {
			continue
		}
		best.Triangle, bestT = i, t
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = mgl32.TransformCoordinate(local.At(bestT), world)
	best.Distance = best.Point.Sub(r.Origin).Len()
	return best, true
}
