// Package scenegraph implements the named node hierarchy a loaded room is
// made of. Nodes carry a local TRS transform, and mesh nodes carry geometry
// and a material reference.
package scenegraph

import (
	"strings"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"roomview/internal/geom"
)

// ID identifies a node for the lifetime of the process.
type ID uint64

var lastID atomic.Uint64

// Node is a single element of the scene graph. Parent is a non-owning back
// reference; a node is owned by the Children slice of its parent.
type Node struct {
	id       ID
	Name     string
	Parent   *Node
	Children []*Node

	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3

	// Mesh is nil for groups, cameras and empties.
	Mesh     *Mesh
	Material *Material

	Visible bool
}

// NewNode returns a visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		id:       ID(lastID.Add(1)),
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
	}
}

// NewMeshNode returns a node holding mesh drawn with mat.
func NewMeshNode(name string, mesh *Mesh, mat *Material) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	n.Material = mat
	return n
}

// ID returns the node's identifier.
func (n *Node) ID() ID { return n.id }

// IsMesh reports whether n bears geometry.
func (n *Node) IsMesh() bool { return n.Mesh != nil }

// Add makes each child an immediate descendant of n, detaching it from any
// previous parent first. A child must not be an ancestor of n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.Detach()
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	p := n.Parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// SetPosition sets the local translation.
func (n *Node) SetPosition(x, y, z float32) *Node {
	n.Translation = mgl32.Vec3{x, y, z}
	return n
}

// SetEuler sets the local rotation from XYZ euler angles in radians.
func (n *Node) SetEuler(x, y, z float32) *Node {
	n.Rotation = mgl32.AnglesToQuat(x, y, z, mgl32.XYZ)
	return n
}

// Local returns the local transform T·R·S.
func (n *Node) Local() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// SetLocal decomposes m into translation, rotation and scale.
// Shear is discarded.
func (n *Node) SetLocal(m mgl32.Mat4) {
	n.Translation = m.Col(3).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Det() < 0 {
		sx = -sx
	}
	n.Scale = mgl32.Vec3{sx, sy, sz}
	var rot mgl32.Mat4
	if sx != 0 && sy != 0 && sz != 0 {
		rot.SetCol(0, m.Col(0).Mul(1/sx))
		rot.SetCol(1, m.Col(1).Mul(1/sy))
		rot.SetCol(2, m.Col(2).Mul(1/sz))
	} else {
		rot = mgl32.Ident4()
	}
	rot.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	n.Rotation = mgl32.Mat4ToQuat(rot).Normalize()
}

// World returns the transform from n's local space to world space.
func (n *Node) World() mgl32.Mat4 {
	m := n.Local()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Local().Mul4(m)
	}
	return m
}

// WorldBounds returns the world-space box enclosing every mesh in the
// subtree rooted at n.
func (n *Node) WorldBounds() geom.Box {
	out := geom.EmptyBox()
	var walk func(*Node, mgl32.Mat4)
	walk = func(c *Node, parent mgl32.Mat4) {
		w := parent.Mul4(c.Local())
		if c.Mesh != nil {
			out.Union(c.Mesh.Bounds.Transform(w))
		}
		for _, k := range c.Children {
			walk(k, w)
		}
	}
	parent := mgl32.Ident4()
	if n.Parent != nil {
		parent = n.Parent.World()
	}
	walk(n, parent)
	return out
}

// Walk calls f for n and every descendant in depth-first pre-order.
// If f returns false the node's descendants are skipped.
// The graph must not be restructured until Walk returns.
func (n *Node) Walk(f func(*Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(f)
	}
}

// Lineage calls f for n and then each ancestor up to the root, stopping
// early if f returns false.
func (n *Node) Lineage(f func(*Node) bool) {
	for c := n; c != nil; c = c.Parent {
		if !f(c) {
			return
		}
	}
}

// IsDescendantOf reports whether a is n or one of n's ancestors.
func (n *Node) IsDescendantOf(a *Node) bool {
	found := false
	n.Lineage(func(c *Node) bool {
		found = c == a
		return !found
	})
	return found
}

// Find returns the first node in pre-order whose name equals name.
func (n *Node) Find(name string) *Node {
	var out *Node
	n.Walk(func(c *Node) bool {
		if out != nil {
			return false
		}
		if c.Name == name {
			out = c
			return false
		}
		return true
	})
	return out
}

// Path returns the slash-separated names from the root down to n.
func (n *Node) Path() string {
	var names []string
	n.Lineage(func(c *Node) bool {
		names = append(names, c.Name)
		return true
	})
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	k := 0
	n.Walk(func(*Node) bool { k++; return true })
	return k
}
