package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() (root, chart, panel, lamp *Node) {
	root = NewNode("Scene")
	chart = NewNode("CHART_ABOUT_group")
	panel = NewMeshNode("panel", NewQuadMesh(1, 1), NewMaterial("m", Hex(0x336699)))
	lamp = NewMeshNode("lamp", NewBoxMesh(1, 1, 1), nil)
	chart.Add(panel)
	root.Add(chart, lamp)
	return
}

func TestWalkIsPreOrder(t *testing.T) {
	root, _, _, _ := buildTree()
	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	assert.Equal(t, []string{"Scene", "CHART_ABOUT_group", "panel", "lamp"}, names)

	names = names[:0]
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return n.Name != "CHART_ABOUT_group"
	})
	assert.Equal(t, []string{"Scene", "CHART_ABOUT_group", "lamp"}, names)
	assert.Equal(t, 4, root.Count())
}

func TestAddDetach(t *testing.T) {
	root, chart, panel, lamp := buildTree()
	assert.Same(t, chart, panel.Parent)

	lamp.Add(panel)
	assert.Same(t, lamp, panel.Parent)
	assert.Empty(t, chart.Children)
	assert.Equal(t, "Scene/lamp/panel", panel.Path())
	assert.True(t, panel.IsDescendantOf(root))
	assert.False(t, panel.IsDescendantOf(chart))

	panel.Detach()
	assert.Nil(t, panel.Parent)
	assert.Empty(t, lamp.Children)
	panel.Detach()
}

func TestIDsAreUnique(t *testing.T) {
	a, b := NewNode("a"), NewNode("a")
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestFind(t *testing.T) {
	root, _, panel, _ := buildTree()
	assert.Same(t, panel, root.Find("panel"))
	assert.Nil(t, root.Find("missing"))
}

func TestWorldTransform(t *testing.T) {
	root, chart, panel, _ := buildTree()
	root.SetPosition(1, 0, 0)
	chart.SetPosition(0, 2, 0)
	chart.Scale = mgl32.Vec3{2, 2, 2}
	panel.SetPosition(0, 0, 3)

	p := mgl32.TransformCoordinate(mgl32.Vec3{}, panel.World())
	assert.True(t, p.ApproxEqual(mgl32.Vec3{1, 2, 6}), "have %v", p)

	b := panel.WorldBounds()
	assert.True(t, b.Min.ApproxEqual(mgl32.Vec3{0, 1, 6}), "have %v", b.Min)
	assert.True(t, b.Max.ApproxEqual(mgl32.Vec3{2, 3, 6}), "have %v", b.Max)
}

func TestSetLocalRoundTrip(t *testing.T) {
	n := NewNode("n")
	n.SetPosition(1, 2, 3)
	n.SetEuler(0.3, 0.2, 0.1)
	n.Scale = mgl32.Vec3{2, 3, 4}
	want := n.Local()

	m := NewNode("m")
	m.SetLocal(want)
	assert.True(t, m.Local().ApproxEqualThreshold(want, 1e-4), "have %v\nwant %v", m.Local(), want)
}

func TestMaterialClone(t *testing.T) {
	m := NewMaterial("wood", Hex(0x804020))
	m.Extras = map[string]any{"k": "v"}
	c := m.Clone()
	require.NotNil(t, c)
	require.NotSame(t, m.Color, c.Color)
	assert.Equal(t, *m.Color, *c.Color)
	assert.Equal(t, "wood", c.Name)

	c.SetColor(Hex(0xff0000))
	c.Extras["k"] = "changed"
	assert.Equal(t, Hex(0x804020), *m.Color)
	assert.Equal(t, "v", m.Extras["k"])

	var none *Material
	assert.Nil(t, none.Clone())
	assert.False(t, none.HasColor())

	plain := &Material{Name: "plain"}
	plain.SetColor(Hex(0xffffff))
	assert.False(t, plain.HasColor())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"#ff0000", "#ff0000", false},
		{"0x00ff00", "#00ff00", false},
		{"red", "#ff0000", false},
		{"  RoyalBlue ", "#4169e1", false},
		{"#12345", "", true},
		{"#zzzzzz", "", true},
		{"notacolor", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c.HexString(), tt.in)
	}
}

func TestBoxMeshFacesOutward(t *testing.T) {
	m := NewBoxMesh(2, 2, 2)
	require.Equal(t, 12, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d faces inward", i)
	}
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, m.Bounds.Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Bounds.Max)

	flat := NewMesh([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, nil)
	assert.Equal(t, []uint32{0, 1, 2}, flat.Indices)
}
