package hover

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomview/internal/camera"
	"roomview/internal/input"
	"roomview/internal/interact"
	"roomview/internal/scenegraph"
)

var (
	baseA = scenegraph.Hex(0x336699)
	baseB = scenegraph.Hex(0x996633)
)

type fixture struct {
	cam      *camera.Camera
	resolver *Resolver
	pointer  *input.Pointer
	front    *scenegraph.Node // CHART_ABOUT at z=1, centered
	back     *scenegraph.Node // CHART_ABOUT at z=0, centered
	side     *scenegraph.Node // CHART_CONTACT off to the right
	plain    *scenegraph.Node // untagged, in front of everything
}

func color(n *scenegraph.Node) scenegraph.Color { return *n.Material.Color }

func newFixture(t *testing.T, withPlain bool) *fixture {
	t.Helper()
	mesh := scenegraph.NewQuadMesh(1, 1)
	f := &fixture{
		cam:     camera.New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}),
		pointer: &input.Pointer{},
		front:   scenegraph.NewMeshNode("front", mesh, scenegraph.NewMaterial("a", baseA)),
		back:    scenegraph.NewMeshNode("back", mesh, scenegraph.NewMaterial("b", baseB)),
		side:    scenegraph.NewMeshNode("CHART_CONTACT_side", mesh, scenegraph.NewMaterial("a", baseA)),
	}
	f.front.SetPosition(0, 0, 1)
	f.side.SetPosition(1.5, 0, 0)

	root := scenegraph.NewNode("Scene")
	group := scenegraph.NewNode("CHART_ABOUT")
	group.Add(f.front, f.back)
	root.Add(group, f.side)
	if withPlain {
		f.plain = scenegraph.NewMeshNode("plain", mesh, scenegraph.NewMaterial("p", baseA))
		f.plain.SetPosition(0, 0, 2)
		root.Add(f.plain)
	}

	set := interact.NewClassifier(interact.DefaultTags, nil).Classify(root)
	require.Equal(t, 3, set.Len())
	f.resolver = NewResolver(f.cam, DefaultHighlight, nil)
	f.resolver.SetEligible(set)
	return f
}

func TestCenterPointerHighlightsAllOverlapping(t *testing.T) {
	f := newFixture(t, false)
	fx := f.resolver.Update(1.0/60, f.pointer)

	assert.True(t, fx.Hovered)
	assert.Equal(t, CursorPointer, fx.Cursor)
	assert.Equal(t, []string{"front", "back"}, fx.Names())
	assert.Equal(t, DefaultHighlight, color(f.front))
	assert.Equal(t, DefaultHighlight, color(f.back))
	assert.Equal(t, baseA, color(f.side))
}

func TestPointerMovedOffRevertsSameFrame(t *testing.T) {
	f := newFixture(t, false)
	f.resolver.Update(0, f.pointer)
	require.Equal(t, DefaultHighlight, color(f.front))

	f.pointer.Set(-0.95, 0.95)
	fx := f.resolver.Update(0, f.pointer)
	assert.False(t, fx.Hovered)
	assert.Equal(t, CursorDefault, fx.Cursor)
	assert.Empty(t, fx.Hits)
	assert.Equal(t, baseA, color(f.front))
	assert.Equal(t, baseB, color(f.back))
	assert.Equal(t, baseA, color(f.side))
}

func TestHoverMovesBetweenNodes(t *testing.T) {
	f := newFixture(t, false)
	f.resolver.Update(0, f.pointer)

	// Project the side quad's center to find its pointer position.
	clip := f.cam.ViewProjection().Mul4x1(mgl32.Vec4{1.5, 0, 0, 1})
	f.pointer.Set(clip[0]/clip[3], clip[1]/clip[3])

	fx := f.resolver.Update(0, f.pointer)
	assert.Equal(t, []string{"CHART_CONTACT_side"}, fx.Names())
	assert.Equal(t, DefaultHighlight, color(f.side))
	assert.Equal(t, baseA, color(f.front))
	assert.Equal(t, baseB, color(f.back))
}

func TestUntaggedOccluderIsIgnored(t *testing.T) {
	f := newFixture(t, true)
	fx := f.resolver.Update(0, f.pointer)
	assert.Equal(t, []string{"front", "back"}, fx.Names())
	assert.Equal(t, baseA, color(f.plain))
}

func TestFollowsCameraPose(t *testing.T) {
	f := newFixture(t, false)
	f.cam.Position = mgl32.Vec3{1.5, 0, 5}
	f.cam.Target = mgl32.Vec3{1.5, 0, 0}
	fx := f.resolver.Update(0, f.pointer)
	assert.Equal(t, []string{"CHART_CONTACT_side"}, fx.Names())
}

func TestNodeWithoutColorDegrades(t *testing.T) {
	mesh := scenegraph.NewQuadMesh(1, 1)
	bare := scenegraph.NewMeshNode("CHART_MY_WORK_bare", mesh, &scenegraph.Material{Texture: -1})
	root := scenegraph.NewNode("Scene")
	root.Add(bare)

	cam := camera.New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	r := NewResolver(cam, DefaultHighlight, nil)
	r.SetEligible(interact.NewClassifier(interact.DefaultTags, nil).Classify(root))

	fx := r.Update(0, &input.Pointer{})
	assert.True(t, fx.Hovered, "still intersected")
	assert.Nil(t, bare.Material.Color)
}

func TestEmptySetIsHarmless(t *testing.T) {
	cam := camera.New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	r := NewResolver(cam, DefaultHighlight, nil)
	fx := r.Update(0, &input.Pointer{})
	assert.False(t, fx.Hovered)
	assert.Equal(t, CursorDefault, fx.Cursor)

	r.SetEligible(interact.NewClassifier(nil, nil).Classify(scenegraph.NewNode("Scene")))
	fx = r.Update(0, &input.Pointer{})
	assert.False(t, fx.Hovered)
}

type debugLog struct{ lines []string }

func (d *debugLog) Debugf(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func TestTransitionsAreLogged(t *testing.T) {
	f := newFixture(t, false)
	var log debugLog
	f.resolver.log = &log

	f.resolver.Update(0, f.pointer)
	f.resolver.Update(0, f.pointer)
	f.pointer.Set(-0.95, 0.95)
	f.resolver.Update(0, f.pointer)
	assert.Equal(t, []string{"hover enter: front", "hover leave"}, log.lines)
}

func TestSmallGeometryCloseToTheEye(t *testing.T) {
	for _, size := range []float32{1, 1e-2, 1e-3, 2e-4} {
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			quad := scenegraph.NewMeshNode("CHART_ABOUT_tiny", scenegraph.NewQuadMesh(size, size), scenegraph.NewMaterial("t", baseA))
			quad.SetPosition(0.2*size, 0.1*size, 0) // keep the center ray off the diagonal
			root := scenegraph.NewNode("Scene").Add(quad)
			set := interact.NewClassifier(interact.DefaultTags, nil).Classify(root)
			require.Equal(t, 1, set.Len())

			cam := camera.New(mgl32.Vec3{0, 0, 0.01}, mgl32.Vec3{})
			r := NewResolver(cam, DefaultHighlight, nil)
			r.SetEligible(set)
			fx := r.Update(0, &input.Pointer{})

			require.True(t, fx.Hovered)
			require.Len(t, fx.Hits, 1)
			assert.InDelta(t, 0.01, fx.Hits[0].Distance, 1e-5)
			assert.Equal(t, DefaultHighlight, color(quad))
		})
	}
}
