// Package hover recomputes, once per frame, which interactive nodes lie
// under the pointer and tints them.
package hover

import (
	"roomview/internal/camera"
	"roomview/internal/input"
	"roomview/internal/interact"
	"roomview/internal/pick"
	"roomview/internal/scenegraph"
)

// DefaultHighlight is the color applied to hovered nodes.
var DefaultHighlight = scenegraph.Hex(0xff0000)

// Cursor is the pointer affordance the host should display.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Effects is the outcome of one Update.
type Effects struct {
	// Hits are the intersected nodes, nearest first. The slice is reused by
	// the next Update.
	Hits    []pick.Hit
	Hovered bool
	Cursor  Cursor
}

// Names returns the names of the hit nodes, nearest first.
func (e Effects) Names() []string {
	out := make([]string, len(e.Hits))
	for i, h := range e.Hits {
		out[i] = h.Node.Name
	}
	return out
}

// Logger receives hover transitions at debug level.
type Logger interface {
	Debugf(format string, args ...any)
}

// Resolver owns the per-frame hover pass for one scene.
type Resolver struct {
	cam       *camera.Camera
	set       *interact.Set
	roots     []*scenegraph.Node
	highlight scenegraph.Color
	rc        *pick.Raycaster
	log       Logger
	hovered   bool
}

// NewResolver returns a resolver picking through cam. It has no
// interactive nodes until SetEligible is called.
func NewResolver(cam *camera.Camera, highlight scenegraph.Color, log Logger) *Resolver {
	return &Resolver{
		cam:       cam,
		highlight: highlight,
		rc:        pick.NewRaycaster(),
		log:       log,
	}
}

// SetEligible replaces the interactive node set.
func (r *Resolver) SetEligible(set *interact.Set) {
	r.set = set
	r.roots = r.roots[:0]
	for _, it := range set.Items() {
		r.roots = append(r.roots, it.Node)
	}
}

// Eligible returns the current interactive node set, which may be nil.
func (r *Resolver) Eligible() *interact.Set {
	return r.set
}

// Update casts a ray through the pointer using the camera's current pose,
// restores every interactive node to its baseline, then tints every hit
// node that has a color. dt is the frame time in seconds.
func (r *Resolver) Update(dt float32, p *input.Pointer) Effects {
	var hits []pick.Hit
	if r.set.Len() > 0 {
		x, y := p.Get()
		hits = r.rc.Intersect(r.cam.Ray(x, y), r.roots)
	}

	for _, it := range r.set.Items() {
		it.Restore()
	}
	for _, h := range hits {
		h.Node.Material.SetColor(r.highlight)
	}

	fx := Effects{Hits: hits, Hovered: len(hits) > 0}
	if fx.Hovered {
		fx.Cursor = CursorPointer
	}
	if fx.Hovered != r.hovered && r.log != nil {
		if fx.Hovered {
			r.log.Debugf("hover enter: %s", hits[0].Node.Name)
		} else {
			r.log.Debugf("hover leave")
		}
	}
	r.hovered = fx.Hovered
	return fx
}
