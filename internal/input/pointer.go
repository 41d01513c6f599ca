// Package input holds pointer state shared between event handling and the
// per-frame hover pass.
package input

import "sync"

// Pointer is the last known pointer position in normalized device
// coordinates: x and y in [-1, 1], y pointing up. The zero value reads as
// the center of the viewport. A Pointer is safe for concurrent use; the
// pair is always read and written together.
type Pointer struct {
	mu   sync.Mutex
	x, y float32
	seen bool
}

// Set stores a position already in normalized device coordinates.
func (p *Pointer) Set(x, y float32) {
	p.mu.Lock()
	p.x, p.y, p.seen = x, y, true
	p.mu.Unlock()
}

// SetPixels stores a position given in pixels from the top-left corner of a
// viewport of the given size. Degenerate viewports are ignored.
func (p *Pointer) SetPixels(px, py float32, width, height int) {
	x, y, ok := Normalize(px, py, width, height)
	if !ok {
		return
	}
	p.Set(x, y)
}

// Get returns the current position.
func (p *Pointer) Get() (x, y float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y
}

// Seen reports whether a position has ever been stored.
func (p *Pointer) Seen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seen
}

// Normalize converts pixel coordinates with a top-left origin into
// normalized device coordinates with a bottom-left origin.
func Normalize(px, py float32, width, height int) (x, y float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	x = px/float32(width)*2 - 1
	y = -(py/float32(height))*2 + 1
	return x, y, true
}
