// Package debug draws the optional on-screen overlays: frame rate, heap
// usage and the hover state of the room.
package debug

import (
	"fmt"
	"runtime"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
	logTail        = 6
)

// Debug holds runtime debugging features. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowHover    bool
	ShowLog      bool

	// LogLines supplies the recent log lines shown by the log overlay.
	LogLines func() []string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
	lastLog      []string

	clickable int
	loading   bool
	hovered   []string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetStats records the room state shown by the hover overlay. Call once per frame.
func (d *Debug) SetStats(clickable int, loading bool, hovered []string) {
	d.clickable = clickable
	d.loading = loading
	d.hovered = append(d.hovered[:0], hovered...)
}

// HoverText returns the hover overlay lines.
func (d *Debug) HoverText() []string {
	if d.loading {
		return []string{"Loading room..."}
	}
	lines := []string{fmt.Sprintf("Clickable: %d", d.clickable)}
	if len(d.hovered) > 0 {
		lines = append(lines, "Hover: "+strings.Join(d.hovered, ", "))
	}
	return lines
}

// Draw renders any enabled debug overlays at the top-right, one line each.
// FPS and memory text is only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}
	if d.ShowLog && d.lastLog == nil {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, y, rl.Green)
		y += lineHeight
	}
	if d.ShowHover {
		for _, line := range d.HoverText() {
			drawRight(line, y, rl.RayWhite)
			y += lineHeight
		}
	}
	if d.ShowLog && d.LogLines != nil {
		if update {
			d.lastLog = tail(d.LogLines(), logTail)
		}
		y := int32(rl.GetScreenHeight()) - padding - int32(len(d.lastLog))*lineHeight
		for _, line := range d.lastLog {
			rl.DrawText(line, padding, y, fontSize, rl.LightGray)
			y += lineHeight
		}
	}
}

func tail(lines []string, n int) []string {
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return append([]string{}, lines...)
}

func drawRight(text string, y int32, c rl.Color) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(rl.GetScreenWidth())-w-padding, y, fontSize, c)
}
