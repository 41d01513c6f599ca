// Package graphics owns the raylib window and main loop.
package graphics

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window configures the viewer window.
type Window struct {
	Width, Height int
	Title         string
	TargetFPS     int
	Resizable     bool
	Background    color.RGBA
}

// Run opens the window and runs the main loop until it is closed. Each frame
// it calls update, then clears to the background color and calls draw.
// Escape closes the window.
func Run(w Window, update, draw func()) {
	var flags uint32 = rl.FlagMsaa4xHint | rl.FlagVsyncHint
	if w.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(w.TargetFPS))
	bg := rl.NewColor(w.Background.R, w.Background.G, w.Background.B, 255)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		draw()
		rl.EndDrawing()
	}
}
