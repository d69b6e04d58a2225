package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

// Run opens a resizable window and runs the main loop at fps frames per second. Each frame it
// calls update with the seconds elapsed since the window opened, then clears the screen and
// calls draw. The spin tuning assumes a steady frame rate, so fps is also the physics rate.
// unload runs after the last frame while the GL context still exists.
// ESC toggles the terminal; close via the window button.
func Run(title string, fps int32, update func(elapsed float64), draw func(), unload func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(defaultWidth, defaultHeight, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC is used to toggle terminal, not to quit
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		update(rl.GetTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	unload()
}
