package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// PointerHandler receives the DOM-style events Input derives from raylib's polled state.
type PointerHandler interface {
	OnPointerDown(x, y float64)
	OnPointerMove(x, y float64)
	OnPointerUp()
	OnPointerOut()
	OnWheel(deltaY float64)
	OnResize(width, height int)
}

// wheelPixels converts one raylib wheel notch to a DOM deltaY magnitude.
const wheelPixels = 100

// Input turns raylib's per-frame input state into events. Call Poll once per frame before the tick.
type Input struct {
	last     rl.Vector2
	down     bool
	onScreen bool
}

func NewInput() *Input {
	return &Input{onScreen: true}
}

func (in *Input) Poll(h PointerHandler) {
	if rl.IsWindowResized() {
		h.OnResize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	pos := rl.GetMousePosition()
	onScreen := rl.IsCursorOnScreen()
	if in.onScreen && !onScreen && in.down {
		in.down = false
		h.OnPointerOut()
	}
	in.onScreen = onScreen

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		in.down = true
		h.OnPointerDown(float64(pos.X), float64(pos.Y))
	} else if pos != in.last {
		h.OnPointerMove(float64(pos.X), float64(pos.Y))
	}
	if in.down && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		in.down = false
		h.OnPointerUp()
	}
	in.last = pos

	// raylib reports wheel-up as positive; DOM deltaY is negative for wheel-up.
	if w := rl.GetMouseWheelMoveV().Y; w != 0 {
		h.OnWheel(float64(-w * wheelPixels))
	}
}
