package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spincube/internal/interaction"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// StateInfo is what the state overlay shows.
type StateInfo struct {
	Snapshot   interaction.Snapshot
	SpinModel  string
	EnvDropped int
}

// Debug holds the runtime overlays (FPS, memory, interaction state). All are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowState    bool

	state        func() StateInfo
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastState    []string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

func (d *Debug) SetShowFPS(show bool)      { d.ShowFPS = show }
func (d *Debug) SetShowMemAlloc(show bool) { d.ShowMemAlloc = show }
func (d *Debug) SetShowState(show bool)    { d.ShowState = show }

// SetStateSource sets the callback sampled for the state overlay. It runs on the frame thread.
func (d *Debug) SetStateSource(fn func() StateInfo) {
	d.state = fn
}

// SetFont sets the overlay font. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// StateLines formats the interaction state followed by the scheduler and worker counters.
func StateLines(info StateInfo) []string {
	lines := []string{fmt.Sprintf("model: %s", info.SpinModel)}
	lines = append(lines, info.Snapshot.Lines()...)
	return append(lines, fmt.Sprintf("env dropped: %d", info.EnvDropped))
}

// Draw renders the enabled overlays at the top-right, stacked in order FPS, memory, state.
// Text is only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") || (d.ShowState && d.lastState == nil) {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.drawRight(d.lastMemText, y, rl.Green)
		y += lineHeight
	}
	if d.ShowState && d.state != nil {
		if update {
			d.lastState = StateLines(d.state())
		}
		for _, line := range d.lastState {
			d.drawRight(line, y, rl.SkyBlue)
			y += lineHeight
		}
	}
}

func (d *Debug) drawRight(text string, y int32, c rl.Color) {
	if text == "" {
		return
	}
	screenW := float32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fontSize)
		pos := rl.NewVector2(screenW-rl.MeasureTextEx(d.font, text, sz, 1).X-padding, float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, c)
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(screenW)-w-padding, y, fontSize, c)
}
