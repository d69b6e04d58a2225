package interaction

import (
	"spincube/internal/background"
	"spincube/internal/config"
	"spincube/internal/logger"
	"spincube/internal/physics"
)

// Clock returns elapsed seconds on the same timeline the frame tick uses.
type Clock func() float64

// HitTester reports whether a screen position lands on the cube.
type HitTester interface {
	HitCube(x, y float64) bool
}

// Resizer is told about window size changes (camera aspect, render targets).
type Resizer interface {
	Resize(width, height int)
}

// Dispatcher turns pointer, wheel and window events into Context mutations and bounce triggers.
// Handlers are synchronous and run on the frame thread; there is no queuing.
type Dispatcher struct {
	ctx   *Context
	cfg   *config.Config
	clock Clock
	log   *logger.Logger

	hit     HitTester
	resizer Resizer
}

// NewDispatcher returns a dispatcher writing to ctx. cfg is read on every event, so changes apply immediately.
func NewDispatcher(ctx *Context, cfg *config.Config, clock Clock, log *logger.Logger) *Dispatcher {
	return &Dispatcher{ctx: ctx, cfg: cfg, clock: clock, log: log}
}

// SetHitTester installs the cube hit test used when BounceOnAnyClick is off.
func (d *Dispatcher) SetHitTester(h HitTester) { d.hit = h }

// SetResizer installs the collaborator told about window resizes.
func (d *Dispatcher) SetResizer(r Resizer) { d.resizer = r }

// OnPointerDown starts a drag at (x, y) and triggers a bounce-in.
// With BounceOnAnyClick off the bounce needs a cube hit; the drag starts either way.
func (d *Dispatcher) OnPointerDown(x, y float64) {
	c := d.ctx
	c.MouseDown = true
	c.Dragging = true
	c.Previous = physics.Vec2{X: x, Y: y}
	c.LatestThrow = physics.Vec2{}

	if !d.cfg.BounceOnAnyClick && (d.hit == nil || !d.hit.HitCube(x, y)) {
		return
	}
	c.Bounce.TriggerIn(d.clock())
}

// OnPointerMove pushes the spin target by the drag delta and records the throw velocity.
func (d *Dispatcher) OnPointerMove(x, y float64) {
	c := d.ctx
	if !c.Dragging {
		return
	}
	pos := physics.Vec2{X: x, Y: y}
	delta := pos.Sub(c.Previous)
	c.Spin.Target = c.Spin.Target.Add(physics.DragOffset(delta, d.cfg))
	c.LatestThrow = physics.ThrowVelocity(delta, d.cfg)
	c.Previous = pos
}

// OnPointerUp ends the drag, throws the cube with the last move's velocity and
// starts the bounce-out if the cube is grown and no animation is running.
func (d *Dispatcher) OnPointerUp() {
	c := d.ctx
	if c.Dragging {
		c.Spin.Velocity = c.Spin.Velocity.Add(c.LatestThrow)
		c.LatestThrow = physics.Vec2{}
	}
	c.Dragging = false
	c.MouseDown = false
	c.Bounce.TriggerOut(d.clock())
}

// OnPointerOut is a pointer up: the pointer left the window.
func (d *Dispatcher) OnPointerOut() {
	d.OnPointerUp()
}

// OnWheel steps the scroll target (negative deltaY zooms in) and recomputes the background zoom.
func (d *Dispatcher) OnWheel(deltaY float64) {
	c := d.ctx
	c.Scroll.Nudge(deltaY, d.cfg)
	c.BackgroundZoom = background.ZoomFactor(c.Scroll.Target)
}

// OnResize forwards a new window size. Degenerate sizes (minimized window) are ignored.
func (d *Dispatcher) OnResize(width, height int) {
	if width <= 0 || height <= 0 || d.resizer == nil {
		return
	}
	d.resizer.Resize(width, height)
	d.log.Logf("window resized to %dx%d", width, height)
}
