package interaction

import (
	"fmt"

	"spincube/internal/bounce"
	"spincube/internal/physics"
)

// Context is the interaction state shared by the event handlers and the frame tick.
// It has a single writer: handlers and Tick run on the frame thread, one at a time.
// Nothing here is safe to read from another goroutine; use a snapshot instead.
type Context struct {
	// BaseSpin accumulates the constant auto-spin and is never reset.
	BaseSpin physics.Vec2
	Spin     physics.SpinState

	// Dragging is true while the pointer is down and moves update the spin target.
	// MouseDown is true from pointer down to pointer up regardless of movement.
	Dragging  bool
	MouseDown bool

	Previous    physics.Vec2 // last pointer position seen while dragging
	LatestThrow physics.Vec2 // velocity the last move would impart on release

	Scroll         physics.ScrollState
	BackgroundZoom float64

	Bounce *bounce.Machine
}

// NewContext returns a context at rest: no offset, unit scroll scale and zoom, idle bounce.
func NewContext() *Context {
	return &Context{
		Scroll:         physics.NewScrollState(),
		BackgroundZoom: 1,
		Bounce:         bounce.New(),
	}
}

// Rotation is the final cube rotation about X and Y.
func (c *Context) Rotation() physics.Vec2 {
	return c.BaseSpin.Add(c.Spin.Current)
}

// Snapshot is a value copy of the state for readers off the frame thread (overlay, commands).
type Snapshot struct {
	Rotation    physics.Vec2
	Spin        physics.SpinState
	Dragging    bool
	MouseDown   bool
	ScrollScale float64
	Zoom        float64
	BouncePhase bounce.Phase
	BounceScale float64
}

func (c *Context) Snapshot() Snapshot {
	return Snapshot{
		Rotation:    c.Rotation(),
		Spin:        c.Spin,
		Dragging:    c.Dragging,
		MouseDown:   c.MouseDown,
		ScrollScale: c.Scroll.Current,
		Zoom:        c.BackgroundZoom,
		BouncePhase: c.Bounce.Phase(),
		BounceScale: c.Bounce.Scale(),
	}
}

// Lines formats the snapshot for the state overlay, one quantity per line.
func (s Snapshot) Lines() []string {
	return []string{
		fmt.Sprintf("rot: %.3f %.3f", s.Rotation.X, s.Rotation.Y),
		fmt.Sprintf("offset: %.4f %.4f -> %.4f %.4f", s.Spin.Current.X, s.Spin.Current.Y, s.Spin.Target.X, s.Spin.Target.Y),
		fmt.Sprintf("vel: %.5f %.5f", s.Spin.Velocity.X, s.Spin.Velocity.Y),
		fmt.Sprintf("drag: %t down: %t", s.Dragging, s.MouseDown),
		fmt.Sprintf("scroll: %.3f zoom: %.3f", s.ScrollScale, s.Zoom),
		fmt.Sprintf("bounce: %s %.3f", s.BouncePhase, s.BounceScale),
	}
}
