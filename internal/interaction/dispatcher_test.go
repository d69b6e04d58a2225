package interaction

import (
	"math"
	"strings"
	"testing"

	"spincube/internal/bounce"
	"spincube/internal/config"
	"spincube/internal/logger"
	"spincube/internal/physics"
)

type fakeClock struct{ now float64 }

func (f *fakeClock) read() float64 { return f.now }

func newDispatcher(cfg *config.Config) (*Dispatcher, *Context, *fakeClock) {
	ctx := NewContext()
	clk := &fakeClock{}
	return NewDispatcher(ctx, cfg, clk.read, logger.Discard()), ctx, clk
}

func TestDragScenario(t *testing.T) {
	cfg := config.Default()
	d, ctx, clk := newDispatcher(cfg)

	d.OnPointerDown(100, 100)
	if !ctx.MouseDown || !ctx.Dragging {
		t.Fatalf("expected pointer down to start a drag")
	}
	if ctx.Bounce.Phase() != bounce.BouncingIn || ctx.Bounce.StartTime() != 0 {
		t.Fatalf("expected bounce-in at pointer down, got %v", ctx.Bounce.Phase())
	}

	d.OnPointerMove(150, 130)
	if ctx.Spin.Target.Y != 50*cfg.DragSensitivity || ctx.Spin.Target.X != 30*cfg.DragSensitivity {
		t.Fatalf("unexpected spin target %+v", ctx.Spin.Target)
	}

	clk.now = cfg.BounceDuration
	ctx.Bounce.Update(clk.now, ctx.MouseDown, cfg)
	if ctx.Bounce.Phase() != bounce.Held {
		t.Fatalf("expected held while pointer down, got %v", ctx.Bounce.Phase())
	}

	clk.now = 2
	d.OnPointerUp()
	if ctx.Dragging || ctx.MouseDown {
		t.Fatalf("expected drag to end")
	}
	if ctx.Bounce.Phase() != bounce.BouncingOut || ctx.Bounce.StartTime() != 2 {
		t.Fatalf("expected bounce-out at pointer up, got %v at %v", ctx.Bounce.Phase(), ctx.Bounce.StartTime())
	}
}

func TestThrowUsesLastMoveOnly(t *testing.T) {
	cfg := config.Default()
	d, ctx, _ := newDispatcher(cfg)
	ctx.Spin.Velocity = physics.Vec2{X: 0.01, Y: -0.02}
	prev := ctx.Spin.Velocity

	d.OnPointerDown(0, 0)
	for i := 1; i <= 5; i++ {
		d.OnPointerMove(float64(i*4), float64(i*3))
	}
	d.OnPointerUp()

	want := prev.Add(physics.Vec2{X: 3, Y: 4}.Scale(cfg.DragSensitivity * cfg.ThrowVelocityFactor))
	if math.Abs(ctx.Spin.Velocity.X-want.X) > 1e-15 || math.Abs(ctx.Spin.Velocity.Y-want.Y) > 1e-15 {
		t.Fatalf("expected velocity %+v, got %+v", want, ctx.Spin.Velocity)
	}
	if ctx.LatestThrow != (physics.Vec2{}) {
		t.Fatalf("expected throw to be consumed, got %+v", ctx.LatestThrow)
	}

	released := ctx.Spin.Velocity
	d.OnPointerUp()
	if ctx.Spin.Velocity != released {
		t.Fatalf("expected a second release to add nothing")
	}
}

func TestPointerOutReleases(t *testing.T) {
	cfg := config.Default()
	d, ctx, clk := newDispatcher(cfg)

	d.OnPointerDown(10, 10)
	d.OnPointerMove(30, 20)
	throw := ctx.LatestThrow
	if throw == (physics.Vec2{}) {
		t.Fatalf("expected a throw velocity from the move")
	}

	clk.now = 0.2
	d.OnPointerOut()
	if ctx.Dragging || ctx.MouseDown {
		t.Fatalf("expected pointer out to end the drag")
	}
	if ctx.Spin.Velocity != throw || ctx.LatestThrow != (physics.Vec2{}) {
		t.Fatalf("expected the throw %+v merged into velocity, got %+v", throw, ctx.Spin.Velocity)
	}
	if ctx.Bounce.Phase() != bounce.BouncingIn {
		t.Fatalf("expected the running bounce-in to continue, got %v", ctx.Bounce.Phase())
	}

	clk.now = 2
	ctx.Bounce.Update(clk.now, ctx.MouseDown, cfg)
	d.OnPointerOut()
	if ctx.Bounce.Phase() == bounce.Held {
		t.Fatalf("expected no held bounce after the pointer left")
	}
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	d, ctx, _ := newDispatcher(config.Default())
	d.OnPointerMove(40, 40)
	if ctx.Spin.Target != (physics.Vec2{}) || ctx.LatestThrow != (physics.Vec2{}) {
		t.Fatalf("expected no change, got %+v", ctx)
	}
}

func TestPointerDownResetsStaleThrow(t *testing.T) {
	d, ctx, _ := newDispatcher(config.Default())
	d.OnPointerDown(0, 0)
	d.OnPointerMove(10, 0)
	d.OnPointerOut()
	v := ctx.Spin.Velocity

	d.OnPointerDown(10, 0)
	d.OnPointerUp()
	if ctx.Spin.Velocity != v {
		t.Fatalf("expected a click without movement to throw nothing, got %+v", ctx.Spin.Velocity)
	}
}

type fakeHit struct{ hit bool }

func (f fakeHit) HitCube(x, y float64) bool { return f.hit }

func TestHitGatedBounce(t *testing.T) {
	cfg := config.Default()
	cfg.BounceOnAnyClick = false

	d, ctx, _ := newDispatcher(cfg)
	d.OnPointerDown(1, 1)
	if ctx.Bounce.Phase() != bounce.Idle || !ctx.Dragging {
		t.Fatalf("expected drag without bounce when no hit tester is installed")
	}

	d, ctx, _ = newDispatcher(cfg)
	d.SetHitTester(fakeHit{false})
	d.OnPointerDown(1, 1)
	if ctx.Bounce.Phase() != bounce.Idle {
		t.Fatalf("expected a miss not to bounce")
	}

	d, ctx, _ = newDispatcher(cfg)
	d.SetHitTester(fakeHit{true})
	d.OnPointerDown(1, 1)
	if ctx.Bounce.Phase() != bounce.BouncingIn {
		t.Fatalf("expected a hit to bounce")
	}
}

func TestWheelUpdatesZoom(t *testing.T) {
	cfg := config.Default()
	cfg.ScrollSensitivity = 0.001
	d, ctx, _ := newDispatcher(cfg)
	for i := 0; i < 10; i++ {
		d.OnWheel(-120)
	}
	if math.Abs(ctx.Scroll.Target-1.01) > 1e-12 {
		t.Fatalf("expected target 1.01, got %v", ctx.Scroll.Target)
	}
	if math.Abs(ctx.BackgroundZoom-1/(0.7+0.3*ctx.Scroll.Target)) > 1e-15 {
		t.Fatalf("unexpected zoom %v", ctx.BackgroundZoom)
	}
}

type fakeResizer struct{ w, h, calls int }

func (f *fakeResizer) Resize(w, h int) { f.w, f.h, f.calls = w, h, f.calls+1 }

func TestResize(t *testing.T) {
	d, _, _ := newDispatcher(config.Default())
	d.OnResize(800, 600)

	r := &fakeResizer{}
	d.SetResizer(r)
	d.OnResize(0, 600)
	d.OnResize(1024, 768)
	if r.calls != 1 || r.w != 1024 || r.h != 768 {
		t.Fatalf("expected one resize to 1024x768, got %+v", r)
	}
}

func TestSnapshot(t *testing.T) {
	ctx := NewContext()
	ctx.BaseSpin = physics.Vec2{X: 1, Y: 2}
	ctx.Spin.Current = physics.Vec2{X: 0.5, Y: 0.25}
	s := ctx.Snapshot()
	if s.Rotation != (physics.Vec2{X: 1.5, Y: 2.25}) || s.ScrollScale != 1 || s.BouncePhase != bounce.Idle {
		t.Fatalf("unexpected snapshot %+v", s)
	}
}

func TestSnapshotLines(t *testing.T) {
	s := Snapshot{
		Rotation:    physics.Vec2{X: 1.5, Y: -0.25},
		Dragging:    true,
		MouseDown:   true,
		ScrollScale: 1.2,
		Zoom:        0.9,
		BouncePhase: bounce.Held,
		BounceScale: 1.3,
	}
	got := strings.Join(s.Lines(), "\n")
	for _, want := range []string{"rot: 1.500 -0.250", "drag: true down: true", "scroll: 1.200 zoom: 0.900", "bounce: held 1.300"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in\n%s", want, got)
		}
	}
}
