package frame

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"spincube/internal/bounce"
	"spincube/internal/config"
	"spincube/internal/interaction"
	"spincube/internal/logger"
	"spincube/internal/physics"
)

type fakeCube struct {
	rx, ry, rz float64
	scale      float64
	color      colorful.Color
	colorSets  int
}

func (c *fakeCube) SetRotation(x, y, z float64) { c.rx, c.ry, c.rz = x, y, z }
func (c *fakeCube) SetScale(s float64)          { c.scale = s }
func (c *fakeCube) SetColor(col colorful.Color) { c.color = col; c.colorSets++ }

type fakeSky struct {
	time, checker, warpAmount, warpFrequency, warpSpeed float64
	uvX, uvY                                            float64
}

func (s *fakeSky) SetTime(t float64)          { s.time = t }
func (s *fakeSky) SetCheckerScale(v float64)  { s.checker = v }
func (s *fakeSky) SetWarpAmount(v float64)    { s.warpAmount = v }
func (s *fakeSky) SetWarpFrequency(v float64) { s.warpFrequency = v }
func (s *fakeSky) SetWarpSpeed(v float64)     { s.warpSpeed = v }
func (s *fakeSky) SetUVOffset(x, y float64)   { s.uvX, s.uvY = x, y }

// fakeEnv records each request and the sky warp it would render.
type fakeEnv struct {
	sky   *fakeSky
	calls []float64
	warps []float64
}

func (e *fakeEnv) UpdateEnvironmentMap(elapsed float64) {
	e.calls = append(e.calls, elapsed)
	e.warps = append(e.warps, e.sky.warpAmount)
}

type rig struct {
	cfg   *config.Config
	ctx   *interaction.Context
	disp  *interaction.Dispatcher
	sched *Scheduler
	cube  *fakeCube
	sky   *fakeSky
	env   *fakeEnv
	now   float64
}

func newRig(t *testing.T) *rig {
	t.Helper()
	sky := &fakeSky{}
	r := &rig{cfg: config.Default(), ctx: interaction.NewContext(), cube: &fakeCube{}, sky: sky, env: &fakeEnv{sky: sky}}
	log := logger.Discard()
	r.disp = interaction.NewDispatcher(r.ctx, r.cfg, func() float64 { return r.now }, log)
	r.sched = New(r.ctx, r.cfg, physics.SpringModel{}, r.cube, r.sky, r.env, log)
	return r
}

// run ticks n frames at 1/60 s spacing starting after the current time.
func (r *rig) run(n int) Stats {
	var st Stats
	for i := 0; i < n; i++ {
		r.now += 1.0 / 60
		st = r.sched.Tick(r.now)
	}
	return st
}

func TestAutoSpinAccumulates(t *testing.T) {
	r := newRig(t)
	r.run(100)
	if math.Abs(r.cube.rx-100*r.cfg.SpinSpeedX) > 1e-12 || math.Abs(r.cube.ry-100*r.cfg.SpinSpeedY) > 1e-12 {
		t.Fatalf("expected auto-spin rotation, got %v %v", r.cube.rx, r.cube.ry)
	}
	if r.cube.rz != 0 || r.cube.scale != 1 {
		t.Fatalf("unexpected z rotation or scale: %+v", r.cube)
	}
}

func TestEnvMapThrottled(t *testing.T) {
	r := newRig(t)
	r.run(60)
	n := len(r.env.calls)
	// 1s at a 1/20s interval: the first tick plus one request per interval boundary crossed.
	if n < 15 || n > 21 {
		t.Fatalf("expected about 20 throttled env updates in one second, got %d", n)
	}
	for i := 1; i < n; i++ {
		if r.env.calls[i]-r.env.calls[i-1] <= r.cfg.EnvMapUpdateInterval {
			t.Fatalf("env updates %v and %v closer than the interval", r.env.calls[i-1], r.env.calls[i])
		}
	}
}

func TestBounceForcesEnvMapEveryFrame(t *testing.T) {
	r := newRig(t)
	r.run(1)
	before := len(r.env.calls)
	r.disp.OnPointerDown(10, 10)
	frames := 10
	r.run(frames)
	if got := len(r.env.calls) - before; got < frames {
		t.Fatalf("expected at least one env update per bouncing frame, got %d in %d frames", got, frames)
	}
	if r.sky.warpAmount <= r.cfg.WarpAmount || r.sky.warpSpeed <= r.cfg.WarpSpeed {
		t.Fatalf("expected bounce to perturb the sky, got %+v", r.sky)
	}
	if r.cube.scale <= 1 || r.cube.colorSets == 0 {
		t.Fatalf("expected bounce to grow and tint the cube, got %+v", r.cube)
	}
}

func TestHeldEnvMapCapturesPerturbedSky(t *testing.T) {
	r := newRig(t)
	r.disp.OnPointerDown(0, 0)
	r.run(120)
	if r.ctx.Bounce.Phase() != bounce.Held {
		t.Fatalf("expected held, got %v", r.ctx.Bounce.Phase())
	}

	before := len(r.env.warps)
	r.run(60)
	held := r.env.warps[before:]
	if len(held) < 15 {
		t.Fatalf("expected throttled env updates while held, got %d", len(held))
	}
	for i, w := range held {
		if w <= r.cfg.WarpAmount || w != r.sky.warpAmount {
			t.Fatalf("env update %d rendered warp %v, expected the held warp %v", i, w, r.sky.warpAmount)
		}
	}
}

func TestOneEnvRequestPerTick(t *testing.T) {
	r := newRig(t)
	r.disp.OnPointerDown(0, 0)
	// The first tick is both due by the interval and forced by the bounce.
	if st := r.run(1); st.EnvUpdates != 1 {
		t.Fatalf("expected one coalesced request, got %d", st.EnvUpdates)
	}
	if st := r.run(1); st.EnvUpdates != 1 {
		t.Fatalf("expected a forced request while bouncing in, got %d", st.EnvUpdates)
	}
}

func TestBounceCompletionRestoresScrollScale(t *testing.T) {
	r := newRig(t)
	r.cfg.ScrollSensitivity = 0.2
	r.disp.OnWheel(-1)
	r.run(300)
	if math.Abs(r.cube.scale-1.2) > 1e-6 {
		t.Fatalf("expected scroll scale 1.2, got %v", r.cube.scale)
	}

	r.disp.OnPointerDown(0, 0)
	r.run(5)
	r.disp.OnPointerUp()

	completed := false
	for i := 0; i < 200 && !completed; i++ {
		completed = r.run(1).Bounce.Completed
	}
	if !completed {
		t.Fatalf("expected bounce to complete")
	}
	if math.Abs(r.cube.scale-r.ctx.Scroll.Current) > 1e-12 {
		t.Fatalf("expected scale to return to the scroll scale %v, got %v", r.ctx.Scroll.Current, r.cube.scale)
	}
	if config.HexOf(r.cube.color) != r.cfg.CubeColor {
		t.Fatalf("expected cube color restored, got %#x", config.HexOf(r.cube.color))
	}
	if r.sky.warpAmount != r.cfg.WarpAmount || r.sky.warpSpeed != r.cfg.WarpSpeed {
		t.Fatalf("expected sky warp restored, got %+v", r.sky)
	}
	if r.ctx.Bounce.Phase() != bounce.Idle {
		t.Fatalf("expected idle after completion")
	}
}

func TestHeldScaleComposesWithScroll(t *testing.T) {
	r := newRig(t)
	r.cfg.ScrollSensitivity = 0.5
	r.disp.OnWheel(1)
	r.disp.OnPointerDown(0, 0)
	r.run(600)
	if r.ctx.Bounce.Phase() != bounce.Held {
		t.Fatalf("expected held, got %v", r.ctx.Bounce.Phase())
	}
	want := r.ctx.Scroll.Current * r.cfg.BounceMaxScale
	if math.Abs(r.cube.scale-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, r.cube.scale)
	}
}

func TestClampResetsParallax(t *testing.T) {
	r := newRig(t)
	r.disp.OnPointerDown(0, 0)
	r.disp.OnPointerMove(40, 30)
	r.run(2)
	if r.sky.uvX == 0 && r.sky.uvY == 0 {
		t.Fatalf("expected parallax while dragging")
	}
	r.disp.OnPointerUp()

	rested := false
	for i := 0; i < 5000 && !rested; i++ {
		rested = r.run(1).Rested
	}
	if !rested {
		t.Fatalf("expected the spin to come to rest")
	}
	if r.ctx.Spin != (physics.SpinState{}) || r.sky.uvX != 0 || r.sky.uvY != 0 {
		t.Fatalf("expected zeroed spin and parallax, got %+v uv=(%v,%v)", r.ctx.Spin, r.sky.uvX, r.sky.uvY)
	}
}

func TestSetSpinModel(t *testing.T) {
	r := newRig(t)
	r.sched.SetSpinModel(physics.InertiaModel{})
	if r.sched.SpinModel().Name() != config.SpinInertia {
		t.Fatalf("expected inertia model")
	}
	r.ctx.Spin.Velocity = physics.Vec2{X: 0.1}
	r.run(1)
	if r.ctx.Spin.Target != r.ctx.Spin.Current {
		t.Fatalf("expected inertia model to sync target, got %+v", r.ctx.Spin)
	}
}
