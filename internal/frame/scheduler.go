package frame

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"spincube/internal/background"
	"spincube/internal/bounce"
	"spincube/internal/config"
	"spincube/internal/interaction"
	"spincube/internal/logger"
	"spincube/internal/physics"
)

// Cube is the render collaborator's cube: rotation in radians, uniform scale and tint.
type Cube interface {
	SetRotation(x, y, z float64)
	SetScale(s float64)
	SetColor(c colorful.Color)
}

// EnvironmentMapper regenerates the reflection map from the sky's current uniforms.
// It is expensive; the scheduler throttles it except during a bounce animation.
type EnvironmentMapper interface {
	UpdateEnvironmentMap(elapsed float64)
}

// Stats describes what one Tick did.
type Stats struct {
	Bounce     bounce.Frame
	EnvUpdates int  // environment map requests issued this tick, at most one
	Rested     bool // the clamp pass zeroed the spin state
}

// Scheduler runs the per-frame pipeline: auto-spin, spin model, rotation, background,
// throttled environment map, scroll, scale, bounce and the clamp pass, in that order.
type Scheduler struct {
	ctx   *interaction.Context
	cfg   *config.Config
	model physics.SpinModel
	log   *logger.Logger

	cube Cube
	sky  background.SkyMaterial
	env  EnvironmentMapper

	lastEnvUpdate float64
	uniforms      background.Uniforms
}

// New returns a scheduler. The first Tick always requests an environment map.
func New(ctx *interaction.Context, cfg *config.Config, model physics.SpinModel, cube Cube, sky background.SkyMaterial, env EnvironmentMapper, log *logger.Logger) *Scheduler {
	return &Scheduler{
		ctx:           ctx,
		cfg:           cfg,
		model:         model,
		log:           log,
		cube:          cube,
		sky:           sky,
		env:           env,
		lastEnvUpdate: math.Inf(-1),
	}
}

// SetSpinModel swaps the spin strategy. The spin state carries over unchanged.
func (s *Scheduler) SetSpinModel(m physics.SpinModel) {
	s.log.Logf("spin model: %s -> %s", s.model.Name(), m.Name())
	s.model = m
}

func (s *Scheduler) SpinModel() physics.SpinModel { return s.model }

// Uniforms returns the sky uniforms pushed by the last Tick.
func (s *Scheduler) Uniforms() background.Uniforms { return s.uniforms }

// Tick advances one frame at elapsed seconds.
func (s *Scheduler) Tick(elapsed float64) Stats {
	ctx, cfg := s.ctx, s.cfg
	var st Stats

	ctx.BaseSpin = ctx.BaseSpin.Add(physics.Vec2{X: cfg.SpinSpeedX, Y: cfg.SpinSpeedY})
	s.model.Step(&ctx.Spin, ctx.Dragging, cfg)
	rot := ctx.Rotation()
	s.cube.SetRotation(rot.X, rot.Y, 0)

	u := background.Base(elapsed, ctx.BackgroundZoom, cfg)
	background.React(&u, ctx.Spin, ctx.BackgroundZoom, cfg)
	background.Push(s.sky, u)

	// The request itself waits until the bounce has perturbed the sky, so the map
	// captures what is on screen.
	envDue := elapsed-s.lastEnvUpdate > cfg.EnvMapUpdateInterval

	ctx.Scroll.Step(cfg)
	f := ctx.Bounce.Update(elapsed, ctx.MouseDown, cfg)
	st.Bounce = f
	s.cube.SetScale(ctx.Scroll.Current * f.Scale)

	if f.Active() {
		background.ApplyBounce(&u, f.SkyboxAmount, ctx.BackgroundZoom, cfg)
		background.Push(s.sky, u)
		s.cube.SetColor(f.Color(cfg))
		if f.Phase == bounce.BouncingIn || f.Phase == bounce.BouncingOut {
			envDue = true
		}
	}
	if envDue {
		s.updateEnv(elapsed, &st)
	}

	if physics.ClampSmallMotions(&ctx.Spin, ctx.Dragging, f.Phase != bounce.Idle) {
		st.Rested = true
		u.UVOffset = physics.Vec2{}
		s.sky.SetUVOffset(0, 0)
	}

	s.uniforms = u
	return st
}

func (s *Scheduler) updateEnv(elapsed float64, st *Stats) {
	s.env.UpdateEnvironmentMap(elapsed)
	s.lastEnvUpdate = elapsed
	st.EnvUpdates++
}
