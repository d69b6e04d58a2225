package physics

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"

	"spincube/internal/config"
)

// Epsilon is the magnitude below which spin offsets and velocities snap to exactly zero.
const Epsilon = 1e-5

// SpinState is the user-driven part of the cube rotation. Current is added to the
// auto-spin accumulator to give the final rotation; Target is where the spring pulls it.
type SpinState struct {
	Target   Vec2
	Current  Vec2
	Velocity Vec2
}

// SpinModel advances SpinState by one animation frame. The frame is the time unit:
// there is no fixed-timestep decoupling, so the tuning assumes a steady ~60Hz.
type SpinModel interface {
	Name() string
	Step(s *SpinState, dragging bool, cfg *config.Config)
}

// NewSpinModel returns the model registered under name (see config.SpinSpring etc.).
// fps is only used by the analytic model.
func NewSpinModel(name string, fps int) (SpinModel, error) {
	switch name {
	case config.SpinSpring, "":
		return SpringModel{}, nil
	case config.SpinInertia:
		return InertiaModel{}, nil
	case config.SpinAnalytic:
		return NewAnalyticModel(fps), nil
	}
	return nil, fmt.Errorf("physics: unknown spin model %q", name)
}

// SpringModel is a damped spring integrated with explicit Euler once per frame.
// While released the target decays toward zero, so the cube settles back onto its auto-spin.
type SpringModel struct{}

func (SpringModel) Name() string { return config.SpinSpring }

func (SpringModel) Step(s *SpinState, dragging bool, cfg *config.Config) {
	if !dragging {
		decayTarget(&s.Target, cfg.TargetOffsetDamping)
	}
	springStep(s, cfg)
}

// InertiaModel follows the spring while dragging. Once released the spring is disengaged:
// the offset coasts on its velocity, which decays by InertiaDamping each frame, and the target
// tracks the offset so the spring does not snap it back when the next drag starts.
type InertiaModel struct{}

func (InertiaModel) Name() string { return config.SpinInertia }

func (InertiaModel) Step(s *SpinState, dragging bool, cfg *config.Config) {
	if dragging {
		springStep(s, cfg)
		return
	}
	s.Current = s.Current.Add(s.Velocity)
	s.Velocity = s.Velocity.Scale(cfg.InertiaDamping)
	s.Velocity.X = snap(s.Velocity.X)
	s.Velocity.Y = snap(s.Velocity.Y)
	s.Target = s.Current
}

// AnalyticModel solves the same spring in closed form with harmonica. Spring and Damping are
// converted from per-frame Euler coefficients to an angular frequency and damping ratio at fps.
type AnalyticModel struct {
	fps    int
	spring harmonica.Spring
	k, c   float64
}

func NewAnalyticModel(fps int) *AnalyticModel {
	if fps <= 0 {
		fps = 60
	}
	return &AnalyticModel{fps: fps}
}

func (*AnalyticModel) Name() string { return config.SpinAnalytic }

func (m *AnalyticModel) Step(s *SpinState, dragging bool, cfg *config.Config) {
	if !dragging {
		decayTarget(&s.Target, cfg.TargetOffsetDamping)
	}
	if cfg.Spring != m.k || cfg.Damping != m.c {
		m.k, m.c = cfg.Spring, cfg.Damping
		omega := math.Sqrt(m.k) * float64(m.fps)
		zeta := m.c / (2 * math.Sqrt(m.k))
		m.spring = harmonica.NewSpring(harmonica.FPS(m.fps), omega, zeta)
	}
	// harmonica works in units per second; SpinState velocity is per frame.
	fps := float64(m.fps)
	var vx, vy float64
	s.Current.X, vx = m.spring.Update(s.Current.X, s.Velocity.X*fps, s.Target.X)
	s.Current.Y, vy = m.spring.Update(s.Current.Y, s.Velocity.Y*fps, s.Target.Y)
	s.Velocity = Vec2{vx / fps, vy / fps}
}

func springStep(s *SpinState, cfg *config.Config) {
	force := s.Target.Sub(s.Current).Scale(cfg.Spring)
	damping := s.Velocity.Scale(cfg.Damping)
	s.Velocity = s.Velocity.Add(force.Sub(damping))
	s.Current = s.Current.Add(s.Velocity)
}

func decayTarget(t *Vec2, factor float64) {
	t.X = snap(t.X * factor)
	t.Y = snap(t.Y * factor)
}

func snap(v float64) float64 {
	if math.Abs(v) < Epsilon {
		return 0
	}
	return v
}
