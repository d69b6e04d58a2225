package physics

import "spincube/internal/config"

// ScrollState is the spring-damped zoom scale driven by the wheel.
type ScrollState struct {
	Target   float64
	Current  float64
	Velocity float64
}

// NewScrollState returns a state resting at scale 1.
func NewScrollState() ScrollState {
	return ScrollState{Target: 1, Current: 1}
}

// Nudge moves the target one ScrollSensitivity step: wheel up (negative deltaY) zooms in,
// wheel down zooms out. A zero delta (horizontal-only wheel) leaves the target alone.
func (s *ScrollState) Nudge(deltaY float64, cfg *config.Config) {
	switch {
	case deltaY < 0:
		s.Target += cfg.ScrollSensitivity
	case deltaY > 0:
		s.Target -= cfg.ScrollSensitivity
	}
	s.clampTarget(cfg)
}

// Step advances the zoom spring by one frame.
func (s *ScrollState) Step(cfg *config.Config) {
	s.clampTarget(cfg)
	force := (s.Target - s.Current) * cfg.ScrollSpring
	s.Velocity = (s.Velocity + force) * cfg.ScrollDamping
	s.Current += s.Velocity
}

// clampTarget keeps the target inside the configured bounds, which may change at runtime.
func (s *ScrollState) clampTarget(cfg *config.Config) {
	s.Target = min(max(s.Target, cfg.MinScrollScale), cfg.MaxScrollScale)
}
