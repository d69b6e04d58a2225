package background

import (
	"math"

	"spincube/internal/config"
	"spincube/internal/physics"
)

// Uniforms mirrors the procedural sky shader's inputs.
type Uniforms struct {
	Time          float64
	CheckerScale  float64
	WarpAmount    float64
	WarpFrequency float64
	WarpSpeed     float64
	UVOffset      physics.Vec2
	Intense       bool
}

// SkyMaterial is the sky shader's uniform surface.
type SkyMaterial interface {
	SetTime(t float64)
	SetCheckerScale(v float64)
	SetWarpAmount(v float64)
	SetWarpFrequency(v float64)
	SetWarpSpeed(v float64)
	SetUVOffset(x, y float64)
}

// ZoomFactor maps the scroll target to the background zoom. It falls as the cube grows,
// so the sky appears to recede while the cube comes closer.
func ZoomFactor(scrollTarget float64) float64 {
	return 1 / (0.7 + 0.3*scrollTarget)
}

// Base returns the resting uniforms for time t: configured warp, checker scaled by zoom, no parallax.
func Base(t, zoom float64, cfg *config.Config) Uniforms {
	return Uniforms{
		Time:          t,
		CheckerScale:  cfg.CheckerScale * zoom,
		WarpAmount:    cfg.WarpAmount,
		WarpFrequency: cfg.WarpFrequency,
		WarpSpeed:     cfg.WarpSpeed,
		Intense:       cfg.UseIntenseBackground,
	}
}

// React applies the spin state to u: parallax from the offset, amplified by velocity on the
// same axis, and a checker scale that tightens with overall spin speed.
func React(u *Uniforms, spin physics.SpinState, zoom float64, cfg *config.Config) {
	u.UVOffset.X = -spin.Current.Y * cfg.ParallaxFactor * (1 + math.Abs(spin.Velocity.Y)*2)
	u.UVOffset.Y = -spin.Current.X * cfg.ParallaxFactor * (1 + math.Abs(spin.Velocity.X)*2)
	u.CheckerScale = cfg.CheckerScale * zoom * (1 + math.Abs(spin.Velocity.X+spin.Velocity.Y)*0.1)
}

// ApplyBounce perturbs warp and checker by the bounce's skybox amount. An amount of zero
// restores the resting warp and checker values.
func ApplyBounce(u *Uniforms, amount, zoom float64, cfg *config.Config) {
	u.WarpAmount = cfg.WarpAmount + amount*1.5
	u.CheckerScale = cfg.CheckerScale * (1 - amount*3) * zoom
	u.WarpSpeed = cfg.WarpSpeed + math.Abs(amount)*2
}

// Push writes every uniform to m.
func Push(m SkyMaterial, u Uniforms) {
	m.SetTime(u.Time)
	m.SetCheckerScale(u.CheckerScale)
	m.SetWarpAmount(u.WarpAmount)
	m.SetWarpFrequency(u.WarpFrequency)
	m.SetWarpSpeed(u.WarpSpeed)
	m.SetUVOffset(u.UVOffset.X, u.UVOffset.Y)
}
