package config

import (
	"github.com/jinzhu/copier"
)

// SettingsPath is the path to the saved settings file, relative to the process working directory.
const SettingsPath = "settings/spincube.json"

// Spin model names accepted by the spinModel key.
const (
	SpinSpring   = "spring"
	SpinInertia  = "inertia"
	SpinAnalytic = "analytic"
)

// Config holds every tunable read by the interaction models each frame.
// There is one writer (startup load, the settings commands) and many readers; readers on
// other goroutines must work from a Clone.
type Config struct {
	// Auto-spin added to the base rotation every frame (radians/frame).
	SpinSpeedX float64
	SpinSpeedY float64

	// Spin spring (per-frame units).
	Spring              float64
	Damping             float64
	DragSensitivity     float64
	TargetOffsetDamping float64
	ThrowVelocityFactor float64
	InertiaDamping      float64
	SpinModel           string

	// Bounce pulse.
	BounceDuration     float64 // seconds
	BounceMaxScale     float64
	BounceMinScale     float64
	BounceSkyboxFactor float64
	BounceUndershoot   bool
	BounceOnAnyClick   bool

	// Scroll zoom.
	ScrollSpring      float64
	ScrollDamping     float64
	ScrollSensitivity float64
	MinScrollScale    float64
	MaxScrollScale    float64

	// Sky shader.
	ParallaxFactor       float64
	CheckerScale         float64
	WarpAmount           float64
	WarpFrequency        float64
	WarpSpeed            float64
	UseIntenseBackground bool

	// Environment map.
	EnvMapUpdateInterval float64 // seconds
	EnvMapSize           int
	BackgroundBlur       float64

	// Cube look.
	CubeColor        uint32 // 0xRRGGBB
	BounceColor      uint32
	CubeSize         float64
	UseGlassMaterial bool

	// Debug overlay.
	ShowFPS      bool
	ShowMemAlloc bool
	ShowState    bool
}

// Default returns the compiled-in tuning. The spring values assume one physics step per frame at roughly 60Hz.
func Default() *Config {
	return &Config{
		SpinSpeedX: 0.002,
		SpinSpeedY: 0.003,

		Spring:              0.05,
		Damping:             0.25,
		DragSensitivity:     0.008,
		TargetOffsetDamping: 0.92,
		ThrowVelocityFactor: 0.6,
		InertiaDamping:      0.95,
		SpinModel:           SpinSpring,

		BounceDuration:     0.7,
		BounceMaxScale:     1.3,
		BounceMinScale:     0.8,
		BounceSkyboxFactor: 0.5,
		BounceUndershoot:   true,
		BounceOnAnyClick:   true,

		ScrollSpring:      0.1,
		ScrollDamping:     0.8,
		ScrollSensitivity: 0.05,
		MinScrollScale:    0.5,
		MaxScrollScale:    2.0,

		ParallaxFactor:       0.01,
		CheckerScale:         20,
		WarpAmount:           0.05,
		WarpFrequency:        5,
		WarpSpeed:            0.1,
		UseIntenseBackground: true,

		EnvMapUpdateInterval: 1.0 / 20,
		EnvMapSize:           256,
		BackgroundBlur:       0.5,

		CubeColor:   0xffffff,
		BounceColor: 0x88ccff,
		CubeSize:    2.25,
	}
}

// Reset restores the defaults in place so that every holder of c sees them.
func (c *Config) Reset() {
	*c = *Default()
}

// Clone returns an independent snapshot, safe to hand to another goroutine.
func (c *Config) Clone() *Config {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		*out = *c
	}
	return out
}
