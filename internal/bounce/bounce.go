package bounce

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"spincube/internal/config"
)

// Phase is the state of the click pulse.
type Phase int

const (
	Idle Phase = iota
	BouncingIn
	Held // grown to max scale, pointer still down
	BouncingOut
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case BouncingIn:
		return "bouncing-in"
	case Held:
		return "held"
	case BouncingOut:
		return "bouncing-out"
	}
	return "unknown"
}

// Frame is what one Update produces for the renderer.
type Frame struct {
	Phase        Phase
	Scale        float64 // multiplier on top of the scroll scale
	ColorMix     float64 // 0 = cube color, 1 = bounce color
	SkyboxAmount float64 // (Scale-1) * BounceSkyboxFactor; perturbs the sky uniforms
	Completed    bool    // this update returned the machine to Idle
}

// Active reports whether the frame needs the bounce side effects (sky uniforms, forced env map).
func (f Frame) Active() bool {
	return f.Phase != Idle || f.Completed
}

// Color is the cube tint for this frame.
func (f Frame) Color(cfg *config.Config) colorful.Color {
	return config.Color(cfg.CubeColor).BlendRgb(config.Color(cfg.BounceColor), f.ColorMix)
}

// Machine is the pointer-driven scale pulse. Time is elapsed seconds from the frame clock.
// Phase changes come from triggers (pointer events) and from Update once a phase's
// BounceDuration has elapsed. There is no error state.
type Machine struct {
	phase Phase
	start float64
	from  float64 // scale when the current phase started
	scale float64
}

func New() *Machine {
	return &Machine{scale: 1}
}

func (m *Machine) Phase() Phase { return m.phase }

// Scale is the most recent bounce multiplier (1 when idle).
func (m *Machine) Scale() float64 { return m.scale }

// StartTime is when the current phase began.
func (m *Machine) StartTime() float64 { return m.start }

// Animating is true while a timed phase is running. Held is not animating.
func (m *Machine) Animating() bool {
	return m.phase == BouncingIn || m.phase == BouncingOut
}

// TriggerIn starts growing from the current scale. It is ignored while already growing or
// held; during BouncingOut it restarts the pulse, discarding the shrink in progress.
func (m *Machine) TriggerIn(now float64) bool {
	if m.phase == BouncingIn || m.phase == Held {
		return false
	}
	m.phase = BouncingIn
	m.start = now
	m.from = m.scale
	return true
}

// TriggerOut starts shrinking back to 1 when no animation is running and the cube is grown.
func (m *Machine) TriggerOut(now float64) bool {
	if m.Animating() || m.scale <= 1 {
		return false
	}
	m.beginOut(now)
	return true
}

func (m *Machine) beginOut(now float64) {
	m.phase = BouncingOut
	m.start = now
	m.from = m.scale
}

// Update advances the machine to now. pointerDown decides whether a finished BouncingIn holds
// at max scale or turns straight into BouncingOut.
func (m *Machine) Update(now float64, pointerDown bool, cfg *config.Config) Frame {
	f := Frame{Phase: m.phase, Scale: 1}
	switch m.phase {
	case Idle:
		m.scale = 1
		return f

	case BouncingIn:
		p := progress(now, m.start, cfg.BounceDuration)
		m.scale = InScale(m.from, cfg.BounceMaxScale, p)
		f.ColorMix = math.Sin(p * math.Pi)
		if p >= 1 {
			if pointerDown {
				m.phase = Held
			} else {
				m.beginOut(now)
			}
		}

	case Held:
		m.scale = cfg.BounceMaxScale
		if !pointerDown {
			m.beginOut(now)
		}

	case BouncingOut:
		p := progress(now, m.start, cfg.BounceDuration)
		m.scale = OutScale(m.from, cfg.BounceMinScale, p, cfg.BounceUndershoot)
		f.ColorMix = math.Sin(p * math.Pi)
		if p >= 1 {
			m.phase = Idle
			m.scale = 1
			f.ColorMix = 0
			f.Completed = true
		}
	}

	f.Phase = m.phase
	f.Scale = m.scale
	f.SkyboxAmount = (m.scale - 1) * cfg.BounceSkyboxFactor
	return f
}

// InScale eases from -> peak along a quarter sine. p is clamped to [0,1].
func InScale(from, peak, p float64) float64 {
	return lerp(from, peak, math.Sin(clamp01(p)*math.Pi/2))
}

// OutScale eases from -> 1. With undershoot the first half dips to low and the second half
// recovers from low to 1, each along a quarter sine.
func OutScale(from, low, p float64, undershoot bool) float64 {
	p = clamp01(p)
	if !undershoot {
		return lerp(from, 1, math.Sin(p*math.Pi/2))
	}
	if p < 0.5 {
		return lerp(from, low, math.Sin(p/0.5*math.Pi/2))
	}
	return lerp(low, 1, math.Sin((p-0.5)/0.5*math.Pi/2))
}

func progress(now, start, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return clamp01((now - start) / duration)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// lerp is exact at both ends.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
