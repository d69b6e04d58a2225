package envmap

import (
	"github.com/chewxy/math32"

	"spincube/internal/background"
)

var (
	checkerDark  = rgb{0.08, 0.08, 0.18}
	checkerLight = rgb{0.35, 0.35, 0.55}
	horizonGlow  = rgb{0.4 * 0.8, 0.4 * 0.8, 0.6 * 0.8}
	plainGray    = rgb{0.12, 0.12, 0.12}
)

type rgb struct{ r, g, b float32 }

func (c rgb) mix(o rgb, t float32) rgb {
	return rgb{lerp(c.r, o.r, t), lerp(c.g, o.g, t), lerp(c.b, o.b, t)}
}

// shade returns the sky color at equirectangular coordinates (u, v), v = 0 at the bottom.
func shade(sky background.Uniforms, u, v float32, seed int32) rgb {
	if !sky.Intense {
		return plainGray
	}
	cu := u + float32(sky.UVOffset.X)
	cv := v + float32(sky.UVOffset.Y)
	t := float32(sky.Time * sky.WarpSpeed)
	freq := float32(sky.WarpFrequency)
	amount := float32(sky.WarpAmount)

	wu := cu + signedNoise3D(cu*freq, cv*freq, t, seed)*amount
	wv := cv + signedNoise3D(cv*freq*1.2+5, cu*freq*1.2+5, t*0.8, seed)*amount*0.7

	c := checkerDark
	if checker(wu, wv, float32(sky.CheckerScale)) {
		c = checkerLight
	}

	// latitude of the unwarped, unshifted direction
	dirY := math32.Sin((v - 0.5) * math32.Pi)
	return c.mix(horizonGlow, smoothEdge(0, 0.3, math32.Abs(dirY))*0.4)
}

func checker(u, v, scale float32) bool {
	pu := mod2(u * scale)
	pv := mod2(v * scale)
	return (pu > 1) != (pv > 1)
}

// mod2 is GLSL mod(x, 2): the result has the sign of the divisor.
func mod2(x float32) float32 {
	return x - 2*math32.Floor(x/2)
}

// signedNoise3D is value noise remapped to [-1,1].
func signedNoise3D(x, y, z float32, seed int32) float32 {
	return valueNoise3D(x, y, z, seed)*2 - 1
}

// valueNoise3D is smooth value noise in [0,1] on a hashed integer lattice, eased per axis.
func valueNoise3D(x, y, z float32, seed int32) float32 {
	fx, fy, fz := math32.Floor(x), math32.Floor(y), math32.Floor(z)
	x0, y0, z0 := int32(fx), int32(fy), int32(fz)
	sx := smoothStep(x - fx)
	sy := smoothStep(y - fy)
	sz := smoothStep(z - fz)

	face := func(z int32) float32 {
		a := lerp(hash3D(x0, y0, z, seed), hash3D(x0+1, y0, z, seed), sx)
		b := lerp(hash3D(x0, y0+1, z, seed), hash3D(x0+1, y0+1, z, seed), sx)
		return lerp(a, b, sy)
	}
	return lerp(face(z0), face(z0+1), sz)
}

// hash3D maps lattice coordinates to a deterministic value in [0,1].
func hash3D(x, y, z, seed int32) float32 {
	n := x*374761393 + y*668265263 + z*1440662683 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is cubic easing 3t^2 - 2t^3 on [0,1].
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// smoothEdge is GLSL smoothstep(e0, e1, x).
func smoothEdge(e0, e1, x float32) float32 {
	return smoothStep((x - e0) / (e1 - e0))
}
