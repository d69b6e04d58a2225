package config

import "github.com/lucasb-eyer/go-colorful"

// Color converts a 0xRRGGBB value to a colorful.Color.
func Color(rgb uint32) colorful.Color {
	return colorful.Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
}

// HexOf packs c back into 0xRRGGBB, clamping out-of-gamut channels.
func HexOf(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
