package envmap

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/draw"

	"spincube/internal/background"
	"spincube/internal/config"
)

// Map is one regenerated environment map: an equirectangular sky and its mip chain.
type Map struct {
	Time   float64
	Levels []*image.RGBA // Levels[0] is full resolution; each next level halves both sides
}

// Base returns the full-resolution level.
func (m *Map) Base() *image.RGBA {
	return m.Levels[0]
}

// Generator renders the procedural sky on the CPU. It is a value; copies are independent.
type Generator struct {
	Width  int
	Height int
	Blur   float64 // 0..1, fraction of 1% of the width used as blur radius
	Seed   int32
}

// NewGenerator sizes a generator from cfg: EnvMapSize wide, half as tall.
func NewGenerator(cfg *config.Config) Generator {
	w := max(cfg.EnvMapSize, 2)
	return Generator{Width: w, Height: max(w/2, 1), Blur: cfg.BackgroundBlur}
}

// Render shades every texel for sky, blurs the result and builds the mip chain.
func (g Generator) Render(sky background.Uniforms) *Map {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	fw, fh := float32(g.Width), float32(g.Height)
	for y := 0; y < g.Height; y++ {
		v := 1 - (float32(y)+0.5)/fh
		for x := 0; x < g.Width; x++ {
			u := (float32(x) + 0.5) / fw
			c := shade(sky, u, v, g.Seed)
			img.SetRGBA(x, y, color.RGBA{R: to8(c.r), G: to8(c.g), B: to8(c.b), A: 255})
		}
	}

	if radius := g.Blur * 0.01 * float64(g.Width); radius > 0 {
		img = blur.Gaussian(img, radius)
	}
	return &Map{Time: sky.Time, Levels: mipChain(img)}
}

// mipChain halves the image with bilinear filtering down to 1x1, the complete chain a
// trilinear-filtered texture needs.
func mipChain(base *image.RGBA) []*image.RGBA {
	levels := []*image.RGBA{base}
	cur := base
	for cur.Bounds().Dx() > 1 || cur.Bounds().Dy() > 1 {
		w := max(cur.Bounds().Dx()/2, 1)
		h := max(cur.Bounds().Dy()/2, 1)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(next, next.Bounds(), cur, cur.Bounds(), draw.Src, nil)
		levels = append(levels, next)
		cur = next
	}
	return levels
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
