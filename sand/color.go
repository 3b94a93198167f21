package sand

import (
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// RGBA implements color.Color so RGB can be handed straight to image and ebiten APIs.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// DefaultPalette is the set of piece colors.
var DefaultPalette = []RGB{
	{255, 100, 100}, // red
	{100, 150, 255}, // blue
	{100, 255, 150}, // green
	{255, 220, 100}, // yellow
}

// ColorsMatch reports whether every channel of a and b differs by less than tolerance.
func ColorsMatch(a, b RGB, tolerance int) bool {
	return channelDelta(a.R, b.R) < tolerance &&
		channelDelta(a.G, b.G) < tolerance &&
		channelDelta(a.B, b.B) < tolerance
}

func channelDelta(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// colorBucket quantizes a color to 3 bits per channel.
func colorBucket(c RGB) uint32 {
	return uint32(c.R>>5)<<6 | uint32(c.G>>5)<<3 | uint32(c.B>>5)
}

// tint derives a display color from base by shifting its HCL lightness by up to
// ±jitter. The hue is kept so tinted grains still read as the same piece color.
func tint(base RGB, jitter float64, rng *rand.Rand) RGB {
	if jitter <= 0 {
		return base
	}
	c := colorful.Color{
		R: float64(base.R) / 255,
		G: float64(base.G) / 255,
		B: float64(base.B) / 255,
	}
	h, chroma, l := c.Hcl()
	l += (rng.Float64()*2 - 1) * jitter
	r, g, b := colorful.Hcl(h, chroma, l).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
