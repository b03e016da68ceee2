package effects

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Hue is one named palette entry.
type Hue struct {
	Name  string
	Color colorful.Color
}

// Palette is the ordered set of hues sparks pick from.
type Palette []Hue

// DefaultPalette returns the thirteen system hues used for sparks.
func DefaultPalette() Palette {
	return Palette{
		{"red", colorful.Color{R: 255.0 / 255, G: 59.0 / 255, B: 48.0 / 255}},
		{"orange", colorful.Color{R: 255.0 / 255, G: 149.0 / 255, B: 0}},
		{"yellow", colorful.Color{R: 255.0 / 255, G: 204.0 / 255, B: 0}},
		{"green", colorful.Color{R: 52.0 / 255, G: 199.0 / 255, B: 89.0 / 255}},
		{"mint", colorful.Color{R: 0, G: 199.0 / 255, B: 190.0 / 255}},
		{"teal", colorful.Color{R: 48.0 / 255, G: 176.0 / 255, B: 199.0 / 255}},
		{"cyan", colorful.Color{R: 50.0 / 255, G: 173.0 / 255, B: 230.0 / 255}},
		{"blue", colorful.Color{R: 0, G: 122.0 / 255, B: 255.0 / 255}},
		{"indigo", colorful.Color{R: 88.0 / 255, G: 86.0 / 255, B: 214.0 / 255}},
		{"purple", colorful.Color{R: 175.0 / 255, G: 82.0 / 255, B: 222.0 / 255}},
		{"pink", colorful.Color{R: 255.0 / 255, G: 45.0 / 255, B: 85.0 / 255}},
		{"brown", colorful.Color{R: 162.0 / 255, G: 132.0 / 255, B: 94.0 / 255}},
		{"gray", colorful.Color{R: 142.0 / 255, G: 142.0 / 255, B: 147.0 / 255}},
	}
}

// Len returns the number of hues.
func (p Palette) Len() int { return len(p) }

// At returns hue i as an opaque RGBA colour. Indices wrap around.
func (p Palette) At(i int) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{A: 0xff}
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return ToRGBA(p[i].Color)
}

// Name returns the name of hue i. Indices wrap around.
func (p Palette) Name(i int) string {
	if len(p) == 0 {
		return ""
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i].Name
}

// ToRGBA converts a colorful colour into an opaque color.RGBA.
func ToRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Screen composites fg over bg with the screen blend mode, fg weighted by
// opacity. The result never darkens bg.
func Screen(bg, fg colorful.Color, opacity float64) colorful.Color {
	if opacity <= 0 {
		return bg
	}
	if opacity > 1 {
		opacity = 1
	}
	screen := func(b, f float64) float64 {
		f *= opacity
		return 1 - (1-b)*(1-f)
	}
	return colorful.Color{
		R: screen(bg.R, fg.R),
		G: screen(bg.G, fg.G),
		B: screen(bg.B, fg.B),
	}.Clamped()
}

// Blend is Screen over color.RGBA values for hosts that paint directly.
func Blend(bg, fg color.RGBA, opacity float64) color.RGBA {
	b, _ := colorful.MakeColor(color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})
	f, _ := colorful.MakeColor(color.RGBA{R: fg.R, G: fg.G, B: fg.B, A: 0xff})
	return ToRGBA(Screen(b, f, opacity))
}
