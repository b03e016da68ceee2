// Package render rasterises effect sprites in software, for hosts without a
// GPU surface: the terminal and PNG snapshots.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"proveit/internal/core"
	"proveit/internal/effects"
)

// NightSky is the default background the effects are drawn on.
var NightSky = color.RGBA{R: 8, G: 10, B: 24, A: 255}

// Canvas is a row-major pixel buffer that composites sprites with the
// screen blend. Sprite coordinates are in effect points and are scaled to
// pixels by Fit.
type Canvas struct {
	w, h   int
	pix    []colorful.Color
	bg     colorful.Color
	sx, sy float64
}

// NewCanvas allocates a w×h canvas cleared to bg.
func NewCanvas(w, h int, bg color.RGBA) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{w: w, h: h, pix: make([]colorful.Color, w*h), sx: 1, sy: 1}
	c.bg, _ = colorful.MakeColor(color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})
	c.Clear()
	return c
}

// Size returns the pixel dimensions.
func (c *Canvas) Size() core.Size { return core.Size{W: c.w, H: c.h} }

// Fit scales sprite coordinates so that an effect canvas of size src spans
// the whole pixel buffer.
func (c *Canvas) Fit(src core.Size) {
	c.sx, c.sy = 1, 1
	if src.W > 0 {
		c.sx = float64(c.w) / float64(src.W)
	}
	if src.H > 0 {
		c.sy = float64(c.h) / float64(src.H)
	}
}

// Resize reallocates the buffer when the dimensions change.
func (c *Canvas) Resize(w, h int) {
	if w == c.w && h == c.h {
		return
	}
	c.w, c.h = max(w, 0), max(h, 0)
	c.pix = make([]colorful.Color, c.w*c.h)
	c.Clear()
}

// Clear paints every pixel with the background colour.
func (c *Canvas) Clear() { fillSolid(c.pix, c.bg) }

// DrawSprite composites a filled circle. Edge pixels are weighted by
// approximate coverage, and circles smaller than a pixel still light the
// pixel under their centre in proportion to their area.
func (c *Canvas) DrawSprite(s core.Sprite) {
	if s.Radius <= 0 || s.Opacity <= 0 || c.w == 0 || c.h == 0 {
		return
	}
	cx, cy := s.Center.X*c.sx, s.Center.Y*c.sy
	r := s.Radius * (c.sx + c.sy) / 2
	fg, _ := colorful.MakeColor(s.Color)

	if r < 0.5 {
		x, y := int(math.Floor(cx)), int(math.Floor(cy))
		c.blend(x, y, fg, s.Opacity*math.Min(1, math.Pi*r*r))
		return
	}

	x0 := max(int(math.Floor(cx-r)), 0)
	x1 := min(int(math.Ceil(cx+r)), c.w-1)
	y0 := max(int(math.Floor(cy-r)), 0)
	y1 := min(int(math.Ceil(cy+r)), c.h-1)
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			cover := r + 0.5 - math.Hypot(dx, dy)
			if cover <= 0 {
				continue
			}
			c.blend(x, y, fg, s.Opacity*math.Min(cover, 1))
		}
	}
}

// Draw clears the canvas and paints every sprite of e.
func (c *Canvas) Draw(e core.Effect) {
	c.Clear()
	e.Draw(c.DrawSprite)
}

func (c *Canvas) blend(x, y int, fg colorful.Color, opacity float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := y*c.w + x
	c.pix[i] = effects.Screen(c.pix[i], fg, opacity)
}

// At returns the pixel at x, y; out-of-range reads return the background.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return effects.ToRGBA(c.bg)
	}
	return effects.ToRGBA(c.pix[y*c.w+x])
}

// Cell returns the two pixels a terminal cell at column x and row y shows
// with an upper half block: pixel rows 2y and 2y+1.
func (c *Canvas) Cell(x, y int) (top, bottom color.RGBA) {
	return c.At(x, 2*y), c.At(x, 2*y+1)
}

// Image copies the canvas into an RGBA image.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
	fillRGBA(img.Pix, c.pix)
	return img
}

// EncodePNG writes the canvas as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
