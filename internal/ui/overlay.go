//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"proveit/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the effect.
type Overlay struct {
	effect      core.Effect
	showAnchors bool
	pixel       *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(e core.Effect) *Overlay {
	o := &Overlay{effect: e}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the anchor markers on key 1.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showAnchors = !o.showAnchors
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showAnchors {
		return
	}
	col := color.RGBA{R: 160, G: 160, B: 160, A: 160}
	for _, m := range AnchorMarks(o.effect) {
		arm := math.Max(m.Radius, 4)
		cx, cy := m.Center.X, m.Center.Y
		o.drawLine(screen, cx-arm, cy, cx+arm, cy, 1, col)
		o.drawLine(screen, cx, cy-arm, cx, cy+arm, 1, col)
		o.drawPoint(screen, cx, cy, 3, color.RGBA{R: 220, G: 70, B: 70, A: 220})
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
