//go:build ebiten

package ui

import (
	"image/color"

	"proveit/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the effect view.
type HUD struct {
	effect     core.Effect
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []Line
}

// NewHUD constructs a HUD for the provided effect and panel width.
func NewHUD(e core.Effect, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{effect: e, width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the panel contents from the effect and the last tick.
func (h *HUD) Update(stats core.TickStats, paused bool) {
	if h == nil {
		return
	}
	h.lines = PanelLines(h.effect, stats, paused)
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.effect.Size().H
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawLines()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawLines() {
	face := basicfont.Face7x13
	y := panelPadding
	for _, l := range h.lines {
		switch l.Kind {
		case LineTitle:
			y += headerBaseline
			text.Draw(h.panel, l.Label, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
			y += 6
		case LineGroup:
			y += groupSpacing
			text.Draw(h.panel, l.Label, face, panelPadding, y, color.RGBA{R: 140, G: 170, B: 220, A: 255})
		default:
			y += lineHeight
			text.Draw(h.panel, l.Label, face, panelPadding+8, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
			bounds := text.BoundString(face, l.Value)
			text.Draw(h.panel, l.Value, face, h.width-panelPadding-bounds.Dx(), y, color.RGBA{R: 240, G: 240, B: 200, A: 255})
		}
		if y > h.lastHeight {
			return
		}
	}
}

const (
	panelPadding   = 12
	lineHeight     = 16
	groupSpacing   = 24
	headerBaseline = 18
)
