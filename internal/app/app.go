//go:build ebiten

package app

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"proveit/internal/audio"
	"proveit/internal/core"
	"proveit/internal/logging"
	"proveit/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// dotSize is the side of the pre-rendered circle every sprite is scaled from.
const dotSize = 64

// screenBlend composites src over dst as 1-(1-dst)(1-src) on premultiplied
// colours: src + dst*(1-src).
var screenBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// Game adapts a core effect to the ebiten.Game interface.
type Game struct {
	effect  core.Effect
	hud     *ui.HUD
	overlay *ui.Overlay
	popper  *audio.Popper
	log     *slog.Logger
	dot     *ebiten.Image

	background color.Color
	timeline   core.Timeline
	stats      core.TickStats
	seed       int64
}

// New constructs a Game for the provided effect.
func New(e core.Effect, opts Options) *Game {
	dot := ebiten.NewImage(dotSize, dotSize)
	vector.DrawFilledCircle(dot, dotSize/2, dotSize/2, dotSize/2, color.White, true)
	return &Game{
		effect:     e,
		hud:        ui.NewHUD(e, opts.HUDWidth),
		overlay:    ui.NewOverlay(e),
		popper:     opts.Popper,
		log:        logging.OrDiscard(opts.Logger),
		dot:        dot,
		background: opts.Background,
		seed:       opts.Seed,
	}
}

// Reset reinitializes the effect with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.effect.Reset(seed)
	g.log.Debug("reset", "seed", seed)
}

// Update handles per-frame input and advances the effect to wall time.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.timeline.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.timeline.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.click(ebiten.CursorPosition())
	}
	g.overlay.Update()

	if now, ok := g.timeline.Advance(core.Seconds(time.Now())); ok {
		g.stats = g.effect.Tick(now)
		if _, burster := g.effect.(core.Burster); burster && g.stats.Spawned > 0 {
			g.popper.Pop()
		}
		g.log.Log(context.Background(), logging.LevelTrace, "tick",
			"delta", g.stats.Delta, "spawned", g.stats.Spawned, "pruned", g.stats.Pruned, "live", g.stats.Live)
	}
	g.hud.Update(g.stats, g.timeline.Paused())
	return nil
}

func (g *Game) click(x, y int) {
	b, ok := g.effect.(core.Burster)
	if !ok || x >= g.effect.Size().W {
		return
	}
	if b.Burst(core.Vec2{X: float64(x), Y: float64(y)}) {
		g.popper.Pop()
		g.log.Debug("burst", "x", x, "y", y)
	}
}

// Draw renders the visible particles as faded circles.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.effect.Draw(func(s core.Sprite) {
		d := 2 * s.Radius
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(d/dotSize, d/dotSize)
		op.GeoM.Translate(s.Center.X-s.Radius, s.Center.Y-s.Radius)
		o := float32(s.Opacity)
		op.ColorScale.Scale(float32(s.Color.R)/255*o, float32(s.Color.G)/255*o, float32(s.Color.B)/255*o, o)
		op.Blend = screenBlend
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.dot, op)
	})
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.effect.Size().W)
}

// Layout returns the logical screen size: the effect canvas plus the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.effect.Size()
	return s.W + g.hud.Width(), s.H
}
