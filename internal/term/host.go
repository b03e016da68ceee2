// Package term hosts an effect inside a terminal through tcell. Every cell
// shows two canvas pixels with an upper half block.
package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"proveit/internal/audio"
	"proveit/internal/core"
	"proveit/internal/logging"
	"proveit/internal/render"
)

// Effect points covered by one terminal cell.
const (
	cellW = 8
	cellH = 16
)

// Options tune the host loop.
type Options struct {
	FPS        int
	Seed       int64
	Background color.RGBA
	Logger     *slog.Logger
	Popper     *audio.Popper
}

// Host drives one effect on a tcell screen.
type Host struct {
	screen tcell.Screen
	effect core.Effect
	canvas *render.Canvas
	pace   *core.FixedStep
	log    *slog.Logger
	popper *audio.Popper

	cols, rows int
	seed       int64
	timeline   core.Timeline
	stats      core.TickStats
}

// New wraps an initialised screen. The caller owns the screen and finalises
// it after Run returns.
func New(screen tcell.Screen, e core.Effect, opts Options) *Host {
	h := &Host{
		screen: screen,
		effect: e,
		canvas: render.NewCanvas(0, 0, opts.Background),
		pace:   core.NewFixedStep(opts.FPS),
		log:    logging.OrDiscard(opts.Logger),
		popper: opts.Popper,
		seed:   opts.Seed,
	}
	h.resize(screen.Size())
	return h
}

// Run polls input and renders frames until the user quits or ctx ends.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pace.Step())
	defer ticker.Stop()
	h.log.Debug("terminal host started", "effect", h.effect.Name(), "cols", h.cols, "rows", h.rows)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if h.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			if h.pace.ShouldStep(now) {
				h.frame(core.Seconds(now))
				h.draw()
			}
		}
	}
}

func (h *Host) handle(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.key(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			h.click(x, y)
		}
	case *tcell.EventResize:
		h.resize(ev.Size())
		h.screen.Sync()
	}
	return false
}

func (h *Host) key(k tcell.Key, r rune) (quit bool) {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		h.timeline.StepOnce()
		return false
	case tcell.KeyRune:
	default:
		return false
	}
	switch r {
	case 'q', 'Q':
		return true
	case ' ':
		h.timeline.TogglePause()
	case 'n', 'N':
		h.timeline.StepOnce()
	case 'r', 'R':
		h.effect.Reset(h.seed)
		h.log.Debug("reset", "seed", h.seed)
	case 's', 'S':
		h.seed = time.Now().UnixNano()
		h.effect.Reset(h.seed)
		h.log.Debug("reseeded", "seed", h.seed)
	}
	return false
}

// click launches a firework under the cell at column x, row y.
func (h *Host) click(x, y int) {
	b, ok := h.effect.(core.Burster)
	if !ok || y >= h.rows {
		return
	}
	pos := core.Vec2{X: float64(x*cellW + cellW/2), Y: float64(y*cellH + cellH/2)}
	if b.Burst(pos) {
		h.popper.Pop()
		h.log.Debug("burst", "x", pos.X, "y", pos.Y)
	}
}

// resize maps a cols×rows terminal to the effect canvas, keeping the last
// row for the status line.
func (h *Host) resize(cols, rows int) {
	h.cols, h.rows = cols, max(rows-1, 0)
	h.canvas.Resize(h.cols, 2*h.rows)
	if h.cols > 0 && h.rows > 0 {
		h.effect.Resize(core.Size{W: h.cols * cellW, H: h.rows * cellH})
	}
	h.canvas.Fit(h.effect.Size())
	h.log.Debug("resized", "cols", h.cols, "rows", h.rows, "canvas", h.effect.Size())
}

// frame advances the effect to wall time now unless paused.
func (h *Host) frame(now float64) {
	t, ok := h.timeline.Advance(now)
	if !ok {
		return
	}
	h.stats = h.effect.Tick(t)
	if _, ok := h.effect.(core.Burster); ok && h.stats.Spawned > 0 {
		h.popper.Pop()
	}
	h.log.Log(context.Background(), logging.LevelTrace, "tick",
		"delta", h.stats.Delta, "spawned", h.stats.Spawned, "pruned", h.stats.Pruned, "live", h.stats.Live)
}

func (h *Host) draw() {
	h.canvas.Draw(h.effect)
	for y := 0; y < h.rows; y++ {
		for x := 0; x < h.cols; x++ {
			top, bottom := h.canvas.Cell(x, y)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			h.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	h.drawStatus()
	h.screen.Show()
}

func (h *Host) status() string {
	state := ""
	if h.timeline.Paused() {
		state = " [paused]"
	}
	return fmt.Sprintf(" %s%s  live %d  space pause  n step  r reset  s reseed  q quit", h.effect.Name(), state, h.stats.Live)
}

func (h *Host) drawStatus() {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range h.status() {
		if x >= h.cols {
			break
		}
		h.screen.SetContent(x, h.rows, r, nil, style)
		x++
	}
	for ; x < h.cols; x++ {
		h.screen.SetContent(x, h.rows, ' ', nil, style)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
