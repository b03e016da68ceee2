package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"proveit/internal/core"
	"proveit/internal/effects"
)

func newTestHost(t *testing.T, name string) (*Host, core.Effect) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 13)

	cfg := effects.DefaultConfig()
	cfg.Seed = 9
	e, err := effects.New(name, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return New(screen, e, Options{FPS: 30, Seed: 9}), e
}

func TestResizeMapsCellsToEffectPoints(t *testing.T) {
	h, e := newTestHost(t, "fireworks")
	if h.cols != 40 || h.rows != 12 {
		t.Fatalf("grid = %dx%d, want 40x12 with a status row", h.cols, h.rows)
	}
	if got := e.Size(); got != (core.Size{W: 320, H: 192}) {
		t.Fatalf("effect size = %+v", got)
	}
	if got := h.canvas.Size(); got != (core.Size{W: 40, H: 24}) {
		t.Fatalf("canvas = %+v", got)
	}
}

func TestKeys(t *testing.T) {
	h, _ := newTestHost(t, "fireworks")
	if !h.key(tcell.KeyRune, 'q') || !h.key(tcell.KeyEscape, 0) {
		t.Fatal("q and Esc must quit")
	}
	if h.key(tcell.KeyRune, ' ') || !h.timeline.Paused() {
		t.Fatal("space should pause")
	}
	h.frame(50)
	h.key(tcell.KeyRune, 'n')
	if _, ok := h.timeline.Advance(50.1); !ok {
		t.Fatal("n should single-step while paused")
	}
	h.key(tcell.KeyRune, 's')
	if h.seed == 9 {
		t.Fatal("s should reseed")
	}
}

func TestPauseFreezesEffectTime(t *testing.T) {
	h, e := newTestHost(t, "fireworks")
	sys := e.(*effects.Fireworks).System()

	h.frame(100)
	h.frame(100.05)
	live := sys.Len()
	h.key(tcell.KeyRune, ' ')
	now := 100.05
	for i := 0; i < 100; i++ {
		now += 0.05
		h.frame(now)
	}
	if sys.Len() != live {
		t.Fatalf("paused effect changed: %d -> %d", live, sys.Len())
	}
	h.key(tcell.KeyRune, ' ')
	h.frame(now + 0.05)
	if d := h.stats.Delta; d < 0.04 || d > 0.06 {
		t.Fatalf("resume delta = %v, want one frame", d)
	}
}

func TestClickBurstsFireworks(t *testing.T) {
	h, e := newTestHost(t, "fireworks")
	sys := e.(*effects.Fireworks).System()
	h.click(10, 5)
	if sys.Roots() != 1 {
		t.Fatalf("roots = %d, want 1 after click", sys.Roots())
	}
	h.click(10, 12)
	if sys.Roots() != 1 {
		t.Fatal("click on the status row launched a firework")
	}
}

func TestClickIgnoredBySparkle(t *testing.T) {
	h, e := newTestHost(t, "sparkle")
	h.click(3, 3)
	if n := e.(*effects.Sparkle).System().Len(); n != 0 {
		t.Fatalf("sparkle grew %d particles from a click", n)
	}
}

func TestStatusLine(t *testing.T) {
	h, _ := newTestHost(t, "sparkle")
	h.frame(1)
	h.draw()
	if s := h.status(); !strings.Contains(s, "sparkle") || !strings.Contains(s, "live") {
		t.Fatalf("status = %q", s)
	}
	h.key(tcell.KeyRune, ' ')
	if !strings.Contains(h.status(), "paused") {
		t.Fatal("status does not show pause")
	}
}
