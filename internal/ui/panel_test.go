package ui

import (
	"strings"
	"testing"

	"proveit/internal/core"
	"proveit/internal/effects"
)

func TestPanelLinesListParametersAndCounts(t *testing.T) {
	e := effects.NewFireworks(effects.DefaultConfig())
	e.System().Step(1.0)
	lines := PanelLines(e, core.TickStats{Live: 2, Spawned: 2, Delta: 1}, true)

	if lines[0].Kind != LineTitle || lines[0].Label != "Fireworks (paused)" {
		t.Fatalf("title = %+v", lines[0])
	}
	got := map[string]string{}
	groups := 0
	for _, l := range lines {
		if l.Kind == LineGroup {
			groups++
		}
		got[l.Label] = l.Value
	}
	if groups != 5 {
		t.Fatalf("groups = %d, want Canvas, Launch, Burst, Sparks and Live", groups)
	}
	if got["Launches per second"] != "2" {
		t.Fatalf("birth rate line = %q", got["Launches per second"])
	}
	if got["Particles"] != "2" || got["Anchors"] != "2" || got["Step"] != "1.000s" {
		t.Fatalf("counts = %v", got)
	}
}

func TestAnchorMarks(t *testing.T) {
	cfg := effects.DefaultConfig()
	f := effects.NewFireworks(cfg)
	if len(AnchorMarks(f)) != 0 {
		t.Fatal("marks before any launch")
	}
	f.Burst(core.Vec2{X: 100, Y: 50})
	marks := AnchorMarks(f)
	if len(marks) != 1 {
		t.Fatalf("marks = %d, want 1", len(marks))
	}
	if marks[0].Center != (core.Vec2{X: 100, Y: 50}) || marks[0].Radius != cfg.Fireworks.AnchorSize/2 {
		t.Fatalf("mark = %+v", marks[0])
	}
	if AnchorMarks(effects.NewSparkle(cfg)) != nil {
		t.Fatal("sparkle has no anchors")
	}
}

func TestText(t *testing.T) {
	out := Text([]Line{{Kind: LineTitle, Label: "Sparkle"}, {Kind: LineParam, Label: "Width", Value: "800"}})
	if out != "Sparkle\nWidth: 800" {
		t.Fatalf("text = %q", out)
	}
	if !strings.HasPrefix(Text(PanelLines(nil, core.TickStats{}, false)), "Parameters\nLive") {
		t.Fatal("nil effect should fall back to a generic title")
	}
}
