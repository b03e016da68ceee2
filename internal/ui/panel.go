package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"proveit/internal/core"
	"proveit/internal/particle"
)

// LineKind selects the style a panel line is drawn with.
type LineKind int

const (
	LineTitle LineKind = iota
	LineGroup
	LineParam
	LineStat
)

// Line is one row of the HUD panel.
type Line struct {
	Kind  LineKind
	Label string
	Value string
}

type systemProvider interface {
	System() *particle.System
}

func buildTitle(e core.Effect) string {
	if e == nil || e.Name() == "" {
		return "Parameters"
	}
	name := e.Name()
	r, n := utf8.DecodeRuneInString(name)
	return fmt.Sprintf("%c%s", unicode.ToUpper(r), name[n:])
}

// PanelLines lays out the HUD contents: the effect title, its parameter
// groups when it publishes any, then the live counts of the last tick.
func PanelLines(e core.Effect, stats core.TickStats, paused bool) []Line {
	title := buildTitle(e)
	if paused {
		title += " (paused)"
	}
	lines := []Line{{Kind: LineTitle, Label: title}}
	if provider, ok := e.(core.ParameterProvider); ok {
		for _, g := range provider.Parameters().Groups {
			lines = append(lines, Line{Kind: LineGroup, Label: g.Name})
			for _, p := range g.Params {
				lines = append(lines, Line{Kind: LineParam, Label: p.Label, Value: p.Value})
			}
		}
	}
	lines = append(lines,
		Line{Kind: LineGroup, Label: "Live"},
		Line{Kind: LineStat, Label: "Particles", Value: fmt.Sprint(stats.Live)},
		Line{Kind: LineStat, Label: "Spawned", Value: fmt.Sprint(stats.Spawned)},
		Line{Kind: LineStat, Label: "Pruned", Value: fmt.Sprint(stats.Pruned)},
	)
	if sp, ok := e.(systemProvider); ok {
		sys := sp.System()
		lines = append(lines,
			Line{Kind: LineStat, Label: "Leaves", Value: fmt.Sprint(sys.Leaves())},
			Line{Kind: LineStat, Label: "Anchors", Value: fmt.Sprint(sys.Anchors())},
		)
	}
	lines = append(lines, Line{Kind: LineStat, Label: "Step", Value: fmt.Sprintf("%.3fs", stats.Delta)})
	return lines
}

// String renders l as plain text.
func (l Line) String() string {
	if l.Value == "" {
		return l.Label
	}
	return l.Label + ": " + l.Value
}

// Mark is an anchor position for the debug overlay.
type Mark struct {
	Center core.Vec2
	Radius float64
}

// AnchorMarks returns the anchors of effects built on a particle system.
// Other effects have none.
func AnchorMarks(e core.Effect) []Mark {
	sp, ok := e.(systemProvider)
	if !ok {
		return nil
	}
	var marks []Mark
	sp.System().ForEachAnchor(func(p *particle.Particle) {
		c, r := p.Frame()
		marks = append(marks, Mark{Center: c, Radius: r})
	})
	return marks
}

// Text renders lines one per row, for headless output.
func Text(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.String())
	}
	return b.String()
}
