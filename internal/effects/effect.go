// Package effects holds the particle recipes hosts can display: fireworks
// and sparkle. Each recipe wraps a particle.System and turns its leaves into
// core.Sprites.
package effects

import (
	"fmt"
	"sort"

	"proveit/internal/core"
	"proveit/internal/particle"
)

// base is the part every effect shares: the owned simulation, the palette
// and the sprite conversion.
type base struct {
	name    string
	cfg     Config
	palette Palette
	sys     *particle.System
	flicker *core.RNG
}

func newBase(name string, cfg Config, spec particle.CellSpec) *base {
	return &base{
		name:    name,
		cfg:     cfg,
		palette: DefaultPalette(),
		sys: particle.New(spec, particle.Options{
			MaxStep: cfg.MaxStep,
			Canvas:  core.Size{W: cfg.Width, H: cfg.Height},
			Seed:    cfg.Seed,
		}),
		flicker: core.NewRNG(cfg.Seed ^ 0x5eed),
	}
}

// Name returns the effect identifier.
func (b *base) Name() string { return b.name }

// Size returns the canvas dimensions.
func (b *base) Size() core.Size { return b.sys.Canvas() }

// Resize changes the canvas that new particles are spawned into.
func (b *base) Resize(s core.Size) {
	if s.W <= 0 || s.H <= 0 {
		return
	}
	b.cfg.Width, b.cfg.Height = s.W, s.H
	b.sys.Resize(s)
}

// Reset clears every particle and reseeds the effect.
func (b *base) Reset(seed int64) {
	b.cfg.Seed = seed
	b.sys.Reset(seed)
	b.flicker = core.NewRNG(seed ^ 0x5eed)
}

// Tick advances the simulation to the host timestamp now, in seconds.
func (b *base) Tick(now float64) core.TickStats { return b.sys.Tick(now) }

// Close releases every particle.
func (b *base) Close() { b.sys.Close() }

// System exposes the underlying simulation to hosts and overlays.
func (b *base) System() *particle.System { return b.sys }

// Config returns the configuration currently in effect.
func (b *base) Config() Config { return b.cfg }

// Palette returns the hues sparks are coloured with.
func (b *base) Palette() Palette { return b.palette }

// Draw calls visit for every visible leaf particle.
func (b *base) Draw(visit func(core.Sprite)) {
	b.sys.ForEachLeaf(func(p *particle.Particle) {
		center, radius := p.Frame()
		if radius <= 0 || p.Opacity <= 0 {
			return
		}
		hue := p.Color
		if b.cfg.FlickerColors {
			hue = b.flicker.IntN(b.palette.Len())
		}
		opacity := p.Opacity
		if opacity > 1 {
			opacity = 1
		}
		visit(core.Sprite{
			Center:  center,
			Radius:  radius,
			Opacity: opacity,
			Color:   b.palette.At(hue),
		})
	})
}

func canvasParams(c Config) core.ParameterGroup {
	return core.ParameterGroup{
		Name: "Canvas",
		Params: []core.Parameter{
			core.IntParam("w", "Width", c.Width),
			core.IntParam("h", "Height", c.Height),
			core.Int64Param("seed", "Seed", c.Seed),
			core.FloatParam("max_step", "Max step", c.MaxStep),
			core.BoolParam("flicker", "Flicker colours", c.FlickerColors),
		},
	}
}

var constructors = map[string]func(Config) core.Effect{}

func register(name string, build func(Config) core.Effect) {
	constructors[name] = build
	core.Register(name, func(m map[string]string) core.Effect {
		return build(FromMap(m))
	})
}

// New builds the named effect from an already validated Config.
func New(name string, cfg Config) (core.Effect, error) {
	build, ok := constructors[name]
	if !ok {
		names := make([]string, 0, len(constructors))
		for n := range constructors {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown effect %q (have %v)", name, names)
	}
	return build(cfg), nil
}
