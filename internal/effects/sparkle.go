package effects

import (
	"proveit/internal/core"
	"proveit/internal/particle"
)

// Sparkle scatters slow, fading twinkles over the canvas. Its root cell has
// no child, so every particle is a leaf.
type Sparkle struct {
	*base
}

// NewSparkle builds a sparkle effect from cfg.
func NewSparkle(cfg Config) *Sparkle {
	p := cfg.Sparkle
	hues := DefaultPalette().Len()
	spec := particle.CellSpec{
		BirthRate: p.BirthRate,
		End:       particle.Unbounded(),
		Generator: func(rng *core.RNG, s *particle.Particle) {
			s.Lifetime = rng.Range(p.LifetimeMin, p.LifetimeMax)
			s.Velocity = core.Vec2{Y: -rng.Range(p.DriftMin, p.DriftMax)}
			s.Size = rng.Range(p.SizeMin, p.SizeMax)
			s.SizeSpeed = -s.Size / (2 * s.Lifetime)
			s.Opacity = rng.Range(0.5, 1)
			s.OpacitySpeed = -s.Opacity / s.Lifetime
			s.Color = rng.IntN(hues)
		},
	}
	return &Sparkle{base: newBase("sparkle", cfg, spec)}
}

// Parameters exposes the sparkle tunables.
func (s *Sparkle) Parameters() core.ParameterSnapshot {
	p := s.cfg.Sparkle
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		canvasParams(s.cfg),
		{
			Name: "Sparkle",
			Params: []core.Parameter{
				core.FloatParam("sparkle_rate", "Twinkles per second", p.BirthRate),
				core.FloatParam("sparkle_lifetime_min", "Lifetime min", p.LifetimeMin),
				core.FloatParam("sparkle_lifetime_max", "Lifetime max", p.LifetimeMax),
			},
		},
	}}
}

func init() {
	register("sparkle", func(cfg Config) core.Effect { return NewSparkle(cfg) })
}
