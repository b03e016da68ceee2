package effects

import (
	"math"

	"proveit/internal/core"
	"proveit/internal/particle"
)

// Fireworks launches anchors at random canvas positions; each anchor fires
// one dense, short burst of sparks flying outward in every direction.
type Fireworks struct {
	*base
}

// NewFireworks builds a fireworks effect from cfg.
func NewFireworks(cfg Config) *Fireworks {
	return &Fireworks{base: newBase("fireworks", cfg, fireworksSpec(cfg.Fireworks, DefaultPalette().Len()))}
}

func fireworksSpec(p FireworksParams, hues int) particle.CellSpec {
	burst := &particle.CellSpec{
		BirthRate: p.BurstBirthRate,
		End:       p.BurstEndMin,
		EndJitter: p.BurstEndMax - p.BurstEndMin,
		Generator: func(rng *core.RNG, s *particle.Particle) {
			s.Lifetime = rng.Range(p.SparkLifetimeMin, p.SparkLifetimeMax)
			speed := rng.Range(p.SparkSpeedMin, p.SparkSpeedMax)
			angle := rng.Angle()
			// Screen y grows downward.
			s.Velocity = core.Vec2{X: speed * math.Cos(angle), Y: -speed * math.Sin(angle)}
			s.Size *= rng.Range(p.SizeScaleMin, p.SizeScaleMax)
			s.SizeSpeed = -s.Size * p.SizeDecay
			s.Opacity = rng.Range(p.OpacityMin, p.OpacityMax)
			s.OpacitySpeed = -s.Opacity / s.Lifetime
			s.Color = rng.IntN(hues)
		},
	}
	return particle.CellSpec{
		BirthRate: p.BirthRate,
		End:       particle.Unbounded(),
		Generator: func(_ *core.RNG, a *particle.Particle) {
			a.Lifetime = p.AnchorLifetime
			a.Size = p.AnchorSize
			a.Opacity = 1
		},
		Child: burst,
	}
}

// Burst launches one firework centred on pos right away. It reports whether
// the firework was added.
func (f *Fireworks) Burst(pos core.Vec2) bool {
	half := f.cfg.Fireworks.AnchorSize / 2
	return f.sys.Add(core.Vec2{X: pos.X - half, Y: pos.Y - half})
}

// Parameters exposes the firework tunables.
func (f *Fireworks) Parameters() core.ParameterSnapshot {
	p := f.cfg.Fireworks
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		canvasParams(f.cfg),
		{
			Name: "Launch",
			Params: []core.Parameter{
				core.FloatParam("birth_rate", "Launches per second", p.BirthRate),
				core.FloatParam("anchor_lifetime", "Anchor lifetime", p.AnchorLifetime),
				core.FloatParam("anchor_size", "Anchor size", p.AnchorSize),
			},
		},
		{
			Name: "Burst",
			Params: []core.Parameter{
				core.FloatParam("burst_birth_rate", "Sparks per second", p.BurstBirthRate),
				core.FloatParam("burst_end_min", "Burst end min", p.BurstEndMin),
				core.FloatParam("burst_end_max", "Burst end max", p.BurstEndMax),
			},
		},
		{
			Name: "Sparks",
			Params: []core.Parameter{
				core.FloatParam("spark_lifetime_min", "Lifetime min", p.SparkLifetimeMin),
				core.FloatParam("spark_lifetime_max", "Lifetime max", p.SparkLifetimeMax),
				core.FloatParam("spark_speed_min", "Speed min", p.SparkSpeedMin),
				core.FloatParam("spark_speed_max", "Speed max", p.SparkSpeedMax),
				core.FloatParam("size_scale_min", "Size scale min", p.SizeScaleMin),
				core.FloatParam("size_scale_max", "Size scale max", p.SizeScaleMax),
				core.FloatParam("size_decay", "Size decay", p.SizeDecay),
				core.FloatParam("opacity_min", "Opacity min", p.OpacityMin),
				core.FloatParam("opacity_max", "Opacity max", p.OpacityMax),
			},
		},
	}}
}

func init() {
	register("fireworks", func(cfg Config) core.Effect { return NewFireworks(cfg) })
}
