// Package particle implements a hierarchical emitter/particle simulation.
//
// A System owns one root emitter cell. Every tick the root ages its particles,
// prunes the dead ones and spawns new ones at random canvas positions. A
// particle may own a child cell of its own, in which case it acts as a moving
// anchor for that cell and only its leaf descendants are drawn.
//
// Particles and cells live in flat arenas addressed by integer IDs, so the
// tree never forms pointer cycles and iteration stays cache friendly.
package particle

import "proveit/internal/core"

type (
	particleID int32
	cellID     int32
)

const noCell cellID = -1

// Particle is a single decaying point. Fields are exported so generators can
// initialise them; the child link is managed by the System.
type Particle struct {
	Lifetime     float64
	Position     core.Vec2
	ParentCenter core.Vec2
	Velocity     core.Vec2
	Size         float64
	SizeSpeed    float64
	Opacity      float64
	OpacitySpeed float64
	// Color is an index into the host palette, chosen once by the generator.
	Color int

	child cellID
}

// HasChild reports whether the particle anchors a child emitter.
func (p *Particle) HasChild() bool { return p.child != noCell }

// Decayed reports whether the particle has faded out or shrunk to nothing
// while still decaying.
func (p *Particle) Decayed() bool {
	return (p.OpacitySpeed <= 0 && p.Opacity <= 0) || (p.SizeSpeed <= 0 && p.Size <= 0)
}

// Alive is the liveness predicate for a particle without a child emitter.
func (p *Particle) Alive() bool {
	return p.Lifetime > 0 && !p.Decayed()
}

func (p *Particle) integrate(delta float64) {
	p.Lifetime -= delta
	p.Position.X += p.Velocity.X * delta
	p.Position.Y += p.Velocity.Y * delta
	p.Size += p.SizeSpeed * delta
	p.Opacity += p.OpacitySpeed * delta
}

// Frame returns the circle a host should paint for p: the particle's position
// is the top-left corner of a size×size box.
func (p *Particle) Frame() (center core.Vec2, radius float64) {
	r := p.Size / 2
	return core.Vec2{X: p.Position.X + r, Y: p.Position.Y + r}, r
}
