package particle

import (
	"errors"
	"fmt"
	"math"

	"proveit/internal/core"
)

// Generator initialises a freshly minted particle: lifetime, velocity and the
// size/opacity decay. It is the per-effect recipe.
type Generator func(rng *core.RNG, p *Particle)

// CellSpec describes an emitter cell. A spec is shared by every cell
// instantiated from it and must not be mutated while a System uses it.
type CellSpec struct {
	// BirthRate is particles per simulated second. Zero never spawns.
	BirthRate float64
	// Begin and End bound the local-clock window [Begin, End) in which
	// spawning is permitted. End may be math.Inf(1).
	Begin float64
	End   float64
	// EndJitter, when positive, draws each instance's End from
	// [End, End+EndJitter).
	EndJitter float64
	Generator Generator
	// Child, when set, gives every particle spawned here its own cell. An
	// anchor lives for as long as its child cell holds particles, so a child
	// that spawns must close its window: see Validate.
	Child *CellSpec
}

// ErrUnboundedChild is returned by Validate for a child cell that would
// spawn forever and so keep its anchor alive forever.
var ErrUnboundedChild = errors.New("child cell spawns without an end")

// Validate checks the spec tree. Only the root may spawn without an end.
func (s *CellSpec) Validate() error {
	for depth, c := 1, s.Child; c != nil; depth, c = depth+1, c.Child {
		if c.BirthRate > 0 && math.IsInf(c.End, 1) {
			return fmt.Errorf("%w: depth %d", ErrUnboundedChild, depth)
		}
	}
	return nil
}

// Unbounded returns a window end that never closes.
func Unbounded() float64 { return math.Inf(1) }

type cell struct {
	spec      *CellSpec
	depth     int
	begin     float64
	end       float64
	clock     float64
	lastSpawn float64
	particles []particleID
}

func (c *cell) active() bool { return len(c.particles) > 0 }

// advance ages particle id by delta and reports whether it stays alive.
// Anchors age and refill their child cell at their updated position; they
// live on while their own lifetime remains or their child still has
// particles.
func (a *arena) advance(id particleID, delta float64) bool {
	p := &a.particles[id]
	p.integrate(delta)
	child := p.child
	if child == noCell {
		return p.Alive()
	}
	own := p.Lifetime > 0
	anchor := *p
	a.ageAndPrune(child, delta)
	a.spawnNew(child, delta, func() Particle {
		return Particle{
			Position:     anchor.Position,
			ParentCenter: anchor.Position,
			Velocity:     anchor.Velocity,
			Size:         anchor.Size,
		}
	})
	return own || a.cells[child].active()
}

// ageAndPrune advances every particle of cell id and removes the dead ones by
// swapping them to the end and truncating. Live-set order is not preserved.
func (a *arena) ageAndPrune(id cellID, delta float64) (pruned int) {
	n := len(a.cells[id].particles)
	i := 0
	for i < n {
		pid := a.cells[id].particles[i]
		if a.advance(pid, delta) {
			i++
			continue
		}
		n--
		ps := a.cells[id].particles
		ps[i], ps[n] = ps[n], ps[i]
		a.release(pid)
		pruned++
	}
	a.cells[id].particles = a.cells[id].particles[:n]
	return pruned
}

// spawnNew advances the local clock of cell id and births every particle due
// since the last spawn, at most one per 1/BirthRate of simulated time. Each
// newborn is aged by the part of the tick that elapsed after its birth and
// kept only if that leaves it alive.
func (a *arena) spawnNew(id cellID, delta float64, template func() Particle) (spawned int) {
	c := &a.cells[id]
	c.clock += delta
	if c.clock < c.begin || c.lastSpawn >= c.end {
		c.lastSpawn = c.clock
		return 0
	}
	if c.spec.BirthRate <= 0 {
		return 0
	}
	interval := 1 / c.spec.BirthRate
	spec := c.spec
	depth := c.depth
	for {
		c = &a.cells[id]
		if c.clock-c.lastSpawn < interval {
			break
		}
		c.lastSpawn += interval
		if c.lastSpawn < c.begin || c.lastSpawn >= c.end {
			continue
		}
		age := c.clock - c.lastSpawn

		p := template()
		if spec.Generator != nil {
			spec.Generator(a.rng, &p)
		}
		p.child = noCell
		pid := a.newParticle(p)
		if spec.Child != nil && depth+1 < a.maxDepth {
			cid := a.newCell(spec.Child, depth+1)
			a.particles[pid].child = cid
		}
		if !a.advance(pid, age) {
			a.release(pid)
			continue
		}
		a.cells[id].particles = append(a.cells[id].particles, pid)
		spawned++
	}
	return spawned
}
