package particle

import (
	"math"

	"proveit/internal/core"
)

// DefaultMaxDepth caps how many emitter levels a recipe may nest. Particles
// spawned at the cap are leaves even if their spec names a child.
const DefaultMaxDepth = 4

// arena is the flat backing store for every particle and cell of a System.
// Slots are recycled through free lists; IDs stay valid until released.
//
// Growing either slice may move its elements, so code that allocates must not
// hold *Particle or *cell pointers across the allocation.
type arena struct {
	particles []Particle
	cells     []cell

	freeParticles []particleID
	freeCells     []cellID

	rng      *core.RNG
	maxDepth int
}

func newArena(rng *core.RNG, maxDepth int) *arena {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &arena{rng: rng, maxDepth: maxDepth}
}

func (a *arena) newParticle(p Particle) particleID {
	if n := len(a.freeParticles); n > 0 {
		id := a.freeParticles[n-1]
		a.freeParticles = a.freeParticles[:n-1]
		a.particles[id] = p
		return id
	}
	a.particles = append(a.particles, p)
	return particleID(len(a.particles) - 1)
}

// newCell instantiates spec at the given nesting depth. The window end is
// jittered once per instance.
func (a *arena) newCell(spec *CellSpec, depth int) cellID {
	end := spec.End
	if spec.EndJitter > 0 && !math.IsInf(end, 1) {
		end = a.rng.Range(end, end+spec.EndJitter)
	}
	c := cell{
		spec:  spec,
		depth: depth,
		begin: spec.Begin,
		end:   end,
	}
	if n := len(a.freeCells); n > 0 {
		id := a.freeCells[n-1]
		a.freeCells = a.freeCells[:n-1]
		c.particles = a.cells[id].particles[:0]
		a.cells[id] = c
		return id
	}
	a.cells = append(a.cells, c)
	return cellID(len(a.cells) - 1)
}

// release frees a particle together with its child cell and every
// descendant.
func (a *arena) release(id particleID) {
	if child := a.particles[id].child; child != noCell {
		a.releaseCell(child)
	}
	a.particles[id] = Particle{child: noCell}
	a.freeParticles = append(a.freeParticles, id)
}

func (a *arena) releaseCell(id cellID) {
	a.clearCell(id)
	a.cells[id].spec = nil
	a.freeCells = append(a.freeCells, id)
}

func (a *arena) clearCell(id cellID) {
	for _, pid := range a.cells[id].particles {
		a.release(pid)
	}
	a.cells[id].particles = a.cells[id].particles[:0]
}

// live counts allocated particles.
func (a *arena) live() int {
	return len(a.particles) - len(a.freeParticles)
}
