package particle

import (
	"proveit/internal/core"
)

// Options configures a System.
type Options struct {
	// MaxStep caps the simulated time covered by one Tick. Defaults to
	// core.DefaultMaxStep.
	MaxStep float64
	// Canvas bounds the random spawn positions of the root cell.
	Canvas core.Size
	Seed   int64
	// MaxDepth caps emitter nesting. Defaults to DefaultMaxDepth.
	MaxDepth int
}

// System is an explicitly owned simulation instance: one root cell, the
// arena holding the whole particle tree and the clock driving it. A System
// is not safe for concurrent use; hosts drive it from their frame loop.
type System struct {
	spec   *CellSpec
	opts   Options
	clock  *core.Clock
	arena  *arena
	root   cellID
	closed bool
}

// New creates a System whose root cell is built from spec. It panics if
// spec fails Validate.
func New(spec CellSpec, opts Options) *System {
	if err := spec.Validate(); err != nil {
		panic(err)
	}
	if opts.MaxStep <= 0 {
		opts.MaxStep = core.DefaultMaxStep
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	s := &System{spec: &spec, opts: opts}
	s.Reset(opts.Seed)
	return s
}

// Reset discards every particle, rewinds the clocks and reseeds the RNG.
func (s *System) Reset(seed int64) {
	s.opts.Seed = seed
	s.clock = core.NewClock(s.opts.MaxStep)
	s.arena = newArena(core.NewRNG(seed), s.opts.MaxDepth)
	s.root = s.arena.newCell(s.spec, 0)
	s.closed = false
}

// Close releases the particle tree. Later calls to Tick and Step are no-ops
// until Reset.
func (s *System) Close() {
	if s.closed {
		return
	}
	s.arena.clearCell(s.root)
	s.closed = true
}

// Closed reports whether Close was called since the last Reset.
func (s *System) Closed() bool { return s.closed }

// Resize changes the canvas used for root spawn positions.
func (s *System) Resize(size core.Size) { s.opts.Canvas = size }

// Canvas returns the current spawn canvas.
func (s *System) Canvas() core.Size { return s.opts.Canvas }

// Tick advances the simulation to the host timestamp now (seconds). The
// simulated step is min(now-last, MaxStep); nothing happens when it is not
// positive.
func (s *System) Tick(now float64) core.TickStats {
	if s.closed {
		return core.TickStats{}
	}
	delta := s.clock.Advance(now)
	if delta <= 0 {
		return core.TickStats{Live: s.Len()}
	}
	return s.Step(delta)
}

// Step ages the root cell by delta and then spawns into it at random canvas
// positions. Callers other than Tick are responsible for bounding delta.
func (s *System) Step(delta float64) core.TickStats {
	stats := core.TickStats{Delta: delta}
	if s.closed || delta <= 0 {
		stats.Live = s.Len()
		return stats
	}
	stats.Pruned = s.arena.ageAndPrune(s.root, delta)
	stats.Spawned = s.arena.spawnNew(s.root, delta, s.randomCanvasParticle)
	stats.Live = s.Len()
	return stats
}

func (s *System) randomCanvasParticle() Particle {
	pos := core.Vec2{
		X: s.arena.rng.Range(0, float64(s.opts.Canvas.W)),
		Y: s.arena.rng.Range(0, float64(s.opts.Canvas.H)),
	}
	return Particle{Position: pos, ParentCenter: pos}
}

// Add places one root particle at pos right away, outside the birth-rate
// schedule, and reports whether it survived its generator.
func (s *System) Add(pos core.Vec2) bool {
	if s.closed {
		return false
	}
	p := Particle{Position: pos, ParentCenter: pos}
	if s.spec.Generator != nil {
		s.spec.Generator(s.arena.rng, &p)
	}
	p.child = noCell
	pid := s.arena.newParticle(p)
	if s.spec.Child != nil && s.opts.MaxDepth > 1 {
		s.arena.particles[pid].child = s.arena.newCell(s.spec.Child, 1)
	}
	if !s.arena.advance(pid, 0) {
		s.arena.release(pid)
		return false
	}
	s.arena.cells[s.root].particles = append(s.arena.cells[s.root].particles, pid)
	return true
}

// ForEachLeaf walks the tree depth first and calls visit for every particle
// without a child emitter. Anchors are never visited themselves. visit must
// not retain p.
func (s *System) ForEachLeaf(visit func(p *Particle)) {
	if s.closed {
		return
	}
	s.walk(s.root, visit, nil)
}

// ForEachAnchor calls visit for every particle that owns a child emitter.
func (s *System) ForEachAnchor(visit func(p *Particle)) {
	if s.closed {
		return
	}
	s.walk(s.root, nil, visit)
}

func (s *System) walk(id cellID, leaf, anchor func(p *Particle)) {
	for _, pid := range s.arena.cells[id].particles {
		p := &s.arena.particles[pid]
		if p.child == noCell {
			if leaf != nil {
				leaf(p)
			}
			continue
		}
		if anchor != nil {
			anchor(p)
		}
		s.walk(p.child, leaf, anchor)
	}
}

// CellInfo is a read-only view of an emitter cell.
type CellInfo struct {
	BirthRate float64
	Begin     float64
	End       float64
	Clock     float64
	LastSpawn float64
	Live      int
	Depth     int
}

func (s *System) info(id cellID) CellInfo {
	c := &s.arena.cells[id]
	return CellInfo{
		BirthRate: c.spec.BirthRate,
		Begin:     c.begin,
		End:       c.end,
		Clock:     c.clock,
		LastSpawn: c.lastSpawn,
		Live:      len(c.particles),
		Depth:     c.depth,
	}
}

// Root describes the root cell.
func (s *System) Root() CellInfo { return s.info(s.root) }

// Child describes the cell anchored at p, if any.
func (s *System) Child(p *Particle) (CellInfo, bool) {
	if p == nil || p.child == noCell {
		return CellInfo{}, false
	}
	return s.info(p.child), true
}

// ForEachRoot calls visit for every particle owned directly by the root cell.
func (s *System) ForEachRoot(visit func(p *Particle)) {
	if s.closed {
		return
	}
	for _, pid := range s.arena.cells[s.root].particles {
		visit(&s.arena.particles[pid])
	}
}

// Roots returns the number of particles owned directly by the root cell.
func (s *System) Roots() int { return len(s.arena.cells[s.root].particles) }

// Len returns the number of live particles in the whole tree.
func (s *System) Len() int {
	if s.closed {
		return 0
	}
	return s.arena.live()
}

// Leaves returns the number of drawable particles.
func (s *System) Leaves() int {
	n := 0
	s.ForEachLeaf(func(*Particle) { n++ })
	return n
}

// Anchors returns the number of particles that own a child emitter.
func (s *System) Anchors() int {
	n := 0
	s.ForEachAnchor(func(*Particle) { n++ })
	return n
}
