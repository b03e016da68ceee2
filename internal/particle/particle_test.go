package particle

import (
	"math"
	"testing"

	"proveit/internal/core"
)

func steady(lifetime float64) Generator {
	return func(_ *core.RNG, p *Particle) {
		p.Lifetime = lifetime
		p.Size = 1
		p.Opacity = 1
	}
}

func blank() Particle { return Particle{} }

func newTestArena() *arena {
	return newArena(core.NewRNG(7), DefaultMaxDepth)
}

func TestAdvanceZeroDeltaIsIdentity(t *testing.T) {
	a := newTestArena()
	before := Particle{
		Lifetime:     0.4,
		Position:     core.Vec2{X: 3, Y: 4},
		Velocity:     core.Vec2{X: -20, Y: 35},
		Size:         6,
		SizeSpeed:    -3,
		Opacity:      0.7,
		OpacitySpeed: -1.4,
		child:        noCell,
	}
	id := a.newParticle(before)
	if !a.advance(id, 0) {
		t.Fatal("live particle must survive a zero-length step")
	}
	if a.particles[id] != before {
		t.Fatalf("zero-length step changed state: got %+v want %+v", a.particles[id], before)
	}
}

func TestLifetimeExpiresAfterExactDuration(t *testing.T) {
	a := newTestArena()
	id := a.newParticle(Particle{Lifetime: 1, Size: 4, Opacity: 1, child: noCell})
	for i := 0; i < 3; i++ {
		if !a.advance(id, 0.25) {
			t.Fatalf("particle died early at step %d", i)
		}
	}
	if a.advance(id, 0.25) {
		t.Fatal("particle should expire once its whole lifetime has elapsed")
	}
	if a.particles[id].Lifetime > 0 {
		t.Fatalf("lifetime = %v, want <= 0", a.particles[id].Lifetime)
	}
}

func TestOpacityAndLifetimeExpireTogether(t *testing.T) {
	a := newTestArena()
	id := a.newParticle(Particle{Lifetime: 0.5, Size: 8, Opacity: 0.8, OpacitySpeed: -1.6, child: noCell})
	if a.advance(id, 0.6) {
		t.Fatal("particle past its lifetime and fully transparent must be dead")
	}
	p := a.particles[id]
	if p.Lifetime > 0 {
		t.Fatalf("lifetime = %v, want <= 0", p.Lifetime)
	}
	if p.Opacity > 0 {
		t.Fatalf("opacity = %v, want <= 0", p.Opacity)
	}
}

func TestDecayKillsBeforeLifetime(t *testing.T) {
	a := newTestArena()
	shrink := a.newParticle(Particle{Lifetime: 10, Size: 1, SizeSpeed: -2, Opacity: 1, child: noCell})
	if a.advance(shrink, 0.5) {
		t.Fatal("zero-size particle must be dead even with lifetime left")
	}
	grow := a.newParticle(Particle{Lifetime: 10, Size: 0, SizeSpeed: 2, Opacity: 1, child: noCell})
	if !a.advance(grow, 0) {
		t.Fatal("growing particle with zero size is still alive")
	}
	fade := a.newParticle(Particle{Lifetime: 10, Size: 1, Opacity: 0.5, OpacitySpeed: -1, child: noCell})
	if a.advance(fade, 0.5) {
		t.Fatal("transparent particle must be dead even with lifetime left")
	}
}

func TestSpawnCountMatchesBirthRate(t *testing.T) {
	cases := []struct {
		rate  float64
		delta float64
	}{
		{rate: 2, delta: 1},
		{rate: 4, delta: 0.5},
		{rate: 8, delta: 2},
		{rate: 16, delta: 0.75},
		{rate: 64, delta: 0.1},
	}
	for _, tc := range cases {
		a := newTestArena()
		spec := &CellSpec{BirthRate: tc.rate, End: Unbounded(), Generator: steady(100)}
		id := a.newCell(spec, 0)
		got := a.spawnNew(id, tc.delta, blank)
		want := int(math.Floor(tc.delta * tc.rate))
		if got != want {
			t.Fatalf("rate %v delta %v: spawned %d, want %d", tc.rate, tc.delta, got, want)
		}
		if len(a.cells[id].particles) != want {
			t.Fatalf("rate %v delta %v: cell holds %d particles, want %d", tc.rate, tc.delta, len(a.cells[id].particles), want)
		}
	}
}

func TestSpawnAcrossTicksAccumulatesRemainder(t *testing.T) {
	a := newTestArena()
	id := a.newCell(&CellSpec{BirthRate: 4, End: Unbounded(), Generator: steady(100)}, 0)
	total := 0
	for i := 0; i < 8; i++ {
		total += a.spawnNew(id, 0.125, blank)
	}
	if total != 4 {
		t.Fatalf("spawned %d over one simulated second, want 4", total)
	}
}

func TestZeroBirthRateNeverSpawns(t *testing.T) {
	a := newTestArena()
	id := a.newCell(&CellSpec{BirthRate: 0, End: Unbounded(), Generator: steady(100)}, 0)
	for _, delta := range []float64{0, 0.1, 1, 1000} {
		if n := a.spawnNew(id, delta, blank); n != 0 {
			t.Fatalf("delta %v: zero birth rate spawned %d", delta, n)
		}
	}
	if a.cells[id].active() {
		t.Fatal("zero birth rate cell must stay empty")
	}
}

func TestClosedWindowIsIdempotent(t *testing.T) {
	a := newTestArena()
	id := a.newCell(&CellSpec{BirthRate: 8, End: 0.5, Generator: steady(100)}, 0)
	// Births fall at 0.125, 0.25 and 0.375; 0.5 is already outside [0, 0.5).
	if n := a.spawnNew(id, 1, blank); n != 3 {
		t.Fatalf("spawned %d inside [0, 0.5) at rate 8, want 3", n)
	}
	last := a.cells[id].lastSpawn
	for i := 0; i < 3; i++ {
		if n := a.spawnNew(id, 0, blank); n != 0 {
			t.Fatalf("closed window spawned %d on a zero-length tick", n)
		}
		if a.cells[id].lastSpawn < last {
			t.Fatal("lastSpawn regressed")
		}
		last = a.cells[id].lastSpawn
	}
	if n := a.spawnNew(id, 5, blank); n != 0 {
		t.Fatalf("closed window spawned %d", n)
	}
}

func TestBeginWindowDelaysSpawning(t *testing.T) {
	a := newTestArena()
	id := a.newCell(&CellSpec{BirthRate: 4, Begin: 0.5, End: Unbounded(), Generator: steady(100)}, 0)
	if n := a.spawnNew(id, 0.25, blank); n != 0 {
		t.Fatalf("spawned %d before the window opened", n)
	}
	if n := a.spawnNew(id, 0.75, blank); n != 3 {
		t.Fatalf("spawned %d once the window opened, want 3", n)
	}
}

func TestNewbornsAgedByTickRemainder(t *testing.T) {
	a := newTestArena()
	gen := func(_ *core.RNG, p *Particle) {
		p.Lifetime = 0.3
		p.Size = 1
		p.Opacity = 1
		p.Velocity = core.Vec2{X: 10}
	}
	id := a.newCell(&CellSpec{BirthRate: 4, End: Unbounded(), Generator: gen}, 0)
	// Births at 0.25, 0.5, 0.75, 1.0 are aged 0.75, 0.5, 0.25, 0; only the
	// last two outlive the immediate aging.
	if n := a.spawnNew(id, 1, blank); n != 2 {
		t.Fatalf("kept %d newborns, want 2", n)
	}
	xs := map[float64]bool{}
	for _, pid := range a.cells[id].particles {
		xs[a.particles[pid].Position.X] = true
	}
	if !xs[2.5] || !xs[0] {
		t.Fatalf("newborn positions %v, want offsets 2.5 and 0", xs)
	}
}

func TestPruneIsComplete(t *testing.T) {
	a := newTestArena()
	id := a.newCell(&CellSpec{End: Unbounded()}, 0)
	lifetimes := []float64{0.05, 2, 0.1, 3, 0.01, 0.2, 5}
	for _, l := range lifetimes {
		pid := a.newParticle(Particle{Lifetime: l, Size: 1, Opacity: 1, child: noCell})
		a.cells[id].particles = append(a.cells[id].particles, pid)
	}
	pruned := a.ageAndPrune(id, 0.15)
	if pruned != 3 {
		t.Fatalf("pruned %d, want 3", pruned)
	}
	for _, pid := range a.cells[id].particles {
		if !a.particles[pid].Alive() {
			t.Fatalf("dead particle %+v left in the live set", a.particles[pid])
		}
	}
	if len(a.cells[id].particles) != 4 {
		t.Fatalf("live set has %d particles, want 4", len(a.cells[id].particles))
	}
	if len(a.freeParticles) != 3 {
		t.Fatalf("free list has %d slots, want 3", len(a.freeParticles))
	}
}
